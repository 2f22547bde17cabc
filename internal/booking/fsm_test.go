package booking

import (
	"testing"
	"time"
)

func TestFSMTransitions(t *testing.T) {
	fsm := NewFSM()

	tests := []struct {
		name        string
		from        State
		to          State
		shouldAllow bool
	}{
		{"no arrival to arrival selected", StateNoArrival, StateArrivalSelected, true},
		{"arrival selected to range selected", StateArrivalSelected, StateRangeSelected, true},
		// Reset paths
		{"arrival selected back to no arrival", StateArrivalSelected, StateNoArrival, true},
		{"range selected back to no arrival", StateRangeSelected, StateNoArrival, true},
		{"no arrival reset onto itself", StateNoArrival, StateNoArrival, true},
		// Invalid transitions
		{"no arrival straight to range selected", StateNoArrival, StateRangeSelected, false},
		{"range selected to arrival selected", StateRangeSelected, StateArrivalSelected, false},
		{"unknown state", State("bogus"), StateNoArrival, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allowed := fsm.CanTransition(tt.from, tt.to)
			if allowed != tt.shouldAllow {
				t.Errorf("transition %s -> %s: expected allowed=%v, got %v",
					tt.from, tt.to, tt.shouldAllow, allowed)
			}
		})
	}
}

func TestSessionStore(t *testing.T) {
	store := NewSessionStore(time.Minute)

	if store.Get("missing") != nil {
		t.Error("expected nil for unknown session")
	}

	session := NewSession("s1", 100, 2)
	if session.State != StateNoArrival {
		t.Errorf("expected initial state, got %s", session.State)
	}
	if session.Selection.Guests != 2 {
		t.Errorf("expected 2 guests, got %d", session.Selection.Guests)
	}

	store.Put(session)
	if store.Get("s1") != session {
		t.Error("expected same session object")
	}

	store.Delete("s1")
	if store.Get("s1") != nil {
		t.Error("expected session removed")
	}
}

func TestSessionGuestsDefaultToOne(t *testing.T) {
	session := NewSession("s1", 100, 0)
	if session.Selection.Guests != 1 {
		t.Errorf("expected guests to default to 1, got %d", session.Selection.Guests)
	}
}

func TestSessionStoreCleanup(t *testing.T) {
	store := NewSessionStore(time.Nanosecond)

	store.Put(NewSession("s1", 100, 1))
	store.Put(NewSession("s2", 200, 1))
	time.Sleep(time.Millisecond)

	if removed := store.Cleanup(); removed != 2 {
		t.Errorf("expected 2 expired sessions removed, got %d", removed)
	}
	if store.Get("s1") != nil {
		t.Error("expected expired session gone")
	}
}
