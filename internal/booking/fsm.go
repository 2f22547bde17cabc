// Package booking turns user picks into reservation drafts via an
// FSM-driven selection flow.
package booking

import (
	"sync"
	"time"
)

// State represents the current state of a selection flow.
type State string

const (
	// StateNoArrival is the initial state: nothing picked yet.
	StateNoArrival State = "no_arrival"
	// StateArrivalSelected means a valid arrival date was picked.
	StateArrivalSelected State = "arrival_selected"
	// StateRangeSelected is terminal for the flow: both dates are set and
	// the selection can be submitted.
	StateRangeSelected State = "range_selected"
)

// Selection holds the data collected during a selection flow.
type Selection struct {
	RoomID    int64
	RuleID    int64
	Guests    int
	Arrival   time.Time
	Departure time.Time
}

// Session is one in-progress booking attempt. All mutable selection state
// is owned by the session; nothing is shared until submit.
type Session struct {
	ID        string
	State     State
	Selection Selection
	StartedAt time.Time
	UpdatedAt time.Time
	mu        sync.Mutex
}

// NewSession creates a session in the initial state.
func NewSession(id string, roomID int64, guests int) *Session {
	now := time.Now()
	if guests < 1 {
		guests = 1
	}
	return &Session{
		ID:    id,
		State: StateNoArrival,
		Selection: Selection{
			RoomID: roomID,
			Guests: guests,
		},
		StartedAt: now,
		UpdatedAt: now,
	}
}

// SetState updates the session state.
func (s *Session) SetState(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.State = state
	s.UpdatedAt = time.Now()
}

// GetState returns the current state.
func (s *Session) GetState() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.State
}

// IsExpired checks whether the session has been idle longer than timeout.
func (s *Session) IsExpired(timeout time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return time.Since(s.UpdatedAt) > timeout
}

// FSM manages allowed state transitions for the selection flow. Every
// state has an edge back to StateNoArrival (StateNoArrival to itself
// included): that is the reset path, which discards the in-progress
// selection with no external side effect.
type FSM struct {
	transitions map[State][]State
}

// NewFSM creates an FSM with the selection flow's transitions.
func NewFSM() *FSM {
	return &FSM{
		transitions: map[State][]State{
			StateNoArrival:       {StateArrivalSelected, StateNoArrival},
			StateArrivalSelected: {StateRangeSelected, StateNoArrival},
			StateRangeSelected:   {StateNoArrival},
		},
	}
}

// CanTransition checks if a transition is allowed.
func (f *FSM) CanTransition(from, to State) bool {
	allowed, ok := f.transitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// Transition updates the session state if the transition is allowed.
func (f *FSM) Transition(session *Session, to State) bool {
	if f.CanTransition(session.GetState(), to) {
		session.SetState(to)
		return true
	}
	return false
}

// SessionStore manages selection sessions keyed by session id.
type SessionStore struct {
	sessions map[string]*Session
	mu       sync.RWMutex
	timeout  time.Duration
}

// NewSessionStore creates a session store with the given idle timeout.
func NewSessionStore(timeout time.Duration) *SessionStore {
	if timeout <= 0 {
		timeout = 30 * time.Minute
	}
	return &SessionStore{
		sessions: make(map[string]*Session),
		timeout:  timeout,
	}
}

// Get returns a session by id, or nil when absent or expired.
func (ss *SessionStore) Get(id string) *Session {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	session := ss.sessions[id]
	if session == nil || session.IsExpired(ss.timeout) {
		return nil
	}
	return session
}

// Put registers a session under its id.
func (ss *SessionStore) Put(session *Session) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.sessions[session.ID] = session
}

// Delete removes a session.
func (ss *SessionStore) Delete(id string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	delete(ss.sessions, id)
}

// Cleanup removes expired sessions and returns how many were dropped.
func (ss *SessionStore) Cleanup() int {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	removed := 0
	for id, session := range ss.sessions {
		if session.IsExpired(ss.timeout) {
			delete(ss.sessions, id)
			removed++
		}
	}
	return removed
}
