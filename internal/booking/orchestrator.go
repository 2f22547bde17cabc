package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"roomdesk/internal/eligibility"
	"roomdesk/internal/metrics"
	"roomdesk/internal/models"
)

var (
	ErrSessionNotFound     = errors.New("selection session not found")
	ErrSelectionIncomplete = errors.New("selection has no complete date range")
)

// ReservationStore is the persistence collaborator for reservations.
// Updates are re-fetch-then-write: there are no transactions, and
// concurrent writers follow last-write-wins.
type ReservationStore interface {
	Save(ctx context.Context, rec *models.ReservationRecord) error
	GetByID(ctx context.Context, id string) (*models.ReservationRecord, error)
	List(ctx context.Context) ([]models.ReservationRecord, error)
	UpdateStatus(ctx context.Context, id string, status models.ReservationStatus) error
	DeleteByID(ctx context.Context, id string) error
}

// Orchestrator drives selection sessions and produces reservation drafts.
type Orchestrator struct {
	engine   *eligibility.Engine
	fsm      *FSM
	sessions *SessionStore
	store    ReservationStore
	logger   *zerolog.Logger

	// now is swappable for tests.
	now func() time.Time
}

// NewOrchestrator wires the selection flow together.
func NewOrchestrator(engine *eligibility.Engine, store ReservationStore, sessionTimeout time.Duration, logger *zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		engine:   engine,
		fsm:      NewFSM(),
		sessions: NewSessionStore(sessionTimeout),
		store:    store,
		logger:   logger,
		now:      time.Now,
	}
}

// StartSelection opens a new selection session for a room.
func (o *Orchestrator) StartSelection(roomID int64, guests int) *Session {
	session := NewSession(uuid.NewString(), roomID, guests)
	o.sessions.Put(session)
	return session
}

// Session returns an active session by id, or nil.
func (o *Orchestrator) Session(id string) *Session {
	return o.sessions.Get(id)
}

// PickArrival applies an arrival date pick. An invalid pick is silently
// ignored and the session stays where it is; the return value reports
// whether the pick was accepted.
func (o *Orchestrator) PickArrival(session *Session, rule *models.AvailabilityRule, date time.Time) bool {
	if session == nil || rule == nil {
		return false
	}
	if session.GetState() != StateNoArrival {
		return false
	}
	if !o.engine.ValidArrival(rule, date, o.today()) {
		return false
	}
	if !o.fsm.Transition(session, StateArrivalSelected) {
		return false
	}
	session.mu.Lock()
	session.Selection.RuleID = rule.RuleID
	session.Selection.Arrival = models.DateOnly(date)
	session.mu.Unlock()
	return true
}

// PickDeparture applies a departure date pick against the arrival already
// held by the session. Invalid picks are ignored.
func (o *Orchestrator) PickDeparture(session *Session, rule *models.AvailabilityRule, date time.Time) bool {
	if session == nil || rule == nil {
		return false
	}
	if session.GetState() != StateArrivalSelected {
		return false
	}
	session.mu.Lock()
	arrival := session.Selection.Arrival
	session.mu.Unlock()
	if !o.engine.ValidDeparture(rule, arrival, date) {
		return false
	}
	if !o.fsm.Transition(session, StateRangeSelected) {
		return false
	}
	session.mu.Lock()
	session.Selection.Departure = models.DateOnly(date)
	session.mu.Unlock()
	return true
}

// Reset returns the session to the initial state, discarding any
// in-progress picks. Safe to call repeatedly; no external side effect.
func (o *Orchestrator) Reset(session *Session) {
	if session == nil {
		return
	}
	if !o.fsm.Transition(session, StateNoArrival) {
		return
	}
	session.mu.Lock()
	session.Selection.Arrival = time.Time{}
	session.Selection.Departure = time.Time{}
	session.Selection.RuleID = 0
	session.mu.Unlock()
}

// Submit produces a reservation draft from a completed selection and hands
// it to the persistence collaborator. The draft starts in CONFIRM with
// TotalPrice = nights x pricePerDayPerPerson x guests.
func (o *Orchestrator) Submit(ctx context.Context, session *Session, room *models.Room, customerID string) (*models.ReservationRecord, error) {
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if room == nil {
		return nil, models.ErrUnknownRoom
	}
	if session.GetState() != StateRangeSelected {
		return nil, ErrSelectionIncomplete
	}

	session.mu.Lock()
	sel := session.Selection
	session.mu.Unlock()

	now := o.now()
	rec := &models.ReservationRecord{
		ReservationID:  uuid.NewString(),
		RoomID:         sel.RoomID,
		CustomerID:     customerID,
		ArrivalDate:    sel.Arrival,
		DepartureDate:  sel.Departure,
		Status:         models.StatusConfirm,
		NumberOfGuests: sel.Guests,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	rec.TotalPrice = float64(rec.Nights()) * room.PricePerDayPerPerson * float64(sel.Guests)

	if err := rec.Validate(); err != nil {
		return nil, err
	}
	if err := o.store.Save(ctx, rec); err != nil {
		return nil, err
	}

	metrics.IncReservationCreated(string(rec.Status))
	o.logger.Info().
		Str("reservation_id", rec.ReservationID).
		Int64("room_id", rec.RoomID).
		Str("arrival", rec.ArrivalDate.Format(models.DateFormat)).
		Str("departure", rec.DepartureDate.Format(models.DateFormat)).
		Float64("total_price", rec.TotalPrice).
		Msg("reservation created")

	o.sessions.Delete(session.ID)
	return rec, nil
}

// CheckIn advances CONFIRM to CHECKED-IN. Permitted only on the literal
// arrival date.
func (o *Orchestrator) CheckIn(ctx context.Context, reservationID string) error {
	return o.advance(ctx, reservationID, models.StatusCheckedIn)
}

// CheckOut advances CHECKED-IN to CHECKED-OUT on the departure date.
func (o *Orchestrator) CheckOut(ctx context.Context, reservationID string) error {
	return o.advance(ctx, reservationID, models.StatusCheckedOut)
}

func (o *Orchestrator) advance(ctx context.Context, reservationID string, to models.ReservationStatus) error {
	rec, err := o.store.GetByID(ctx, reservationID)
	if err != nil {
		return err
	}

	now := o.now()
	switch to {
	case models.StatusCheckedIn:
		err = rec.CanCheckIn(now)
	case models.StatusCheckedOut:
		err = rec.CanCheckOut(now)
	default:
		err = models.ErrStatusTransition
	}
	if err != nil {
		return err
	}

	if err := o.store.UpdateStatus(ctx, reservationID, to); err != nil {
		return err
	}
	metrics.IncStatusAdvanced(string(to))
	o.logger.Info().
		Str("reservation_id", reservationID).
		Str("status", string(to)).
		Msg("reservation status advanced")
	return nil
}

// Cancel deletes a reservation by id.
func (o *Orchestrator) Cancel(ctx context.Context, reservationID string) error {
	if err := o.store.DeleteByID(ctx, reservationID); err != nil {
		return err
	}
	metrics.IncReservationCancelled()
	return nil
}

// CleanupSessions drops expired selection sessions.
func (o *Orchestrator) CleanupSessions() int {
	return o.sessions.Cleanup()
}

func (o *Orchestrator) today() time.Time {
	return models.DateOnly(o.now())
}
