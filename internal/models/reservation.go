package models

import (
	"errors"
	"time"
)

// ReservationStatus is the lifecycle state of a reservation.
type ReservationStatus string

const (
	StatusConfirm    ReservationStatus = "CONFIRM"
	StatusCheckedIn  ReservationStatus = "CHECKED-IN"
	StatusCheckedOut ReservationStatus = "CHECKED-OUT"
)

var (
	ErrInvalidDateRange   = errors.New("arrival date must be before departure date")
	ErrInvalidStatus      = errors.New("invalid reservation status")
	ErrStatusTransition   = errors.New("status transition not allowed")
	ErrNotArrivalDay      = errors.New("check-in is only allowed on the arrival date")
	ErrNotDepartureDay    = errors.New("check-out is only allowed on the departure date")
	ErrReservationMissing = errors.New("reservation not found")
)

// ValidStatus reports whether s is a known reservation status.
func ValidStatus(s ReservationStatus) bool {
	switch s {
	case StatusConfirm, StatusCheckedIn, StatusCheckedOut:
		return true
	}
	return false
}

// ReservationRecord is a confirmed booking occupying a room for an
// inclusive date range. It is the only entity this system mutates.
type ReservationRecord struct {
	ReservationID  string            `json:"reservationId"`
	RoomID         int64             `json:"roomId"`
	CustomerID     string            `json:"customerId"`
	ArrivalDate    time.Time         `json:"arrivalDate"`
	DepartureDate  time.Time         `json:"departureDate"`
	Status         ReservationStatus `json:"status"`
	TotalPrice     float64           `json:"totalPrice"`
	PaidAmount     float64           `json:"paidAmount"`
	NumberOfGuests int               `json:"numberOfGuests"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

// Validate checks the reservation's core invariant.
func (r *ReservationRecord) Validate() error {
	if !DateOnly(r.ArrivalDate).Before(DateOnly(r.DepartureDate)) {
		return ErrInvalidDateRange
	}
	if !ValidStatus(r.Status) {
		return ErrInvalidStatus
	}
	return nil
}

// Nights returns the stay length in nights.
func (r *ReservationRecord) Nights() int {
	return DaysBetween(r.ArrivalDate, r.DepartureDate)
}

// Occupies reports whether the reservation covers the given calendar day
// (inclusive of both the arrival and departure dates).
func (r *ReservationRecord) Occupies(date time.Time) bool {
	d := DateOnly(date)
	return !d.Before(DateOnly(r.ArrivalDate)) && !d.After(DateOnly(r.DepartureDate))
}

// NextStatus returns the status that follows the current one in the
// lifecycle, or an error when the reservation is already checked out.
func (r *ReservationRecord) NextStatus() (ReservationStatus, error) {
	switch r.Status {
	case StatusConfirm:
		return StatusCheckedIn, nil
	case StatusCheckedIn:
		return StatusCheckedOut, nil
	default:
		return "", ErrStatusTransition
	}
}

// CanCheckIn reports whether check-in is permitted at the given moment:
// the reservation must be in CONFIRM and now must fall on the arrival date.
func (r *ReservationRecord) CanCheckIn(now time.Time) error {
	if r.Status != StatusConfirm {
		return ErrStatusTransition
	}
	if !SameDay(now, r.ArrivalDate) {
		return ErrNotArrivalDay
	}
	return nil
}

// CanCheckOut reports whether check-out is permitted at the given moment.
func (r *ReservationRecord) CanCheckOut(now time.Time) error {
	if r.Status != StatusCheckedIn {
		return ErrStatusTransition
	}
	if !SameDay(now, r.DepartureDate) {
		return ErrNotDepartureDay
	}
	return nil
}
