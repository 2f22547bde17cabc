package models

import (
	"errors"
	"fmt"
	"time"
)

// DefaultMaxDeviationDays caps how far ahead of today an arrival may be
// when a rule does not state its own bound.
const DefaultMaxDeviationDays = 999

var (
	ErrInvalidStayWindow = errors.New("stay window start is after end")
	ErrInvalidStayLength = errors.New("invalid stay length bounds")
	ErrInvalidRoom       = errors.New("invalid room")
	ErrUnknownRoom       = errors.New("unknown room")
)

// DateWindow is an inclusive calendar range. A nil bound is unconstrained
// on that side.
type DateWindow struct {
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

// Contains reports whether the date falls inside the window. Missing bounds
// do not constrain.
func (w DateWindow) Contains(date time.Time) bool {
	d := DateOnly(date)
	if w.Start != nil && d.Before(DateOnly(*w.Start)) {
		return false
	}
	if w.End != nil && d.After(DateOnly(*w.End)) {
		return false
	}
	return true
}

// AvailabilityRule describes when and how a single room may be booked.
// A room may own several rules; a date range is bookable if any one rule
// accepts it.
type AvailabilityRule struct {
	RuleID int64 `json:"ruleId"`
	RoomID int64 `json:"roomId"`

	// StayWindowStart/End bound the calendar range the rule applies to
	// (inclusive on both sides).
	StayWindowStart time.Time `json:"stayWindowStart"`
	StayWindowEnd   time.Time `json:"stayWindowEnd"`

	// BookingWindow gates whether the rule is usable at all: "today" must
	// fall inside it. Absent or open-ended bounds do not constrain.
	BookingWindow DateWindow `json:"bookingWindow"`

	AllowedArrivalWeekdays   WeekdaySet `json:"allowedArrivalWeekdays"`
	AllowedDepartureWeekdays WeekdaySet `json:"allowedDepartureWeekdays"`

	MinStayNights int `json:"minStayNights"`
	MaxStayNights int `json:"maxStayNights"`

	// Deviation bounds limit how far from "today" an arrival date may be.
	MinDeviationDays int `json:"minDeviationDays"`
	MaxDeviationDays int `json:"maxDeviationDays"`
}

// Validate checks the rule's internal invariants.
func (r *AvailabilityRule) Validate() error {
	if r.StayWindowStart.After(r.StayWindowEnd) {
		return fmt.Errorf("rule %d: %w", r.RuleID, ErrInvalidStayWindow)
	}
	if r.MinStayNights < 1 || r.MaxStayNights < r.MinStayNights {
		return fmt.Errorf("rule %d: %w", r.RuleID, ErrInvalidStayLength)
	}
	return nil
}

// Room is read-only reference data fetched once per session.
type Room struct {
	RoomID               int64   `json:"roomId"`
	LocationID           int64   `json:"locationId"`
	LocationName         string  `json:"locationName"`
	RoomName             string  `json:"roomName"`
	PricePerDayPerPerson float64 `json:"pricePerDayPerPerson"`
	GuestCapacity        int     `json:"guestCapacity"`

	// Rules joined by RoomID at fetch time; may be empty.
	Rules []AvailabilityRule `json:"rules,omitempty"`
}

// Validate checks the room's invariants.
func (r *Room) Validate() error {
	if r.PricePerDayPerPerson <= 0 {
		return fmt.Errorf("room %d: price must be positive: %w", r.RoomID, ErrInvalidRoom)
	}
	if r.GuestCapacity < 1 {
		return fmt.Errorf("room %d: capacity must be at least 1: %w", r.RoomID, ErrInvalidRoom)
	}
	return nil
}
