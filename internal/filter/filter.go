// Package filter narrows a room catalog down to the rooms matching a
// user's search criteria.
package filter

import (
	"time"

	"roomdesk/internal/eligibility"
	"roomdesk/internal/models"
)

// Criteria enumerates every recognized search option. Zero values mean the
// option is not applied.
type Criteria struct {
	// DateFrom/DateTo select a candidate stay range. Date checks run only
	// when both are set; otherwise the filter works in partial mode
	// (price, capacity and location only).
	DateFrom time.Time `json:"dateFrom,omitempty"`
	DateTo   time.Time `json:"dateTo,omitempty"`

	// MinGuests below 1 defaults to 1.
	MinGuests int `json:"minGuests,omitempty"`

	// MaxPrice of 0 means unbounded.
	MaxPrice float64 `json:"maxPrice,omitempty"`

	// Location matches against the room's location name when non-empty.
	Location string `json:"location,omitempty"`
}

// Guests returns the effective guest count, defaulting to 1.
func (c Criteria) Guests() int {
	if c.MinGuests < 1 {
		return 1
	}
	return c.MinGuests
}

// HasDates reports whether both stay dates are present (full filtering
// mode).
func (c Criteria) HasDates() bool {
	return !c.DateFrom.IsZero() && !c.DateTo.IsZero()
}

// Filter applies search criteria against rooms and their reservations.
type Filter struct {
	engine *eligibility.Engine
}

// New creates a filter backed by the given eligibility engine.
func New(engine *eligibility.Engine) *Filter {
	return &Filter{engine: engine}
}

// FilterRooms returns the subset of rooms matching the criteria, in input
// order. It is a stable filter: no sorting, ties left as-is.
func (f *Filter) FilterRooms(rooms []models.Room, reservations []models.ReservationRecord, criteria Criteria, today time.Time) []models.Room {
	matched := make([]models.Room, 0, len(rooms))
	for _, room := range rooms {
		if f.matches(&room, reservations, criteria, today) {
			matched = append(matched, room)
		}
	}
	return matched
}

func (f *Filter) matches(room *models.Room, reservations []models.ReservationRecord, criteria Criteria, today time.Time) bool {
	if room.GuestCapacity < criteria.Guests() {
		return false
	}
	if criteria.MaxPrice > 0 && room.PricePerDayPerPerson > criteria.MaxPrice {
		return false
	}
	if criteria.Location != "" && room.LocationName != criteria.Location {
		return false
	}
	if !criteria.HasDates() {
		return true
	}

	// Full mode: at least one rule must accept the exact pair, and no
	// existing reservation may conflict.
	eligible := false
	for i := range room.Rules {
		if f.engine.RangeEligible(&room.Rules[i], criteria.DateFrom, criteria.DateTo, today) {
			eligible = true
			break
		}
	}
	if !eligible {
		return false
	}
	return f.engine.RoomAvailableForRange(room.RoomID, reservations, criteria.DateFrom, criteria.DateTo)
}
