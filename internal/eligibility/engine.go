// Package eligibility computes which calendar dates are legal arrival and
// departure dates for a room, and whether a candidate date range is
// bookable given the room's availability rules and existing reservations.
package eligibility

import (
	"time"

	"roomdesk/internal/models"
)

// BoundaryPolicy decides what happens when a candidate range shares a
// boundary day with an existing reservation (check-out morning vs check-in
// noon on the same date).
type BoundaryPolicy int

const (
	// BoundaryStrict treats a shared boundary day as a conflict.
	BoundaryStrict BoundaryPolicy = iota
	// BoundaryShared lets a new guest arrive on the day the prior guest
	// departs (and depart on the day the next guest arrives).
	BoundaryShared
)

// ParseBoundaryPolicy maps a config string to a policy. Unknown values
// fall back to strict.
func ParseBoundaryPolicy(s string) BoundaryPolicy {
	if s == "shared" {
		return BoundaryShared
	}
	return BoundaryStrict
}

func (p BoundaryPolicy) String() string {
	if p == BoundaryShared {
		return "shared"
	}
	return "strict"
}

// Engine answers eligibility queries. It holds no mutable state beyond the
// boundary policy, so a single instance is safe to share.
type Engine struct {
	policy BoundaryPolicy
}

// New creates an engine with the given boundary policy.
func New(policy BoundaryPolicy) *Engine {
	return &Engine{policy: policy}
}

// Policy returns the engine's boundary policy.
func (e *Engine) Policy() BoundaryPolicy {
	return e.policy
}

// BookableToday reports whether the rule is usable at all on the given day:
// today must fall inside the rule's booking window. A missing bound on
// either side is unconstrained; a rule without a booking window is always
// bookable.
func BookableToday(rule *models.AvailabilityRule, today time.Time) bool {
	if rule == nil || today.IsZero() {
		return false
	}
	return rule.BookingWindow.Contains(today)
}

// ValidArrivalDates returns every calendar day that is a legal arrival
// date under the rule, as seen from "today". The deviation window
// [today+minDev, today+maxDev] is clamped to the rule's stay window, then
// walked day by day keeping allowed arrival weekdays. Malformed input
// degrades to an empty set.
func (e *Engine) ValidArrivalDates(rule *models.AvailabilityRule, today time.Time) []time.Time {
	if rule == nil || today.IsZero() || rule.Validate() != nil {
		return nil
	}
	if !BookableToday(rule, today) {
		return nil
	}

	day := models.DateOnly(today)
	minDate := day.AddDate(0, 0, rule.MinDeviationDays)
	maxDate := day.AddDate(0, 0, rule.MaxDeviationDays)

	// The stay window is the authoritative clamp.
	if start := models.DateOnly(rule.StayWindowStart); minDate.Before(start) {
		minDate = start
	}
	if end := models.DateOnly(rule.StayWindowEnd); maxDate.After(end) {
		maxDate = end
	}
	if maxDate.Before(minDate) {
		return nil
	}

	var dates []time.Time
	for d := minDate; !d.After(maxDate); d = d.AddDate(0, 0, 1) {
		if rule.AllowedArrivalWeekdays.Allows(d.Weekday()) {
			dates = append(dates, d)
		}
	}
	return dates
}

// ValidDepartureDates returns every legal departure date for a chosen
// arrival: days in [arrival+minStay, arrival+maxStay], clamped into the
// stay window, whose weekday is an allowed departure weekday.
func (e *Engine) ValidDepartureDates(rule *models.AvailabilityRule, arrival time.Time) []time.Time {
	if rule == nil || arrival.IsZero() || rule.Validate() != nil {
		return nil
	}

	day := models.DateOnly(arrival)
	minDate := day.AddDate(0, 0, rule.MinStayNights)
	maxDate := day.AddDate(0, 0, rule.MaxStayNights)

	if start := models.DateOnly(rule.StayWindowStart); minDate.Before(start) {
		minDate = start
	}
	if end := models.DateOnly(rule.StayWindowEnd); maxDate.After(end) {
		maxDate = end
	}
	if maxDate.Before(minDate) {
		return nil
	}

	var dates []time.Time
	for d := minDate; !d.After(maxDate); d = d.AddDate(0, 0, 1) {
		if rule.AllowedDepartureWeekdays.Allows(d.Weekday()) {
			dates = append(dates, d)
		}
	}
	return dates
}

// RangeEligible reports whether the arrival/departure pair is bookable
// under the rule as seen from "today": the arrival must be a valid arrival
// date, the departure a valid departure date for that arrival, and the
// stay length must be inside the rule's night bounds.
func (e *Engine) RangeEligible(rule *models.AvailabilityRule, arrival, departure, today time.Time) bool {
	if rule == nil || arrival.IsZero() || departure.IsZero() || today.IsZero() {
		return false
	}
	nights := models.DaysBetween(arrival, departure)
	if nights < rule.MinStayNights || nights > rule.MaxStayNights {
		return false
	}
	return e.ValidArrival(rule, arrival, today) && e.ValidDeparture(rule, arrival, departure)
}

// ValidArrival reports whether the single date is a member of
// ValidArrivalDates(rule, today), without materializing the set.
func (e *Engine) ValidArrival(rule *models.AvailabilityRule, date, today time.Time) bool {
	if rule == nil || date.IsZero() || today.IsZero() || rule.Validate() != nil {
		return false
	}
	if !BookableToday(rule, today) {
		return false
	}
	d := models.DateOnly(date)
	if !rule.AllowedArrivalWeekdays.Allows(d.Weekday()) {
		return false
	}
	dev := models.DaysBetween(today, d)
	if dev < rule.MinDeviationDays || dev > rule.MaxDeviationDays {
		return false
	}
	return !d.Before(models.DateOnly(rule.StayWindowStart)) && !d.After(models.DateOnly(rule.StayWindowEnd))
}

// ValidDeparture reports whether the single date is a member of
// ValidDepartureDates(rule, arrival).
func (e *Engine) ValidDeparture(rule *models.AvailabilityRule, arrival, date time.Time) bool {
	if rule == nil || arrival.IsZero() || date.IsZero() || rule.Validate() != nil {
		return false
	}
	d := models.DateOnly(date)
	if !rule.AllowedDepartureWeekdays.Allows(d.Weekday()) {
		return false
	}
	nights := models.DaysBetween(arrival, d)
	if nights < rule.MinStayNights || nights > rule.MaxStayNights {
		return false
	}
	return !d.Before(models.DateOnly(rule.StayWindowStart)) && !d.After(models.DateOnly(rule.StayWindowEnd))
}

// RangesOverlap is the inclusive-inclusive interval overlap test:
// [aStart, aEnd] and [bStart, bEnd] share at least one calendar day.
// It is symmetric in its two ranges.
func RangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	if aStart.IsZero() || aEnd.IsZero() || bStart.IsZero() || bEnd.IsZero() {
		return false
	}
	a1, a2 := models.DateOnly(aStart), models.DateOnly(aEnd)
	b1, b2 := models.DateOnly(bStart), models.DateOnly(bEnd)
	return !a1.After(b2) && !a2.Before(b1)
}

// RoomAvailableForRange reports whether no existing reservation for the
// room conflicts with the candidate range. Under BoundaryShared a
// reservation's departure day does not count as occupied, so back-to-back
// stays on a shared boundary date are allowed.
func (e *Engine) RoomAvailableForRange(roomID int64, reservations []models.ReservationRecord, candidateStart, candidateEnd time.Time) bool {
	if candidateStart.IsZero() || candidateEnd.IsZero() {
		return false
	}
	start, end := models.DateOnly(candidateStart), models.DateOnly(candidateEnd)
	if e.policy == BoundaryShared {
		end = end.AddDate(0, 0, -1)
	}
	for i := range reservations {
		r := &reservations[i]
		if r.RoomID != roomID {
			continue
		}
		existingEnd := r.DepartureDate
		if e.policy == BoundaryShared {
			existingEnd = models.DateOnly(existingEnd).AddDate(0, 0, -1)
		}
		if RangesOverlap(r.ArrivalDate, existingEnd, start, end) {
			return false
		}
	}
	return true
}
