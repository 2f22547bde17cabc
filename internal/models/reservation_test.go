package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func testRecord(t *testing.T, status ReservationStatus) *ReservationRecord {
	t.Helper()
	return &ReservationRecord{
		ReservationID: "res-1",
		RoomID:        1,
		CustomerID:    "cust-1",
		ArrivalDate:   mustDate(t, "2024-06-07"),
		DepartureDate: mustDate(t, "2024-06-09"),
		Status:        status,
	}
}

func TestReservationValidate(t *testing.T) {
	rec := testRecord(t, StatusConfirm)
	assert.NoError(t, rec.Validate())

	rec.DepartureDate = rec.ArrivalDate
	assert.ErrorIs(t, rec.Validate(), ErrInvalidDateRange)

	rec = testRecord(t, StatusConfirm)
	rec.ArrivalDate, rec.DepartureDate = rec.DepartureDate, rec.ArrivalDate
	assert.ErrorIs(t, rec.Validate(), ErrInvalidDateRange)

	rec = testRecord(t, "UNKNOWN")
	assert.ErrorIs(t, rec.Validate(), ErrInvalidStatus)
}

func TestNightsAndOccupies(t *testing.T) {
	rec := testRecord(t, StatusConfirm)
	assert.Equal(t, 2, rec.Nights())

	// Inclusive of both boundary days.
	assert.True(t, rec.Occupies(mustDate(t, "2024-06-07")))
	assert.True(t, rec.Occupies(mustDate(t, "2024-06-08")))
	assert.True(t, rec.Occupies(mustDate(t, "2024-06-09")))
	assert.False(t, rec.Occupies(mustDate(t, "2024-06-06")))
	assert.False(t, rec.Occupies(mustDate(t, "2024-06-10")))
}

func TestNextStatus(t *testing.T) {
	rec := testRecord(t, StatusConfirm)

	next, err := rec.NextStatus()
	require.NoError(t, err)
	assert.Equal(t, StatusCheckedIn, next)

	rec.Status = StatusCheckedIn
	next, err = rec.NextStatus()
	require.NoError(t, err)
	assert.Equal(t, StatusCheckedOut, next)

	rec.Status = StatusCheckedOut
	_, err = rec.NextStatus()
	assert.ErrorIs(t, err, ErrStatusTransition)
}

func TestCanCheckIn(t *testing.T) {
	rec := testRecord(t, StatusConfirm)

	// Any time of day on the arrival date works.
	assert.NoError(t, rec.CanCheckIn(time.Date(2024, 6, 7, 23, 30, 0, 0, time.UTC)))

	assert.ErrorIs(t, rec.CanCheckIn(mustDate(t, "2024-06-06")), ErrNotArrivalDay)
	assert.ErrorIs(t, rec.CanCheckIn(mustDate(t, "2024-06-08")), ErrNotArrivalDay)

	rec.Status = StatusCheckedIn
	assert.ErrorIs(t, rec.CanCheckIn(mustDate(t, "2024-06-07")), ErrStatusTransition)
}

func TestCanCheckOut(t *testing.T) {
	rec := testRecord(t, StatusCheckedIn)

	assert.NoError(t, rec.CanCheckOut(mustDate(t, "2024-06-09")))
	assert.ErrorIs(t, rec.CanCheckOut(mustDate(t, "2024-06-08")), ErrNotDepartureDay)

	rec.Status = StatusConfirm
	assert.ErrorIs(t, rec.CanCheckOut(mustDate(t, "2024-06-09")), ErrStatusTransition)

	rec.Status = StatusCheckedOut
	assert.ErrorIs(t, rec.CanCheckOut(mustDate(t, "2024-06-09")), ErrStatusTransition)
}

func TestRuleValidate(t *testing.T) {
	rule := AvailabilityRule{
		RuleID:          1,
		StayWindowStart: mustDate(t, "2024-06-01"),
		StayWindowEnd:   mustDate(t, "2024-06-30"),
		MinStayNights:   1,
		MaxStayNights:   7,
	}
	assert.NoError(t, rule.Validate())

	bad := rule
	bad.StayWindowStart, bad.StayWindowEnd = bad.StayWindowEnd, bad.StayWindowStart
	assert.ErrorIs(t, bad.Validate(), ErrInvalidStayWindow)

	bad = rule
	bad.MinStayNights = 0
	assert.ErrorIs(t, bad.Validate(), ErrInvalidStayLength)

	bad = rule
	bad.MaxStayNights = 0
	assert.ErrorIs(t, bad.Validate(), ErrInvalidStayLength)
}

func TestDateWindowContains(t *testing.T) {
	start := mustDate(t, "2024-06-01")
	end := mustDate(t, "2024-06-30")

	open := DateWindow{}
	assert.True(t, open.Contains(mustDate(t, "1999-01-01")))

	bounded := DateWindow{Start: &start, End: &end}
	assert.True(t, bounded.Contains(start))
	assert.True(t, bounded.Contains(end))
	assert.False(t, bounded.Contains(mustDate(t, "2024-05-31")))
	assert.False(t, bounded.Contains(mustDate(t, "2024-07-01")))

	openEnd := DateWindow{Start: &start}
	assert.True(t, openEnd.Contains(mustDate(t, "2030-01-01")))
	assert.False(t, openEnd.Contains(mustDate(t, "2024-05-31")))
}
