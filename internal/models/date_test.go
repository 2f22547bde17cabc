package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-06-07")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("07.06.2024")
	assert.Error(t, err)

	_, err = ParseDate("")
	assert.Error(t, err)
}

func TestDateOnly(t *testing.T) {
	late := time.Date(2024, 6, 7, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC), DateOnly(late))
}

func TestSameDay(t *testing.T) {
	morning := time.Date(2024, 6, 7, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2024, 6, 7, 22, 0, 0, 0, time.UTC)
	nextDay := time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameDay(morning, evening))
	assert.False(t, SameDay(evening, nextDay))
}

func TestDaysBetween(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"2024-06-07", "2024-06-09", 2},
		{"2024-06-07", "2024-06-07", 0},
		{"2024-06-09", "2024-06-07", -2},
		{"2024-02-28", "2024-03-01", 2}, // leap year
	}
	for _, tc := range cases {
		a, err := ParseDate(tc.a)
		require.NoError(t, err)
		b, err := ParseDate(tc.b)
		require.NoError(t, err)
		assert.Equal(t, tc.want, DaysBetween(a, b), "%s -> %s", tc.a, tc.b)
	}
}

func TestCheckInCheckOutHours(t *testing.T) {
	d, _ := ParseDate("2024-06-07")
	assert.Equal(t, 12, AtCheckIn(d).Hour())
	assert.Equal(t, 11, AtCheckOut(d).Hour())
	assert.True(t, SameDay(d, AtCheckIn(d)))
}
