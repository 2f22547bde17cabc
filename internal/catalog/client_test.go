package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomdesk/internal/models"
)

const roomsJSON = `[
	{"roomId": 1, "locationId": 10, "locationName": "Seaside", "roomName": "Single", "pricePerDayPerPerson": 80, "guestCapacity": 1},
	{"roomId": 2, "locationId": 10, "locationName": "Seaside", "roomName": "Double", "pricePerDayPerPerson": 120, "guestCapacity": 2},
	{"roomId": 3, "locationId": 20, "locationName": "Mountain", "roomName": "Broken", "pricePerDayPerPerson": 0, "guestCapacity": 2}
]`

const rulesJSON = `[
	{"ruleId": 11, "roomId": 1, "stayWindowStart": "2024-06-01", "stayWindowEnd": "2024-06-30",
	 "allowedArrivalWeekdays": ["FRI"], "minStayNights": 2, "maxStayNights": 5, "maxDeviationDays": 14},
	{"ruleId": 12, "roomId": 1, "stayWindowStart": "2024-07-01", "stayWindowEnd": "2024-07-31",
	 "bookingWindowStart": "2024-06-15", "minStayNights": 1, "maxStayNights": 7},
	{"ruleId": 13, "roomId": 2, "stayWindowStart": "not-a-date", "stayWindowEnd": "2024-06-30",
	 "minStayNights": 1, "maxStayNights": 7}
]`

func testLogger() *zerolog.Logger {
	logger := zerolog.New(os.Stderr).Level(zerolog.Disabled)
	return &logger
}

func catalogServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/rooms.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(roomsJSON))
	})
	mux.HandleFunc("/availability-rules.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(rulesJSON))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestFetchCatalog(t *testing.T) {
	server := catalogServer(t)
	client := NewClient(server.URL, testLogger())

	rooms, err := client.FetchCatalog(context.Background())
	require.NoError(t, err)

	// Room 3 has a non-positive price and is skipped.
	require.Len(t, rooms, 2)
	assert.Equal(t, int64(1), rooms[0].RoomID)
	assert.Equal(t, int64(2), rooms[1].RoomID)

	// Room 1 gets both of its valid rules joined by roomId.
	require.Len(t, rooms[0].Rules, 2)
	rule := rooms[0].Rules[0]
	assert.Equal(t, int64(11), rule.RuleID)
	assert.True(t, rule.AllowedArrivalWeekdays.Contains(time.Friday))
	assert.Equal(t, 14, rule.MaxDeviationDays)

	// Rule 12 has no stated max deviation: the default applies, and its
	// open-ended booking window keeps the end unconstrained.
	assert.Equal(t, models.DefaultMaxDeviationDays, rooms[0].Rules[1].MaxDeviationDays)
	assert.NotNil(t, rooms[0].Rules[1].BookingWindow.Start)
	assert.Nil(t, rooms[0].Rules[1].BookingWindow.End)

	// Rule 13 is malformed and dropped; room 2 keeps no rules.
	assert.Empty(t, rooms[1].Rules)
}

func TestFetchCatalog_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, testLogger())
	rooms, err := client.FetchCatalog(context.Background())
	assert.Error(t, err)
	assert.Empty(t, rooms)
}

func TestFetchCatalog_ParseError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not json"))
	}))
	defer server.Close()

	client := NewClient(server.URL, testLogger())
	_, err := client.FetchCatalog(context.Background())
	assert.Error(t, err)
}
