package api

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"roomdesk/internal/filter"
	"roomdesk/internal/metrics"
	"roomdesk/internal/models"
)

// RoomResponse represents a room in API responses.
type RoomResponse struct {
	RoomID               int64   `json:"roomId"`
	LocationID           int64   `json:"locationId"`
	LocationName         string  `json:"locationName"`
	RoomName             string  `json:"roomName"`
	PricePerDayPerPerson float64 `json:"pricePerDayPerPerson"`
	GuestCapacity        int     `json:"guestCapacity"`
}

// SearchRequest is the request body for POST /api/rooms/search.
type SearchRequest struct {
	DateFrom  string  `json:"dateFrom,omitempty"` // Format: YYYY-MM-DD
	DateTo    string  `json:"dateTo,omitempty"`
	MinGuests int     `json:"minGuests,omitempty"`
	MaxPrice  float64 `json:"maxPrice,omitempty"`
	Location  string  `json:"location,omitempty"`
}

// DatesResponse lists eligible dates for a room.
type DatesResponse struct {
	RoomID int64    `json:"roomId"`
	Dates  []string `json:"dates"`
}

// handleRooms lists rooms filtered by query parameters.
// GET /api/rooms?dateFrom=...&dateTo=...&minGuests=...&maxPrice=...&location=...
func (s *HTTPServer) handleRooms(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("rooms")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	q := r.URL.Query()
	req := SearchRequest{
		DateFrom: q.Get("dateFrom"),
		DateTo:   q.Get("dateTo"),
		Location: q.Get("location"),
	}
	// Malformed numeric input means "filter inapplicable", not an error.
	if v, err := strconv.Atoi(q.Get("minGuests")); err == nil {
		req.MinGuests = v
	}
	if v, err := strconv.ParseFloat(q.Get("maxPrice"), 64); err == nil {
		req.MaxPrice = v
	}

	s.searchRooms(w, r, req)
}

// handleRoomSearch lists rooms matching a criteria body.
// POST /api/rooms/search
func (s *HTTPServer) handleRoomSearch(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("room_search")
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed; use POST")
		return
	}

	var req SearchRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	s.searchRooms(w, r, req)
}

func (s *HTTPServer) searchRooms(w http.ResponseWriter, r *http.Request, req SearchRequest) {
	criteria := filter.Criteria{
		MinGuests: req.MinGuests,
		MaxPrice:  req.MaxPrice,
		Location:  req.Location,
	}
	// Unparsable dates stay zero: the filter falls back to partial mode.
	if req.DateFrom != "" {
		if d, err := models.ParseDate(req.DateFrom); err == nil {
			criteria.DateFrom = d
		}
	}
	if req.DateTo != "" {
		if d, err := models.ParseDate(req.DateTo); err == nil {
			criteria.DateTo = d
		}
	}

	matched := s.filter.FilterRooms(s.rooms, s.reservations(r.Context()), criteria, models.DateOnly(time.Now()))

	out := make([]RoomResponse, 0, len(matched))
	for _, room := range matched {
		out = append(out, RoomResponse{
			RoomID:               room.RoomID,
			LocationID:           room.LocationID,
			LocationName:         room.LocationName,
			RoomName:             room.RoomName,
			PricePerDayPerPerson: room.PricePerDayPerPerson,
			GuestCapacity:        room.GuestCapacity,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"rooms": out})
}

// handleRoomDates serves the per-room date endpoints:
// GET /api/rooms/{id}/arrival-dates?today=YYYY-MM-DD
// GET /api/rooms/{id}/departure-dates?arrival=YYYY-MM-DD&today=YYYY-MM-DD
func (s *HTTPServer) handleRoomDates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/rooms/")
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) != 2 {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	roomID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid room id")
		return
	}
	room := s.roomByID(roomID)
	if room == nil {
		writeError(w, http.StatusNotFound, "room not found")
		return
	}

	today := models.DateOnly(time.Now())
	if v := r.URL.Query().Get("today"); v != "" {
		if d, err := models.ParseDate(v); err == nil {
			today = d
		}
	}

	switch parts[1] {
	case "arrival-dates":
		metrics.IncHTTP("arrival_dates")
		s.writeArrivalDates(w, room, today)
	case "departure-dates":
		metrics.IncHTTP("departure_dates")
		arrival, err := models.ParseDate(r.URL.Query().Get("arrival"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "arrival is required; expected YYYY-MM-DD")
			return
		}
		s.writeDepartureDates(w, room, arrival, today)
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

// writeArrivalDates unions valid arrival dates over the room's rules.
func (s *HTTPServer) writeArrivalDates(w http.ResponseWriter, room *models.Room, today time.Time) {
	seen := make(map[string]struct{})
	for i := range room.Rules {
		for _, d := range s.engine.ValidArrivalDates(&room.Rules[i], today) {
			seen[d.Format(models.DateFormat)] = struct{}{}
		}
	}
	writeJSON(w, http.StatusOK, DatesResponse{RoomID: room.RoomID, Dates: sortedDates(seen)})
}

// writeDepartureDates unions valid departure dates over the rules that
// accept the chosen arrival.
func (s *HTTPServer) writeDepartureDates(w http.ResponseWriter, room *models.Room, arrival, today time.Time) {
	seen := make(map[string]struct{})
	for i := range room.Rules {
		rule := &room.Rules[i]
		if !s.engine.ValidArrival(rule, arrival, today) {
			continue
		}
		for _, d := range s.engine.ValidDepartureDates(rule, arrival) {
			seen[d.Format(models.DateFormat)] = struct{}{}
		}
	}
	writeJSON(w, http.StatusOK, DatesResponse{RoomID: room.RoomID, Dates: sortedDates(seen)})
}

func sortedDates(seen map[string]struct{}) []string {
	out := make([]string, 0, len(seen))
	for d := range seen {
		out = append(out, d)
	}
	// ISO dates sort correctly as strings.
	sort.Strings(out)
	return out
}
