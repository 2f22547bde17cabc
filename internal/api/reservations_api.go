package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"roomdesk/internal/metrics"
	"roomdesk/internal/models"
)

// CreateReservationRequest is the request body for POST /api/reservations.
type CreateReservationRequest struct {
	RoomID     int64  `json:"roomId"`
	CustomerID string `json:"customerId"`
	Arrival    string `json:"arrival"` // Format: YYYY-MM-DD
	Departure  string `json:"departure"`
	Guests     int    `json:"guests"`
}

// CreateReservationResponse is the response for POST /api/reservations.
type CreateReservationResponse struct {
	Success     bool                      `json:"success"`
	Reservation *models.ReservationRecord `json:"reservation,omitempty"`
	Error       string                    `json:"error,omitempty"`
}

// handleReservations lists or creates reservations.
// GET  /api/reservations
// POST /api/reservations
func (s *HTTPServer) handleReservations(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		metrics.IncHTTP("reservations_list")
		writeJSON(w, http.StatusOK, map[string]any{"reservations": s.reservations(r.Context())})
	case http.MethodPost:
		metrics.IncHTTP("reservations_create")
		s.createReservation(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// createReservation runs the whole selection flow in one request: pick
// arrival, pick departure, verify no conflicting reservation, submit.
func (s *HTTPServer) createReservation(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, CreateReservationResponse{Error: "invalid JSON body"})
		return
	}

	room := s.roomByID(req.RoomID)
	if room == nil {
		writeJSON(w, http.StatusNotFound, CreateReservationResponse{Error: "room not found"})
		return
	}
	if req.CustomerID == "" {
		writeJSON(w, http.StatusBadRequest, CreateReservationResponse{Error: "customerId is required"})
		return
	}

	arrival, err := models.ParseDate(req.Arrival)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, CreateReservationResponse{Error: "invalid arrival; expected YYYY-MM-DD"})
		return
	}
	departure, err := models.ParseDate(req.Departure)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, CreateReservationResponse{Error: "invalid departure; expected YYYY-MM-DD"})
		return
	}

	if !s.engine.RoomAvailableForRange(room.RoomID, s.reservations(r.Context()), arrival, departure) {
		writeJSON(w, http.StatusConflict, CreateReservationResponse{Error: "room is already booked for these dates"})
		return
	}

	session := s.orch.StartSelection(room.RoomID, req.Guests)
	picked := false
	for i := range room.Rules {
		if s.orch.PickArrival(session, &room.Rules[i], arrival) {
			if s.orch.PickDeparture(session, &room.Rules[i], departure) {
				picked = true
				break
			}
			// Departure refused under this rule: restart and try the next.
			s.orch.Reset(session)
		}
	}
	if !picked {
		writeJSON(w, http.StatusUnprocessableEntity, CreateReservationResponse{Error: "dates are not eligible for this room"})
		return
	}

	rec, err := s.orch.Submit(r.Context(), session, room, req.CustomerID)
	if err != nil {
		s.log.Error().Err(err).Int64("room_id", room.RoomID).Msg("failed to create reservation")
		writeJSON(w, http.StatusInternalServerError, CreateReservationResponse{Error: "failed to save reservation"})
		return
	}

	writeJSON(w, http.StatusCreated, CreateReservationResponse{Success: true, Reservation: rec})
}

// handleReservationByID handles the id-scoped operations:
// POST   /api/reservations/{id}/check-in
// POST   /api/reservations/{id}/check-out
// DELETE /api/reservations/{id}
func (s *HTTPServer) handleReservationByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/reservations/")
	if rest == "" {
		writeError(w, http.StatusBadRequest, "reservation id is required")
		return
	}

	id, action, _ := strings.Cut(rest, "/")

	switch {
	case r.Method == http.MethodDelete && action == "":
		metrics.IncHTTP("reservations_delete")
		s.deleteReservation(w, r, id)
	case r.Method == http.MethodPost && action == "check-in":
		metrics.IncHTTP("reservations_check_in")
		s.advanceStatus(w, r, id, models.StatusCheckedIn)
	case r.Method == http.MethodPost && action == "check-out":
		metrics.IncHTTP("reservations_check_out")
		s.advanceStatus(w, r, id, models.StatusCheckedOut)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) deleteReservation(w http.ResponseWriter, r *http.Request, id string) {
	if err := s.orch.Cancel(r.Context(), id); err != nil {
		if errors.Is(err, models.ErrReservationMissing) {
			writeError(w, http.StatusNotFound, "reservation not found")
			return
		}
		s.log.Error().Err(err).Str("reservation_id", id).Msg("failed to delete reservation")
		writeError(w, http.StatusInternalServerError, "failed to delete reservation")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *HTTPServer) advanceStatus(w http.ResponseWriter, r *http.Request, id string, to models.ReservationStatus) {
	var err error
	if to == models.StatusCheckedIn {
		err = s.orch.CheckIn(r.Context(), id)
	} else {
		err = s.orch.CheckOut(r.Context(), id)
	}

	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "status": string(to)})
	case errors.Is(err, models.ErrReservationMissing):
		writeError(w, http.StatusNotFound, "reservation not found")
	case errors.Is(err, models.ErrNotArrivalDay), errors.Is(err, models.ErrNotDepartureDay), errors.Is(err, models.ErrStatusTransition):
		writeError(w, http.StatusConflict, err.Error())
	default:
		s.log.Error().Err(err).Str("reservation_id", id).Msg("failed to advance reservation status")
		writeError(w, http.StatusInternalServerError, "failed to update reservation")
	}
}
