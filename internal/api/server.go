// Package api exposes the eligibility engine, room filter and booking
// orchestrator over a small JSON HTTP surface.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"roomdesk/internal/booking"
	"roomdesk/internal/eligibility"
	"roomdesk/internal/filter"
	"roomdesk/internal/models"
	"roomdesk/internal/store"
)

// HTTPServer serves the booking API over the in-memory room working set.
// The room catalog is read-only reference data loaded once per session;
// reservations go through the persistence collaborator.
type HTTPServer struct {
	server *http.Server
	mux    *http.ServeMux

	rooms   []models.Room
	roomIdx map[int64]*models.Room

	engine  *eligibility.Engine
	filter  *filter.Filter
	orch    *booking.Orchestrator
	db      *store.Store
	limiter *rate.Limiter
	log     *zerolog.Logger
}

// Options configures the HTTP server.
type Options struct {
	Port          int
	RatePerSecond float64
	RateBurst     int
	ReadTimeout   time.Duration
}

// NewHTTPServer wires the API around the fetched room set.
func NewHTTPServer(opts Options, rooms []models.Room, engine *eligibility.Engine, f *filter.Filter, orch *booking.Orchestrator, db *store.Store, logger *zerolog.Logger) *HTTPServer {
	if opts.RatePerSecond <= 0 {
		opts.RatePerSecond = 50
	}
	if opts.RateBurst <= 0 {
		opts.RateBurst = 100
	}
	if opts.ReadTimeout <= 0 {
		opts.ReadTimeout = 15 * time.Second
	}

	idx := make(map[int64]*models.Room, len(rooms))
	for i := range rooms {
		idx[rooms[i].RoomID] = &rooms[i]
	}

	s := &HTTPServer{
		mux:     http.NewServeMux(),
		rooms:   rooms,
		roomIdx: idx,
		engine:  engine,
		filter:  f,
		orch:    orch,
		db:      db,
		limiter: rate.NewLimiter(rate.Limit(opts.RatePerSecond), opts.RateBurst),
		log:     logger,
	}

	s.mux.HandleFunc("/healthz", s.handleHealth)
	s.mux.HandleFunc("/api/rooms", s.handleRooms)
	s.mux.HandleFunc("/api/rooms/search", s.handleRoomSearch)
	s.mux.HandleFunc("/api/rooms/", s.handleRoomDates)
	s.mux.HandleFunc("/api/reservations", s.handleReservations)
	s.mux.HandleFunc("/api/reservations/", s.handleReservationByID)
	s.mux.HandleFunc("/api/customers", s.handleCustomers)
	s.mux.HandleFunc("/api/customers/search", s.handleCustomerSearch)
	s.mux.HandleFunc("/api/reports/reservations.xlsx", s.handleReservationsReport)

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", opts.Port),
		Handler:      s.throttle(s.mux),
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.ReadTimeout,
	}
	return s
}

// Handler returns the root handler, rate limit included.
func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

// Start serves until the listener fails or Shutdown is called.
func (s *HTTPServer) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	err := s.server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops the server gracefully.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *HTTPServer) throttle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "rooms": len(s.rooms)})
}

func (s *HTTPServer) roomByID(id int64) *models.Room {
	return s.roomIdx[id]
}

// reservations returns the current working set from the store. A read
// failure degrades to an empty set; eligibility then errs on the side of
// availability, matching the no-fatal-errors policy.
func (s *HTTPServer) reservations(ctx context.Context) []models.ReservationRecord {
	recs, err := s.db.List(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list reservations")
		return nil
	}
	return recs
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
