package api

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"roomdesk/internal/metrics"
	"roomdesk/internal/report"
)

// handleReservationsReport streams an Excel export of every stored
// reservation. GET /api/reports/reservations.xlsx
func (s *HTTPServer) handleReservationsReport(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("reservations_report")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	reservations, err := s.db.List(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list reservations for report")
		writeError(w, http.StatusInternalServerError, "failed to build report")
		return
	}

	// Render to a buffer first so a mid-write failure does not leave a
	// truncated download with a 200 status.
	var buf bytes.Buffer
	if err := report.WriteReservations(&buf, reservations, s.roomIdx); err != nil {
		s.log.Error().Err(err).Msg("failed to render reservations report")
		writeError(w, http.StatusInternalServerError, "failed to build report")
		return
	}

	filename := fmt.Sprintf("reservations-%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
