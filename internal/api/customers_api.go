package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"roomdesk/internal/metrics"
	"roomdesk/internal/models"
)

// CreateCustomerRequest is the request body for POST /api/customers.
type CreateCustomerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// handleCustomers creates customers.
// POST /api/customers
func (s *HTTPServer) handleCustomers(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("customers_create")
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed; use POST")
		return
	}

	var req CreateCustomerRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.FirstName == "" && req.LastName == "" {
		writeError(w, http.StatusBadRequest, "a name is required")
		return
	}

	customer := &models.Customer{
		CustomerID: uuid.NewString(),
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		CreatedAt:  time.Now(),
	}
	if err := s.db.SaveCustomer(r.Context(), customer); err != nil {
		s.log.Error().Err(err).Msg("failed to save customer")
		writeError(w, http.StatusInternalServerError, "failed to save customer")
		return
	}

	writeJSON(w, http.StatusCreated, customer)
}

// handleCustomerSearch does fuzzy name lookup.
// GET /api/customers/search?q=ann
func (s *HTTPServer) handleCustomerSearch(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("customers_search")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	matches, err := s.db.SearchCustomersByName(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.log.Error().Err(err).Msg("customer search failed")
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}
	if matches == nil {
		matches = []models.Customer{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"customers": matches})
}
