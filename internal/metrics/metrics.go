package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roomdesk",
			Name:      "http_requests_total",
			Help:      "Count of HTTP API requests by endpoint.",
		},
		[]string{"endpoint"},
	)

	reservationCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roomdesk",
			Name:      "reservation_created_total",
			Help:      "Count of reservations created by status.",
		},
		[]string{"status"},
	)

	reservationCancelled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "roomdesk",
			Name:      "reservation_cancelled_total",
			Help:      "Count of reservations deleted by users.",
		},
	)

	statusAdvanced = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roomdesk",
			Name:      "reservation_status_advanced_total",
			Help:      "Count of reservation status transitions.",
		},
		[]string{"status"},
	)

	catalogFetchErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "roomdesk",
			Name:      "catalog_fetch_errors_total",
			Help:      "Count of failed room catalog fetches.",
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, reservationCreated, reservationCancelled, statusAdvanced, catalogFetchErrors)
	})
}

func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}

func IncReservationCreated(status string) {
	reservationCreated.WithLabelValues(status).Inc()
}

func IncReservationCancelled() {
	reservationCancelled.Inc()
}

func IncStatusAdvanced(status string) {
	statusAdvanced.WithLabelValues(status).Inc()
}

func IncCatalogFetchError() {
	catalogFetchErrors.Inc()
}
