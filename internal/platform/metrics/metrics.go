package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	HTTPRequestDuration    *prometheus.HistogramVec
	CategoriesCreated      prometheus.Counter
	TrainingCentersCreated prometheus.Counter
	AthletesCreated        prometheus.Counter
	AthletesUpdated        prometheus.Counter
	AthletesDeleted        prometheus.Counter
	CacheLookups           *prometheus.CounterVec
	RateLimited            prometheus.Counter
}

// New creates and registers all Prometheus metrics on reg.
// main passes prometheus.DefaultRegisterer; tests pass a fresh registry.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "workout_http_request_duration_seconds",
			Help:    "HTTP request latency by route, method and status",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"route", "method", "status"}),
		CategoriesCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "workout_categories_created_total",
			Help: "Total number of categories created",
		}),
		TrainingCentersCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "workout_training_centers_created_total",
			Help: "Total number of training centers created",
		}),
		AthletesCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "workout_athletes_created_total",
			Help: "Total number of athletes created",
		}),
		AthletesUpdated: factory.NewCounter(prometheus.CounterOpts{
			Name: "workout_athletes_updated_total",
			Help: "Total number of athlete updates",
		}),
		AthletesDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "workout_athletes_deleted_total",
			Help: "Total number of athletes deleted",
		}),
		CacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "workout_lookup_cache_total",
			Help: "Name lookup cache results by entity and outcome (hit, miss, error)",
		}, []string{"entity", "result"}),
		RateLimited: factory.NewCounter(prometheus.CounterOpts{
			Name: "workout_rate_limited_requests_total",
			Help: "Requests rejected by the rate limiter",
		}),
	}
}

// ObserveRequest records the latency of one HTTP request.
func (m *Metrics) ObserveRequest(route, method, status string, start time.Time) {
	m.HTTPRequestDuration.WithLabelValues(route, method, status).Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncrementCategoriesCreated() {
	m.CategoriesCreated.Inc()
}

func (m *Metrics) IncrementTrainingCentersCreated() {
	m.TrainingCentersCreated.Inc()
}

func (m *Metrics) IncrementAthletesCreated() {
	m.AthletesCreated.Inc()
}

func (m *Metrics) IncrementAthletesUpdated() {
	m.AthletesUpdated.Inc()
}

func (m *Metrics) IncrementAthletesDeleted() {
	m.AthletesDeleted.Inc()
}

// ObserveCacheLookup counts a lookup cache outcome: "hit", "miss" or "error".
func (m *Metrics) ObserveCacheLookup(entity, result string) {
	m.CacheLookups.WithLabelValues(entity, result).Inc()
}

func (m *Metrics) IncrementRateLimited() {
	m.RateLimited.Inc()
}
