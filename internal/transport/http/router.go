package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"workout/internal/platform/metrics"
	"workout/internal/platform/middleware"
	dErrors "workout/pkg/domain-errors"
	"workout/pkg/platform/httputil"
	"workout/pkg/platform/middleware/metadata"
	"workout/pkg/platform/middleware/requesttime"
)

// Registrar is implemented by every feature handler.
type Registrar interface {
	Register(r chi.Router)
}

// Config carries the cross-cutting pieces the router wires around the handlers.
type Config struct {
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	Gatherer       prometheus.Gatherer
	Limiter        *middleware.RateLimiter
	RequestTimeout time.Duration
}

// NewRouter builds the chi router: the shared middleware stack, /metrics, and
// the routes of each handler.
func NewRouter(cfg Config, handlers ...Registrar) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.StripSlashes)
	r.Use(middleware.RequestID)
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.CORS)
	r.Use(middleware.LatencyMiddleware(cfg.Metrics))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "Recurso não encontrado"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusMethodNotAllowed, httputil.ErrorResponse{
			Error:  "method_not_allowed",
			Detail: "Método não permitido",
		})
	})

	if cfg.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		if cfg.RequestTimeout > 0 {
			r.Use(middleware.Timeout(cfg.RequestTimeout))
		}
		r.Use(middleware.ContentTypeJSON)
		r.Use(middleware.RateLimit(cfg.Limiter, cfg.Logger, cfg.Metrics))
		for _, h := range handlers {
			h.Register(r)
		}
	})

	return r
}
