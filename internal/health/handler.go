// Package health serves the liveness payload and the readiness probe.
package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"workout/pkg/platform/httputil"
	"workout/pkg/requestcontext"
)

const (
	Version = "1.0.0"
	message = "WorkoutAPI está funcionando!"

	defaultCheckTimeout = 2 * time.Second
)

// Checker is satisfied by anything that can report its own availability,
// such as the Postgres store or the Redis client.
type Checker interface {
	Health(ctx context.Context) error
}

// CheckerFunc adapts a function to Checker.
type CheckerFunc func(ctx context.Context) error

func (f CheckerFunc) Health(ctx context.Context) error { return f(ctx) }

type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Version string `json:"version"`
}

type ReadyResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type Handler struct {
	checkers map[string]Checker
	timeout  time.Duration
	logger   *slog.Logger
}

type Option func(*Handler)

// WithChecker registers a named dependency for the readiness probe.
// Nil checkers are ignored so optional dependencies can be passed unconditionally.
func WithChecker(name string, c Checker) Option {
	return func(h *Handler) {
		if c != nil {
			h.checkers[name] = c
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(h *Handler) {
		if d > 0 {
			h.timeout = d
		}
	}
}

func New(logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{
		checkers: make(map[string]Checker),
		timeout:  defaultCheckTimeout,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.HandleRoot)
	r.Get("/healthz/ready", h.HandleReady)
}

// HandleRoot handles GET /.
func (h *Handler) HandleRoot(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, Response{Status: "ok", Message: message, Version: Version})
}

// HandleReady handles GET /healthz/ready.
func (h *Handler) HandleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	resp := ReadyResponse{Status: "ok", Checks: make(map[string]string, len(h.checkers))}
	status := http.StatusOK
	for name, c := range h.checkers {
		if err := c.Health(ctx); err != nil {
			h.logger.WarnContext(ctx, "readiness check failed",
				"request_id", requestcontext.RequestID(ctx),
				"dependency", name,
				"error", err,
			)
			resp.Checks[name] = "unavailable"
			resp.Status = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}
	httputil.WriteJSON(w, status, resp)
}
