package testutil

import (
	"net/http"
	"time"

	"workout/pkg/requestcontext"
)

// WithRequestTime pins the request-scoped clock so created_at is deterministic.
func WithRequestTime(req *http.Request, t time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), t))
}
