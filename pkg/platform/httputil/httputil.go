// Package httputil holds the JSON encoding and error translation shared by all handlers.
package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	dErrors "workout/pkg/domain-errors"
)

const maxBodyBytes = 1 << 20

// genericInternalMessage is returned for every internal error; causes stay in the logs.
const genericInternalMessage = "Erro interno no servidor"

// Validatable is implemented by request bodies that check their own fields.
type Validatable interface {
	Validate() error
}

// Normalizer is implemented by request bodies that trim or canonicalise input before validation.
type Normalizer interface {
	Normalize()
}

// ErrorResponse is the JSON envelope for every failed request.
type ErrorResponse struct {
	Error  string               `json:"error"`
	Detail string               `json:"detail"`
	Errors []dErrors.FieldError `json:"errors,omitempty"`
}

// WriteJSON encodes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into its HTTP status and envelope.
// Errors without a domain code are treated as internal.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	status := StatusFor(code)

	resp := ErrorResponse{Error: string(code), Detail: dErrors.MessageOf(err)}
	if code == dErrors.CodeInternal || resp.Detail == "" {
		resp.Detail = genericInternalMessage
	}
	if code == dErrors.CodeValidation {
		resp.Errors = dErrors.FieldErrors(err)
	}
	WriteJSON(w, status, resp)
}

// StatusFor maps a domain code to an HTTP status.
//
// Duplicates answer 303 See Other instead of 409; existing clients depend on it.
func StatusFor(code dErrors.Code) int {
	switch code {
	case dErrors.CodeBadRequest, dErrors.CodeReferenceNotFound:
		return http.StatusBadRequest
	case dErrors.CodeValidation, dErrors.CodeInvariantViolation:
		return http.StatusUnprocessableEntity
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeAlreadyExists:
		return http.StatusSeeOther
	case dErrors.CodeTooManyRequests:
		return http.StatusTooManyRequests
	case dErrors.CodeUnavailable:
		return http.StatusServiceUnavailable
	case dErrors.CodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// DecodeAndPrepare decodes the JSON body into a T, normalises and validates it.
// On failure it writes the error response, logs it, and returns ok=false.
func DecodeAndPrepare[T any, PT interface {
	*T
	Validatable
}](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (*T, bool) {
	var req T
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			logger.WarnContext(ctx, "request field has wrong type",
				"request_id", requestID,
				"path", r.URL.Path,
				"field", typeErr.Field,
			)
			WriteError(w, dErrors.Field(typeErr.Field, "Tipo inválido, esperado "+typeErr.Type.String()))
			return nil, false
		}

		message := "Corpo da requisição inválido"
		if errors.Is(err, io.EOF) {
			message = "Corpo da requisição é obrigatório"
		}
		logger.WarnContext(ctx, "invalid request body",
			"request_id", requestID,
			"path", r.URL.Path,
			"error", err.Error(),
		)
		WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, message))
		return nil, false
	}

	pt := PT(&req)
	if n, ok := any(pt).(Normalizer); ok {
		n.Normalize()
	}
	if err := pt.Validate(); err != nil {
		logger.WarnContext(ctx, "request validation failed",
			"request_id", requestID,
			"path", r.URL.Path,
			"errors", dErrors.FieldErrors(err),
		)
		WriteError(w, err)
		return nil, false
	}
	return &req, true
}
