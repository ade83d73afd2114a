package httputil

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	dErrors "workout/pkg/domain-errors"
)

// PathID parses the named chi path parameter as a surrogate id.
// A non-integer value is a validation error on field "id".
func PathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, dErrors.NewValidation(dErrors.FieldError{
			Field:   "id",
			Message: "O id deve ser um número inteiro",
			Type:    "int_parsing",
		})
	}
	return id, nil
}
