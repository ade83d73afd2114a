// Package pagination parses page/size query parameters and builds the list envelope.
package pagination

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	dErrors "workout/pkg/domain-errors"
)

const (
	DefaultPage = 1
	DefaultSize = 50
	MaxSize     = 100
	// MaxPage keeps (page-1)*size within int for every accepted size.
	MaxPage = math.MaxInt / MaxSize
)

// Params is a validated page request. Page is 1-based.
type Params struct {
	Page int
	Size int
}

// Offset is the number of rows to skip.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Size
}

// Default returns the first page with the default size.
func Default() Params {
	return Params{Page: DefaultPage, Size: DefaultSize}
}

// FromQuery reads "page" and "size". Missing values take defaults; malformed or
// out-of-range values fail with a validation error per field.
func FromQuery(q url.Values) (Params, error) {
	p := Default()
	var fields []dErrors.FieldError

	if raw := strings.TrimSpace(q.Get("page")); raw != "" {
		n, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			fields = append(fields, dErrors.FieldError{Field: "page", Message: "page deve ser um número inteiro", Type: "int_parsing"})
		case n < 1:
			fields = append(fields, dErrors.FieldError{Field: "page", Message: "page deve ser maior ou igual a 1", Type: "greater_than_equal"})
		case n > MaxPage:
			fields = append(fields, dErrors.FieldError{Field: "page", Message: "page deve ser menor ou igual a " + strconv.Itoa(MaxPage), Type: "less_than_equal"})
		default:
			p.Page = n
		}
	}

	if raw := strings.TrimSpace(q.Get("size")); raw != "" {
		n, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			fields = append(fields, dErrors.FieldError{Field: "size", Message: "size deve ser um número inteiro", Type: "int_parsing"})
		case n < 1 || n > MaxSize:
			fields = append(fields, dErrors.FieldError{Field: "size", Message: "size deve estar entre 1 e " + strconv.Itoa(MaxSize), Type: "value_error"})
		default:
			p.Size = n
		}
	}

	if len(fields) > 0 {
		return Params{}, dErrors.NewValidation(fields...)
	}
	return p, nil
}

// Page is the JSON list envelope returned by paginated endpoints.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Size  int `json:"size"`
	Pages int `json:"pages"`
}

// New builds a page; items is never encoded as null.
func New[T any](items []T, total int, p Params) Page[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if p.Size > 0 {
		pages = (total + p.Size - 1) / p.Size
	}
	return Page[T]{Items: items, Total: total, Page: p.Page, Size: p.Size, Pages: pages}
}
