package handler

import (
	"strings"
	"unicode/utf8"

	"workout/internal/category/models"
	dErrors "workout/pkg/domain-errors"
)

// CreateCategoryRequest is the body of POST /categorias.
type CreateCategoryRequest struct {
	Nome string `json:"nome"`
}

func (r *CreateCategoryRequest) Normalize() {
	r.Nome = strings.TrimSpace(r.Nome)
}

// Validate implements httputil.Validatable.
func (r *CreateCategoryRequest) Validate() error {
	switch {
	case r.Nome == "":
		return dErrors.Field("nome", "Nome é obrigatório")
	case utf8.RuneCountInString(r.Nome) > models.MaxNameLength:
		return dErrors.Field("nome", "Nome deve ter no máximo 50 caracteres")
	}
	return nil
}
