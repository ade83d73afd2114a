package handler

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"workout/internal/trainingcenter/models"
	"workout/internal/trainingcenter/service"
	dErrors "workout/pkg/domain-errors"
)

// CreateTrainingCenterRequest is the body of POST /centros_treinamento.
type CreateTrainingCenterRequest struct {
	Nome         string `json:"nome"`
	Endereco     string `json:"endereco"`
	Proprietario string `json:"proprietario"`
}

func (r *CreateTrainingCenterRequest) Normalize() {
	r.Nome = strings.TrimSpace(r.Nome)
	r.Endereco = strings.TrimSpace(r.Endereco)
	r.Proprietario = strings.TrimSpace(r.Proprietario)
}

// Validate reports every invalid field at once.
func (r *CreateTrainingCenterRequest) Validate() error {
	var fields []dErrors.FieldError
	check := func(field, value string, limit int, label string) {
		switch {
		case value == "":
			fields = append(fields, dErrors.FieldError{Field: field, Message: label + " é obrigatório", Type: "missing"})
		case utf8.RuneCountInString(value) > limit:
			fields = append(fields, dErrors.FieldError{
				Field:   field,
				Message: label + " deve ter no máximo " + strconv.Itoa(limit) + " caracteres",
				Type:    "string_too_long",
			})
		}
	}
	check("nome", r.Nome, models.MaxNameLength, "Nome")
	check("endereco", r.Endereco, models.MaxAddressLength, "Endereço")
	check("proprietario", r.Proprietario, models.MaxOwnerLength, "Proprietário")

	if len(fields) > 0 {
		return dErrors.NewValidation(fields...)
	}
	return nil
}

func (r *CreateTrainingCenterRequest) params() service.CreateParams {
	return service.CreateParams{Name: r.Nome, Address: r.Endereco, Owner: r.Proprietario}
}
