package handler

import (
	"strings"
	"unicode/utf8"

	"workout/internal/athlete/models"
	"workout/internal/athlete/service"
	dErrors "workout/pkg/domain-errors"
)

// NameRef points at a category or training center by name.
type NameRef struct {
	Nome string `json:"nome"`
}

// CreateAthleteRequest is the body of POST /atletas.
type CreateAthleteRequest struct {
	Nome              string  `json:"nome"`
	CPF               string  `json:"cpf"`
	Idade             int     `json:"idade"`
	Peso              float64 `json:"peso"`
	Altura            float64 `json:"altura"`
	Sexo              string  `json:"sexo"`
	Categoria         NameRef `json:"categoria"`
	CentroTreinamento NameRef `json:"centro_treinamento"`
}

func (r *CreateAthleteRequest) Normalize() {
	r.Nome = strings.TrimSpace(r.Nome)
	r.CPF = strings.TrimSpace(r.CPF)
	r.Sexo = strings.ToUpper(strings.TrimSpace(r.Sexo))
	r.Categoria.Nome = strings.TrimSpace(r.Categoria.Nome)
	r.CentroTreinamento.Nome = strings.TrimSpace(r.CentroTreinamento.Nome)
}

// Validate checks shape only. The CPF checksum is verified by the service
// after the references resolve.
func (r *CreateAthleteRequest) Validate() error {
	var fields []dErrors.FieldError
	add := func(field, message string) {
		fields = append(fields, dErrors.FieldError{Field: field, Message: message, Type: "value_error"})
	}

	if msg := nameProblem(r.Nome); msg != "" {
		add("nome", msg)
	}
	if r.CPF == "" {
		add("cpf", "CPF é obrigatório")
	}
	if msg := ageProblem(r.Idade); msg != "" {
		add("idade", msg)
	}
	if r.Peso <= 0 {
		add("peso", "Peso deve ser maior que zero")
	}
	if r.Altura <= 0 {
		add("altura", "Altura deve ser maior que zero")
	}
	if !models.Sex(r.Sexo).IsValid() {
		add("sexo", "Sexo deve ser 'M' ou 'F'")
	}
	if r.Categoria.Nome == "" {
		add("categoria.nome", "Categoria é obrigatória")
	}
	if r.CentroTreinamento.Nome == "" {
		add("centro_treinamento.nome", "Centro de treinamento é obrigatório")
	}

	if len(fields) > 0 {
		return dErrors.NewValidation(fields...)
	}
	return nil
}

func (r *CreateAthleteRequest) params() service.CreateParams {
	return service.CreateParams{
		Name:               r.Nome,
		CPF:                r.CPF,
		Age:                r.Idade,
		Weight:             r.Peso,
		Height:             r.Altura,
		Sex:                models.Sex(r.Sexo),
		CategoryName:       r.Categoria.Nome,
		TrainingCenterName: r.CentroTreinamento.Nome,
	}
}

// UpdateAthleteRequest is the body of PATCH /atletas/{id}. Absent fields are kept.
type UpdateAthleteRequest struct {
	Nome  *string `json:"nome"`
	Idade *int    `json:"idade"`
}

func (r *UpdateAthleteRequest) Normalize() {
	if r.Nome != nil {
		trimmed := strings.TrimSpace(*r.Nome)
		r.Nome = &trimmed
	}
}

func (r *UpdateAthleteRequest) Validate() error {
	var fields []dErrors.FieldError
	if r.Nome != nil {
		if msg := nameProblem(*r.Nome); msg != "" {
			fields = append(fields, dErrors.FieldError{Field: "nome", Message: msg, Type: "value_error"})
		}
	}
	if r.Idade != nil {
		if msg := ageProblem(*r.Idade); msg != "" {
			fields = append(fields, dErrors.FieldError{Field: "idade", Message: msg, Type: "value_error"})
		}
	}
	if len(fields) > 0 {
		return dErrors.NewValidation(fields...)
	}
	return nil
}

func (r *UpdateAthleteRequest) patch() models.Patch {
	return models.Patch{Name: r.Nome, Age: r.Idade}
}

func nameProblem(name string) string {
	switch {
	case name == "":
		return "Nome é obrigatório"
	case utf8.RuneCountInString(name) > models.MaxNameLength:
		return "Nome deve ter no máximo 50 caracteres"
	}
	return ""
}

func ageProblem(age int) string {
	if age < models.MinAge || age > models.MaxAge {
		return "Idade deve estar entre 1 e 149"
	}
	return ""
}
