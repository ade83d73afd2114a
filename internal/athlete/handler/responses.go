package handler

import (
	"time"

	"github.com/google/uuid"

	"workout/internal/athlete/models"
	"workout/pkg/platform/pagination"
)

// AthleteResponse is the full shape returned by create, get and update.
type AthleteResponse struct {
	ID                int64     `json:"id"`
	ExternalID        uuid.UUID `json:"external_id"`
	Nome              string    `json:"nome"`
	CPF               string    `json:"cpf"`
	Idade             int       `json:"idade"`
	Peso              float64   `json:"peso"`
	Altura            float64   `json:"altura"`
	Sexo              string    `json:"sexo"`
	Categoria         NameRef   `json:"categoria"`
	CentroTreinamento NameRef   `json:"centro_treinamento"`
	CreatedAt         time.Time `json:"created_at"`
}

// AthleteSummary is the list shape. It deliberately omits cpf and body measurements.
type AthleteSummary struct {
	Nome              string  `json:"nome"`
	Categoria         NameRef `json:"categoria"`
	CentroTreinamento NameRef `json:"centro_treinamento"`
}

func toAthleteResponse(a *models.Athlete) AthleteResponse {
	return AthleteResponse{
		ID:                a.ID,
		ExternalID:        a.ExternalID,
		Nome:              a.Name,
		CPF:               a.CPF,
		Idade:             a.Age,
		Peso:              a.Weight,
		Altura:            a.Height,
		Sexo:              string(a.Sex),
		Categoria:         NameRef{Nome: a.CategoryName},
		CentroTreinamento: NameRef{Nome: a.TrainingCenterName},
		CreatedAt:         a.CreatedAt,
	}
}

func toSummaryPage(page pagination.Page[*models.Athlete]) pagination.Page[AthleteSummary] {
	items := make([]AthleteSummary, 0, len(page.Items))
	for _, a := range page.Items {
		items = append(items, AthleteSummary{
			Nome:              a.Name,
			Categoria:         NameRef{Nome: a.CategoryName},
			CentroTreinamento: NameRef{Nome: a.TrainingCenterName},
		})
	}
	return pagination.Page[AthleteSummary]{
		Items: items,
		Total: page.Total,
		Page:  page.Page,
		Size:  page.Size,
		Pages: page.Pages,
	}
}
