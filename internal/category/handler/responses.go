package handler

import (
	"github.com/google/uuid"

	"workout/internal/category/models"
)

type CategoryResponse struct {
	ID         int64     `json:"id"`
	ExternalID uuid.UUID `json:"external_id"`
	Nome       string    `json:"nome"`
}

func toCategoryResponse(c *models.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, ExternalID: c.ExternalID, Nome: c.Name}
}

func toCategoryResponses(list []*models.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCategoryResponse(c))
	}
	return out
}
