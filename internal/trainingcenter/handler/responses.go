package handler

import (
	"github.com/google/uuid"

	"workout/internal/trainingcenter/models"
)

type TrainingCenterResponse struct {
	ID           int64     `json:"id"`
	ExternalID   uuid.UUID `json:"external_id"`
	Nome         string    `json:"nome"`
	Endereco     string    `json:"endereco"`
	Proprietario string    `json:"proprietario"`
}

func toTrainingCenterResponse(tc *models.TrainingCenter) TrainingCenterResponse {
	return TrainingCenterResponse{
		ID:           tc.ID,
		ExternalID:   tc.ExternalID,
		Nome:         tc.Name,
		Endereco:     tc.Address,
		Proprietario: tc.Owner,
	}
}

func toTrainingCenterResponses(list []*models.TrainingCenter) []TrainingCenterResponse {
	out := make([]TrainingCenterResponse, 0, len(list))
	for _, tc := range list {
		out = append(out, toTrainingCenterResponse(tc))
	}
	return out
}
