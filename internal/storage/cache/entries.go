package cache

import (
	"github.com/google/uuid"

	categorymodels "workout/internal/category/models"
	centermodels "workout/internal/trainingcenter/models"
)

// toModel rejects entries written by an incompatible version.
func (e categoryEntry) toModel() (*categorymodels.Category, bool) {
	id, err := uuid.Parse(e.ExternalID)
	if err != nil || e.ID == 0 || e.Name == "" {
		return nil, false
	}
	return &categorymodels.Category{ID: e.ID, ExternalID: id, Name: e.Name}, true
}

func (e trainingCenterEntry) toModel() (*centermodels.TrainingCenter, bool) {
	id, err := uuid.Parse(e.ExternalID)
	if err != nil || e.ID == 0 || e.Name == "" {
		return nil, false
	}
	return &centermodels.TrainingCenter{
		ID:         e.ID,
		ExternalID: id,
		Name:       e.Name,
		Address:    e.Address,
		Owner:      e.Owner,
	}, true
}
