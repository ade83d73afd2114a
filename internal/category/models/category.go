package models

import (
	"unicode/utf8"

	"github.com/google/uuid"

	dErrors "workout/pkg/domain-errors"
)

// MaxNameLength bounds Category.Name in characters.
const MaxNameLength = 50

// Category groups athletes by skill level (e.g. "Scale", "RX").
//
// Invariants:
//   - Name is non-empty, at most 50 characters and unique (exact match)
//   - ID is assigned by the store and never changes
//   - ExternalID is generated on creation and never used for lookup
type Category struct {
	ID         int64
	ExternalID uuid.UUID
	Name       string
}

func NewCategory(externalID uuid.UUID, name string) (*Category, error) {
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "category name cannot be empty")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "category name must be 50 characters or less")
	}
	return &Category{ExternalID: externalID, Name: name}, nil
}
