package models

import (
	"unicode/utf8"

	"github.com/google/uuid"

	dErrors "workout/pkg/domain-errors"
)

const (
	MaxNameLength    = 50
	MaxAddressLength = 60
	MaxOwnerLength   = 30
)

// TrainingCenter is the gym an athlete trains at.
//
// Invariants:
//   - Name is non-empty, at most 50 characters and unique (exact match)
//   - Address is non-empty and at most 60 characters
//   - Owner is non-empty and at most 30 characters
type TrainingCenter struct {
	ID         int64
	ExternalID uuid.UUID
	Name       string
	Address    string
	Owner      string
}

func NewTrainingCenter(externalID uuid.UUID, name, address, owner string) (*TrainingCenter, error) {
	switch {
	case name == "":
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "training center name cannot be empty")
	case utf8.RuneCountInString(name) > MaxNameLength:
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "training center name must be 50 characters or less")
	case address == "":
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "training center address cannot be empty")
	case utf8.RuneCountInString(address) > MaxAddressLength:
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "training center address must be 60 characters or less")
	case owner == "":
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "training center owner cannot be empty")
	case utf8.RuneCountInString(owner) > MaxOwnerLength:
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "training center owner must be 30 characters or less")
	}
	return &TrainingCenter{
		ExternalID: externalID,
		Name:       name,
		Address:    address,
		Owner:      owner,
	}, nil
}
