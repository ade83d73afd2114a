package models

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	dErrors "workout/pkg/domain-errors"
)

const (
	MaxNameLength = 50
	MinAge        = 1
	MaxAge        = 149
)

// Sex is the competition division, "M" or "F".
type Sex string

const (
	SexMale   Sex = "M"
	SexFemale Sex = "F"
)

func (s Sex) IsValid() bool {
	return s == SexMale || s == SexFemale
}

// Athlete is a competitor registered under one category and one training center.
//
// Invariants:
//   - CPF is 11 normalised digits with valid check digits and is unique
//   - Age is in [1, 149]; Weight and Height are positive
//   - CategoryID and TrainingCenterID reference rows that existed at creation
//   - ID, ExternalID, CPF and CreatedAt never change after creation
//
// CategoryName and TrainingCenterName are read-side projections filled by stores.
type Athlete struct {
	ID                 int64
	ExternalID         uuid.UUID
	Name               string
	CPF                string
	Age                int
	Weight             float64
	Height             float64
	Sex                Sex
	CategoryID         int64
	CategoryName       string
	TrainingCenterID   int64
	TrainingCenterName string
	CreatedAt          time.Time
}

// NewAthleteParams carries already-resolved references; the CPF must be normalised.
type NewAthleteParams struct {
	ExternalID         uuid.UUID
	Name               string
	CPF                string
	Age                int
	Weight             float64
	Height             float64
	Sex                Sex
	CategoryID         int64
	CategoryName       string
	TrainingCenterID   int64
	TrainingCenterName string
	CreatedAt          time.Time
}

func NewAthlete(p NewAthleteParams) (*Athlete, error) {
	if err := validateName(p.Name); err != nil {
		return nil, err
	}
	if err := validateAge(p.Age); err != nil {
		return nil, err
	}
	switch {
	case len(p.CPF) != 11:
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "athlete cpf must be normalised to 11 digits")
	case p.Weight <= 0:
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "athlete weight must be positive")
	case p.Height <= 0:
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "athlete height must be positive")
	case !p.Sex.IsValid():
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "athlete sex must be M or F")
	case p.CategoryID == 0 || p.TrainingCenterID == 0:
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "athlete references must be resolved")
	}
	return &Athlete{
		ExternalID:         p.ExternalID,
		Name:               p.Name,
		CPF:                p.CPF,
		Age:                p.Age,
		Weight:             p.Weight,
		Height:             p.Height,
		Sex:                p.Sex,
		CategoryID:         p.CategoryID,
		CategoryName:       p.CategoryName,
		TrainingCenterID:   p.TrainingCenterID,
		TrainingCenterName: p.TrainingCenterName,
		CreatedAt:          p.CreatedAt,
	}, nil
}

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	Name *string
	Age  *int
}

func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Age == nil
}

// Apply validates every set field before mutating, so a failed patch leaves a unchanged.
// A rejected field is reported as a validation error under its wire name.
func (a *Athlete) Apply(p Patch) error {
	if p.Name != nil {
		if err := validateName(*p.Name); err != nil {
			return dErrors.Field("nome", dErrors.MessageOf(err))
		}
	}
	if p.Age != nil {
		if err := validateAge(*p.Age); err != nil {
			return dErrors.Field("idade", dErrors.MessageOf(err))
		}
	}
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Age != nil {
		a.Age = *p.Age
	}
	return nil
}

// Filter narrows athlete listings. Empty fields match everything; set fields combine with AND.
type Filter struct {
	// Name matches as a case-insensitive substring.
	Name string
	// CPF matches the normalised digits exactly.
	CPF string
}

func validateName(name string) error {
	if name == "" {
		return dErrors.New(dErrors.CodeInvariantViolation, "athlete name cannot be empty")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return dErrors.New(dErrors.CodeInvariantViolation, "athlete name must be 50 characters or less")
	}
	return nil
}

func validateAge(age int) error {
	if age < MinAge || age > MaxAge {
		return dErrors.New(dErrors.CodeInvariantViolation, "athlete age must be between 1 and 149")
	}
	return nil
}
