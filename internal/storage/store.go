// Package storage defines the persistence contracts shared by the Postgres and
// in-memory backends.
//
// Stores report infrastructure facts with pkg/platform/sentinel errors:
//   - sentinel.ErrNotFound when a lookup or mutation targets a missing row
//   - sentinel.ErrAlreadyUsed when a unique name or CPF is taken
//   - sentinel.ErrReferenceMissing when an athlete points at a missing category or center
//
// Services translate them into domain errors.
package storage

import (
	"context"

	athletemodels "workout/internal/athlete/models"
	categorymodels "workout/internal/category/models"
	centermodels "workout/internal/trainingcenter/models"
	"workout/pkg/platform/pagination"
)

type CategoryStore interface {
	// Create inserts c and sets c.ID.
	Create(ctx context.Context, c *categorymodels.Category) error
	FindByID(ctx context.Context, id int64) (*categorymodels.Category, error)
	FindByName(ctx context.Context, name string) (*categorymodels.Category, error)
	// List returns every category ordered by ID.
	List(ctx context.Context) ([]*categorymodels.Category, error)
}

type TrainingCenterStore interface {
	Create(ctx context.Context, tc *centermodels.TrainingCenter) error
	FindByID(ctx context.Context, id int64) (*centermodels.TrainingCenter, error)
	FindByName(ctx context.Context, name string) (*centermodels.TrainingCenter, error)
	List(ctx context.Context) ([]*centermodels.TrainingCenter, error)
}

type AthleteStore interface {
	// Create inserts a and sets a.ID.
	Create(ctx context.Context, a *athletemodels.Athlete) error
	FindByID(ctx context.Context, id int64) (*athletemodels.Athlete, error)
	// List returns one page ordered by ID plus the total number of matches.
	List(ctx context.Context, filter athletemodels.Filter, page pagination.Params) ([]*athletemodels.Athlete, int, error)
	// Update persists the mutable fields (name, age) of a.
	Update(ctx context.Context, a *athletemodels.Athlete) error
	Delete(ctx context.Context, id int64) error
}

// Stores is the set of stores bound to one unit of work.
type Stores struct {
	Categories      CategoryStore
	TrainingCenters TrainingCenterStore
	Athletes        AthleteStore
}

// UnitOfWork runs fn atomically. Changes made through the given stores are
// committed when fn returns nil and discarded otherwise.
type UnitOfWork interface {
	RunInTx(ctx context.Context, fn func(stores Stores) error) error
}
