package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	athletemodels "workout/internal/athlete/models"
	categorymodels "workout/internal/category/models"
	centermodels "workout/internal/trainingcenter/models"
	"workout/internal/storage"
	dErrors "workout/pkg/domain-errors"
	"workout/pkg/platform/pagination"
	"workout/pkg/platform/sentinel"
)

type StoreSuite struct {
	suite.Suite
	ctx   context.Context
	store *Store
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = New()
}

func (s *StoreSuite) seedReferences() (*categorymodels.Category, *centermodels.TrainingCenter) {
	category := &categorymodels.Category{ExternalID: uuid.New(), Name: "Scale"}
	center := &centermodels.TrainingCenter{ExternalID: uuid.New(), Name: "CT King", Address: "Rua X, Q02", Owner: "Marcos"}
	err := s.store.RunInTx(s.ctx, func(st storage.Stores) error {
		if err := st.Categories.Create(s.ctx, category); err != nil {
			return err
		}
		return st.TrainingCenters.Create(s.ctx, center)
	})
	s.Require().NoError(err)
	return category, center
}

func (s *StoreSuite) newAthlete(name, cpf string, categoryID, centerID int64) *athletemodels.Athlete {
	return &athletemodels.Athlete{
		ExternalID:       uuid.New(),
		Name:             name,
		CPF:              cpf,
		Age:              25,
		Weight:           75.5,
		Height:           1.70,
		Sex:              athletemodels.SexMale,
		CategoryID:       categoryID,
		TrainingCenterID: centerID,
		CreatedAt:        time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func (s *StoreSuite) createAthlete(a *athletemodels.Athlete) error {
	return s.store.RunInTx(s.ctx, func(st storage.Stores) error {
		return st.Athletes.Create(s.ctx, a)
	})
}

func (s *StoreSuite) TestCategoryIDsAreSequential() {
	first := &categorymodels.Category{ExternalID: uuid.New(), Name: "Scale"}
	second := &categorymodels.Category{ExternalID: uuid.New(), Name: "RX"}
	err := s.store.RunInTx(s.ctx, func(st storage.Stores) error {
		if err := st.Categories.Create(s.ctx, first); err != nil {
			return err
		}
		return st.Categories.Create(s.ctx, second)
	})
	s.Require().NoError(err)
	s.Equal(int64(1), first.ID)
	s.Equal(int64(2), second.ID)

	var listed []*categorymodels.Category
	s.Require().NoError(s.store.RunInTx(s.ctx, func(st storage.Stores) error {
		var err error
		listed, err = st.Categories.List(s.ctx)
		return err
	}))
	s.Require().Len(listed, 2)
	s.Equal("Scale", listed[0].Name)
	s.Equal("RX", listed[1].Name)
}

func (s *StoreSuite) TestDuplicateCategoryName() {
	s.seedReferences()
	err := s.store.RunInTx(s.ctx, func(st storage.Stores) error {
		return st.Categories.Create(s.ctx, &categorymodels.Category{ExternalID: uuid.New(), Name: "Scale"})
	})
	s.ErrorIs(err, sentinel.ErrAlreadyUsed)
}

func (s *StoreSuite) TestDuplicateTrainingCenterName() {
	s.seedReferences()
	err := s.store.RunInTx(s.ctx, func(st storage.Stores) error {
		return st.TrainingCenters.Create(s.ctx, &centermodels.TrainingCenter{ExternalID: uuid.New(), Name: "CT King"})
	})
	s.ErrorIs(err, sentinel.ErrAlreadyUsed)
}

func (s *StoreSuite) TestFindByNameIsExact() {
	s.seedReferences()
	s.Require().NoError(s.store.RunInTx(s.ctx, func(st storage.Stores) error {
		c, err := st.Categories.FindByName(s.ctx, "Scale")
		s.Require().NoError(err)
		s.Equal("Scale", c.Name)

		_, err = st.Categories.FindByName(s.ctx, "scale")
		s.ErrorIs(err, sentinel.ErrNotFound)

		tc, err := st.TrainingCenters.FindByName(s.ctx, "CT King")
		s.Require().NoError(err)
		s.Equal("Marcos", tc.Owner)
		return nil
	}))
}

func (s *StoreSuite) TestAthleteCreateDenormalisesNames() {
	category, center := s.seedReferences()
	a := s.newAthlete("Joao", "12345678909", category.ID, center.ID)
	s.Require().NoError(s.createAthlete(a))

	s.Require().NoError(s.store.RunInTx(s.ctx, func(st storage.Stores) error {
		found, err := st.Athletes.FindByID(s.ctx, a.ID)
		s.Require().NoError(err)
		s.Equal("Scale", found.CategoryName)
		s.Equal("CT King", found.TrainingCenterName)
		return nil
	}))
}

func (s *StoreSuite) TestAthleteConstraints() {
	category, center := s.seedReferences()
	s.Require().NoError(s.createAthlete(s.newAthlete("Joao", "12345678909", category.ID, center.ID)))

	s.Run("duplicate cpf", func() {
		err := s.createAthlete(s.newAthlete("Maria", "12345678909", category.ID, center.ID))
		s.ErrorIs(err, sentinel.ErrAlreadyUsed)
	})
	s.Run("missing category", func() {
		err := s.createAthlete(s.newAthlete("Maria", "98765432100", 99, center.ID))
		s.ErrorIs(err, sentinel.ErrReferenceMissing)
	})
	s.Run("missing training center", func() {
		err := s.createAthlete(s.newAthlete("Maria", "98765432100", category.ID, 99))
		s.ErrorIs(err, sentinel.ErrReferenceMissing)
	})
}

func (s *StoreSuite) TestFailedUnitOfWorkIsDiscarded() {
	category, center := s.seedReferences()
	boom := errors.New("boom")

	err := s.store.RunInTx(s.ctx, func(st storage.Stores) error {
		if err := st.Athletes.Create(s.ctx, s.newAthlete("Joao", "12345678909", category.ID, center.ID)); err != nil {
			return err
		}
		return boom
	})
	s.ErrorIs(err, boom)

	s.Require().NoError(s.store.RunInTx(s.ctx, func(st storage.Stores) error {
		_, total, err := st.Athletes.List(s.ctx, athletemodels.Filter{}, pagination.Default())
		s.Require().NoError(err)
		s.Zero(total)
		return nil
	}))

	// A rolled-back insert does not consume the id.
	a := s.newAthlete("Joao", "12345678909", category.ID, center.ID)
	s.Require().NoError(s.createAthlete(a))
	s.Equal(int64(1), a.ID)
}

func (s *StoreSuite) TestCancelledContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	called := false
	err := s.store.RunInTx(ctx, func(storage.Stores) error {
		called = true
		return nil
	})
	s.False(called)
	s.True(dErrors.HasCode(err, dErrors.CodeTimeout))
}

func (s *StoreSuite) TestAthleteListFiltersAndPages() {
	category, center := s.seedReferences()
	for _, a := range []*athletemodels.Athlete{
		s.newAthlete("Joao Silva", "12345678909", category.ID, center.ID),
		s.newAthlete("Maria", "98765432100", category.ID, center.ID),
		s.newAthlete("joana", "52998224725", category.ID, center.ID),
	} {
		s.Require().NoError(s.createAthlete(a))
	}

	list := func(f athletemodels.Filter, p pagination.Params) ([]*athletemodels.Athlete, int) {
		var items []*athletemodels.Athlete
		var total int
		s.Require().NoError(s.store.RunInTx(s.ctx, func(st storage.Stores) error {
			var err error
			items, total, err = st.Athletes.List(s.ctx, f, p)
			return err
		}))
		return items, total
	}

	s.Run("name is case insensitive substring", func() {
		items, total := list(athletemodels.Filter{Name: "JOA"}, pagination.Default())
		s.Equal(2, total)
		s.Require().Len(items, 2)
		s.Equal("Joao Silva", items[0].Name)
		s.Equal("joana", items[1].Name)
	})
	s.Run("cpf is exact", func() {
		items, total := list(athletemodels.Filter{CPF: "98765432100"}, pagination.Default())
		s.Equal(1, total)
		s.Require().Len(items, 1)
		s.Equal("Maria", items[0].Name)
	})
	s.Run("pages in id order", func() {
		items, total := list(athletemodels.Filter{}, pagination.Params{Page: 2, Size: 2})
		s.Equal(3, total)
		s.Require().Len(items, 1)
		s.Equal("joana", items[0].Name)
	})
	s.Run("page past the end is empty", func() {
		items, total := list(athletemodels.Filter{}, pagination.Params{Page: 5, Size: 2})
		s.Equal(3, total)
		s.Empty(items)
	})
}

func (s *StoreSuite) TestAthleteUpdateAndDelete() {
	category, center := s.seedReferences()
	a := s.newAthlete("Joao", "12345678909", category.ID, center.ID)
	s.Require().NoError(s.createAthlete(a))

	s.Require().NoError(s.store.RunInTx(s.ctx, func(st storage.Stores) error {
		return st.Athletes.Update(s.ctx, &athletemodels.Athlete{ID: a.ID, Name: "Joao Pedro", Age: 30, CPF: "ignored"})
	}))

	s.Require().NoError(s.store.RunInTx(s.ctx, func(st storage.Stores) error {
		found, err := st.Athletes.FindByID(s.ctx, a.ID)
		s.Require().NoError(err)
		s.Equal("Joao Pedro", found.Name)
		s.Equal(30, found.Age)
		s.Equal("12345678909", found.CPF)
		return st.Athletes.Delete(s.ctx, a.ID)
	}))

	err := s.store.RunInTx(s.ctx, func(st storage.Stores) error {
		return st.Athletes.Delete(s.ctx, a.ID)
	})
	s.ErrorIs(err, sentinel.ErrNotFound)

	err = s.store.RunInTx(s.ctx, func(st storage.Stores) error {
		return st.Athletes.Update(s.ctx, a)
	})
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func TestReturnedModelsAreCopies(t *testing.T) {
	store := New()
	ctx := context.Background()
	c := &categorymodels.Category{ExternalID: uuid.New(), Name: "Scale"}
	require.NoError(t, store.RunInTx(ctx, func(st storage.Stores) error {
		return st.Categories.Create(ctx, c)
	}))
	c.Name = "mutated"

	require.NoError(t, store.RunInTx(ctx, func(st storage.Stores) error {
		found, err := st.Categories.FindByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, "Scale", found.Name)
		return nil
	}))
}
