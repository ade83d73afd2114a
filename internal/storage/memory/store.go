// Package memory is the in-process backend used when DATABASE_URL is empty and
// by handler tests. It enforces the same unique keys and references as the
// Postgres schema.
package memory

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"strings"
	"sync"

	athletemodels "workout/internal/athlete/models"
	categorymodels "workout/internal/category/models"
	centermodels "workout/internal/trainingcenter/models"
	"workout/internal/storage"
	dErrors "workout/pkg/domain-errors"
	"workout/pkg/platform/pagination"
	"workout/pkg/platform/sentinel"
)

type state struct {
	categories      map[int64]categorymodels.Category
	trainingCenters map[int64]centermodels.TrainingCenter
	athletes        map[int64]athletemodels.Athlete
	nextCategory    int64
	nextCenter      int64
	nextAthlete     int64
}

func newState() *state {
	return &state{
		categories:      make(map[int64]categorymodels.Category),
		trainingCenters: make(map[int64]centermodels.TrainingCenter),
		athletes:        make(map[int64]athletemodels.Athlete),
	}
}

func (s *state) clone() *state {
	return &state{
		categories:      maps.Clone(s.categories),
		trainingCenters: maps.Clone(s.trainingCenters),
		athletes:        maps.Clone(s.athletes),
		nextCategory:    s.nextCategory,
		nextCenter:      s.nextCenter,
		nextAthlete:     s.nextAthlete,
	}
}

// Store serialises units of work behind one mutex. Writes go to a copy of the
// state that replaces the committed state only when fn succeeds.
type Store struct {
	mu        sync.Mutex
	committed *state
}

func New() *Store {
	return &Store{committed: newState()}
}

func (s *Store) RunInTx(ctx context.Context, fn func(stores storage.Stores) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &txState{base: s.committed}
	if err := fn(storage.Stores{
		Categories:      &categoryStore{tx: tx},
		TrainingCenters: &trainingCenterStore{tx: tx},
		Athletes:        &athleteStore{tx: tx},
	}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if tx.dirty != nil {
		s.committed = tx.dirty
	}
	return nil
}

// Health always succeeds; the in-memory store has no remote dependency.
func (s *Store) Health(context.Context) error {
	return nil
}

// txState reads from base until the first write clones it into dirty.
type txState struct {
	base  *state
	dirty *state
}

func (t *txState) read() *state {
	if t.dirty != nil {
		return t.dirty
	}
	return t.base
}

func (t *txState) write() *state {
	if t.dirty == nil {
		t.dirty = t.base.clone()
	}
	return t.dirty
}

type categoryStore struct {
	tx *txState
}

func (s *categoryStore) Create(_ context.Context, c *categorymodels.Category) error {
	st := s.tx.read()
	for _, existing := range st.categories {
		if existing.Name == c.Name {
			return fmt.Errorf("%w: categorias_nome_key", sentinel.ErrAlreadyUsed)
		}
	}
	st = s.tx.write()
	st.nextCategory++
	c.ID = st.nextCategory
	st.categories[c.ID] = *c
	return nil
}

func (s *categoryStore) FindByID(_ context.Context, id int64) (*categorymodels.Category, error) {
	c, ok := s.tx.read().categories[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &c, nil
}

func (s *categoryStore) FindByName(_ context.Context, name string) (*categorymodels.Category, error) {
	for _, c := range s.tx.read().categories {
		if c.Name == name {
			return &c, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *categoryStore) List(_ context.Context) ([]*categorymodels.Category, error) {
	st := s.tx.read()
	out := make([]*categorymodels.Category, 0, len(st.categories))
	for _, c := range st.categories {
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type trainingCenterStore struct {
	tx *txState
}

func (s *trainingCenterStore) Create(_ context.Context, tc *centermodels.TrainingCenter) error {
	st := s.tx.read()
	for _, existing := range st.trainingCenters {
		if existing.Name == tc.Name {
			return fmt.Errorf("%w: centros_treinamento_nome_key", sentinel.ErrAlreadyUsed)
		}
	}
	st = s.tx.write()
	st.nextCenter++
	tc.ID = st.nextCenter
	st.trainingCenters[tc.ID] = *tc
	return nil
}

func (s *trainingCenterStore) FindByID(_ context.Context, id int64) (*centermodels.TrainingCenter, error) {
	tc, ok := s.tx.read().trainingCenters[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &tc, nil
}

func (s *trainingCenterStore) FindByName(_ context.Context, name string) (*centermodels.TrainingCenter, error) {
	for _, tc := range s.tx.read().trainingCenters {
		if tc.Name == name {
			return &tc, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *trainingCenterStore) List(_ context.Context) ([]*centermodels.TrainingCenter, error) {
	st := s.tx.read()
	out := make([]*centermodels.TrainingCenter, 0, len(st.trainingCenters))
	for _, tc := range st.trainingCenters {
		out = append(out, &tc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type athleteStore struct {
	tx *txState
}

func (s *athleteStore) Create(_ context.Context, a *athletemodels.Athlete) error {
	st := s.tx.read()
	for _, existing := range st.athletes {
		if existing.CPF == a.CPF {
			return fmt.Errorf("%w: atletas_cpf_key", sentinel.ErrAlreadyUsed)
		}
	}
	category, ok := st.categories[a.CategoryID]
	if !ok {
		return fmt.Errorf("%w: atletas_categoria_id_fkey", sentinel.ErrReferenceMissing)
	}
	center, ok := st.trainingCenters[a.TrainingCenterID]
	if !ok {
		return fmt.Errorf("%w: atletas_centro_treinamento_id_fkey", sentinel.ErrReferenceMissing)
	}

	st = s.tx.write()
	st.nextAthlete++
	a.ID = st.nextAthlete
	a.CategoryName = category.Name
	a.TrainingCenterName = center.Name
	st.athletes[a.ID] = *a
	return nil
}

func (s *athleteStore) FindByID(_ context.Context, id int64) (*athletemodels.Athlete, error) {
	a, ok := s.tx.read().athletes[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &a, nil
}

func (s *athleteStore) List(_ context.Context, filter athletemodels.Filter, page pagination.Params) ([]*athletemodels.Athlete, int, error) {
	needle := strings.ToLower(filter.Name)
	var matched []*athletemodels.Athlete
	for _, a := range s.tx.read().athletes {
		if needle != "" && !strings.Contains(strings.ToLower(a.Name), needle) {
			continue
		}
		if filter.CPF != "" && a.CPF != filter.CPF {
			continue
		}
		matched = append(matched, &a)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := len(matched)
	start := min(page.Offset(), total)
	end := min(start+page.Size, total)
	return matched[start:end], total, nil
}

func (s *athleteStore) Update(_ context.Context, a *athletemodels.Athlete) error {
	if _, ok := s.tx.read().athletes[a.ID]; !ok {
		return sentinel.ErrNotFound
	}
	st := s.tx.write()
	current := st.athletes[a.ID]
	current.Name = a.Name
	current.Age = a.Age
	st.athletes[a.ID] = current
	return nil
}

func (s *athleteStore) Delete(_ context.Context, id int64) error {
	if _, ok := s.tx.read().athletes[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.tx.write().athletes, id)
	return nil
}
