package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	categorymodels "workout/internal/category/models"
	"workout/internal/platform/metrics"
	centermodels "workout/internal/trainingcenter/models"
	"workout/internal/storage"
	"workout/internal/storage/memory"
	"workout/pkg/platform/sentinel"
)

type fakeRedis struct {
	mu      sync.Mutex
	data    map[string]string
	ttls    map[string]time.Duration
	getErr  error
	setErr  error
	getHits int
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	f.getHits++
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return redis.NewStatusResult("", f.setErr)
	}
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func seed(t *testing.T, uow storage.UnitOfWork) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, uow.RunInTx(ctx, func(st storage.Stores) error {
		if err := st.Categories.Create(ctx, &categorymodels.Category{ExternalID: uuid.New(), Name: "Scale"}); err != nil {
			return err
		}
		return st.TrainingCenters.Create(ctx, &centermodels.TrainingCenter{
			ExternalID: uuid.New(), Name: "CT King", Address: "Rua X, Q02", Owner: "Marcos",
		})
	}))
}

func findCategory(t *testing.T, uow storage.UnitOfWork, name string) (*categorymodels.Category, error) {
	t.Helper()
	ctx := context.Background()
	var found *categorymodels.Category
	err := uow.RunInTx(ctx, func(st storage.Stores) error {
		var err error
		found, err = st.Categories.FindByName(ctx, name)
		return err
	})
	return found, err
}

func TestCategoryLookupReadsThrough(t *testing.T) {
	backing := memory.New()
	seed(t, backing)
	client := newFakeRedis()
	m := metrics.New(prometheus.NewRegistry())
	uow := New(backing, client, WithMetrics(m), WithTTL(time.Minute))

	first, err := findCategory(t, uow, "Scale")
	require.NoError(t, err)
	assert.Contains(t, client.data, "workout:categoria:nome:Scale")
	assert.Equal(t, time.Minute, client.ttls["workout:categoria:nome:Scale"])

	second, err := findCategory(t, uow, "Scale")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, client.getHits)

	assert.Equal(t, 1.0, promtest.ToFloat64(m.CacheLookups.WithLabelValues("categoria", "miss")))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.CacheLookups.WithLabelValues("categoria", "hit")))
}

func TestTrainingCenterLookupReadsThrough(t *testing.T) {
	backing := memory.New()
	seed(t, backing)
	client := newFakeRedis()
	uow := New(backing, client)
	ctx := context.Background()

	var first, second *centermodels.TrainingCenter
	require.NoError(t, uow.RunInTx(ctx, func(st storage.Stores) error {
		var err error
		first, err = st.TrainingCenters.FindByName(ctx, "CT King")
		if err != nil {
			return err
		}
		second, err = st.TrainingCenters.FindByName(ctx, "CT King")
		return err
	}))
	assert.Equal(t, first, second)
	assert.Equal(t, "Marcos", second.Owner)
	assert.Equal(t, DefaultTTL, client.ttls["workout:centro:nome:CT King"])
}

func TestMissingNameIsNotCached(t *testing.T) {
	backing := memory.New()
	client := newFakeRedis()
	uow := New(backing, client)

	_, err := findCategory(t, uow, "Unknown")
	require.ErrorIs(t, err, sentinel.ErrNotFound)
	assert.Empty(t, client.data)
}

func TestRedisFailureFallsBackToStore(t *testing.T) {
	backing := memory.New()
	seed(t, backing)
	client := newFakeRedis()
	client.getErr = errors.New("connection refused")
	client.setErr = errors.New("connection refused")
	m := metrics.New(prometheus.NewRegistry())
	uow := New(backing, client, WithMetrics(m))

	found, err := findCategory(t, uow, "Scale")
	require.NoError(t, err)
	assert.Equal(t, "Scale", found.Name)
	assert.Equal(t, 1.0, promtest.ToFloat64(m.CacheLookups.WithLabelValues("categoria", "error")))
}

func TestCorruptEntryFallsBackToStore(t *testing.T) {
	backing := memory.New()
	seed(t, backing)
	client := newFakeRedis()
	client.data["workout:categoria:nome:Scale"] = `{"id":0}`
	uow := New(backing, client)

	found, err := findCategory(t, uow, "Scale")
	require.NoError(t, err)
	assert.Equal(t, int64(1), found.ID)
	assert.Contains(t, client.data["workout:categoria:nome:Scale"], `"nome":"Scale"`)
}

func TestOtherStoresPassThrough(t *testing.T) {
	backing := memory.New()
	seed(t, backing)
	uow := New(backing, newFakeRedis())
	ctx := context.Background()

	require.NoError(t, uow.RunInTx(ctx, func(st storage.Stores) error {
		list, err := st.Categories.List(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 1)
		c, err := st.Categories.FindByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Scale", c.Name)
		return nil
	}))
}
