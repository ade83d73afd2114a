//go:build integration

package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	categorymodels "workout/internal/category/models"
	"workout/internal/platform/metrics"
	platformredis "workout/internal/platform/redis"
	"workout/internal/storage"
	"workout/internal/storage/cache"
	"workout/internal/storage/memory"
	"workout/pkg/testutil/containers"
)

func TestCacheAgainstRedis(t *testing.T) {
	ctx := context.Background()
	rc := containers.GetManager().GetRedis(t)
	require.NoError(t, rc.FlushAll(ctx))

	client := platformredis.Wrap(rc.Client)
	require.NoError(t, client.Health(ctx))

	store := memory.New()
	require.NoError(t, store.RunInTx(ctx, func(st storage.Stores) error {
		return st.Categories.Create(ctx, &categorymodels.Category{ExternalID: uuid.New(), Name: "Scale"})
	}))

	m := metrics.New(prometheus.NewRegistry())
	uow := cache.New(store, client, cache.WithMetrics(m), cache.WithTTL(time.Minute))

	lookup := func() *categorymodels.Category {
		var found *categorymodels.Category
		require.NoError(t, uow.RunInTx(ctx, func(st storage.Stores) error {
			var err error
			found, err = st.Categories.FindByName(ctx, "Scale")
			return err
		}))
		return found
	}

	first := lookup()
	second := lookup()
	assert.Equal(t, first, second)

	assert.Equal(t, 1.0, promtest.ToFloat64(m.CacheLookups.WithLabelValues("categoria", "miss")))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.CacheLookups.WithLabelValues("categoria", "hit")))

	ttl, err := rc.Client.TTL(ctx, "workout:categoria:nome:Scale").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)
}
