// Package cache decorates a storage.UnitOfWork with a read-through Redis cache
// for category and training center lookups by name.
//
// Categories and training centers are never updated or deleted through the
// API, so entries only expire by TTL. The store stays authoritative: any
// cache failure is logged and the lookup falls through.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	categorymodels "workout/internal/category/models"
	"workout/internal/platform/metrics"
	centermodels "workout/internal/trainingcenter/models"
	"workout/internal/storage"
)

const (
	DefaultTTL = 10 * time.Minute

	categoryPrefix       = "workout:categoria:nome:"
	trainingCenterPrefix = "workout:centro:nome:"
)

// Client is the subset of go-redis the cache needs.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

type Option func(*UnitOfWork)

func WithLogger(logger *slog.Logger) Option {
	return func(u *UnitOfWork) {
		u.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(u *UnitOfWork) {
		u.metrics = m
	}
}

func WithTTL(ttl time.Duration) Option {
	return func(u *UnitOfWork) {
		if ttl > 0 {
			u.ttl = ttl
		}
	}
}

type UnitOfWork struct {
	next    storage.UnitOfWork
	client  Client
	ttl     time.Duration
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func New(next storage.UnitOfWork, client Client, opts ...Option) *UnitOfWork {
	u := &UnitOfWork{
		next:   next,
		client: client,
		ttl:    DefaultTTL,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *UnitOfWork) RunInTx(ctx context.Context, fn func(stores storage.Stores) error) error {
	return u.next.RunInTx(ctx, func(stores storage.Stores) error {
		stores.Categories = &categoryStore{CategoryStore: stores.Categories, c: u}
		stores.TrainingCenters = &trainingCenterStore{TrainingCenterStore: stores.TrainingCenters, c: u}
		return fn(stores)
	})
}

// lookup reads key into dst. It reports whether dst was filled.
func (u *UnitOfWork) lookup(ctx context.Context, entity, key string, dst any) bool {
	raw, err := u.client.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		u.observe(entity, "miss")
		return false
	case err != nil:
		u.observe(entity, "error")
		u.logger.WarnContext(ctx, "lookup cache read failed", "key", key, "error", err)
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		u.observe(entity, "error")
		u.logger.WarnContext(ctx, "lookup cache entry corrupt", "key", key, "error", err)
		return false
	}
	u.observe(entity, "hit")
	return true
}

func (u *UnitOfWork) store(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		u.logger.WarnContext(ctx, "lookup cache encode failed", "key", key, "error", err)
		return
	}
	if err := u.client.Set(ctx, key, raw, u.ttl).Err(); err != nil {
		u.logger.WarnContext(ctx, "lookup cache write failed", "key", key, "error", err)
	}
}

func (u *UnitOfWork) observe(entity, result string) {
	if u.metrics != nil {
		u.metrics.ObserveCacheLookup(entity, result)
	}
}

type categoryEntry struct {
	ID         int64  `json:"id"`
	ExternalID string `json:"external_id"`
	Name       string `json:"nome"`
}

type categoryStore struct {
	storage.CategoryStore
	c *UnitOfWork
}

func (s *categoryStore) FindByName(ctx context.Context, name string) (*categorymodels.Category, error) {
	key := categoryPrefix + name
	var entry categoryEntry
	if s.c.lookup(ctx, "categoria", key, &entry) {
		if c, ok := entry.toModel(); ok {
			return c, nil
		}
	}

	c, err := s.CategoryStore.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	s.c.store(ctx, key, categoryEntry{ID: c.ID, ExternalID: c.ExternalID.String(), Name: c.Name})
	return c, nil
}

type trainingCenterEntry struct {
	ID         int64  `json:"id"`
	ExternalID string `json:"external_id"`
	Name       string `json:"nome"`
	Address    string `json:"endereco"`
	Owner      string `json:"proprietario"`
}

type trainingCenterStore struct {
	storage.TrainingCenterStore
	c *UnitOfWork
}

func (s *trainingCenterStore) FindByName(ctx context.Context, name string) (*centermodels.TrainingCenter, error) {
	key := trainingCenterPrefix + name
	var entry trainingCenterEntry
	if s.c.lookup(ctx, "centro_treinamento", key, &entry) {
		if tc, ok := entry.toModel(); ok {
			return tc, nil
		}
	}

	tc, err := s.TrainingCenterStore.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	s.c.store(ctx, key, trainingCenterEntry{
		ID:         tc.ID,
		ExternalID: tc.ExternalID.String(),
		Name:       tc.Name,
		Address:    tc.Address,
		Owner:      tc.Owner,
	})
	return tc, nil
}
