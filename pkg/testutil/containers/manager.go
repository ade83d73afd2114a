//go:build integration

// Package containers starts the backing services for integration tests.
// Containers are shared by every suite in the test binary and reaped by Ryuk.
package containers

import (
	"context"
	"sync"
	"testing"
)

// Manager lazily starts one container per dependency.
type Manager struct {
	pgOnce sync.Once
	pg     *PostgresContainer
	pgErr  error

	redisOnce sync.Once
	redis     *RedisContainer
	redisErr  error

	rpOnce sync.Once
	rp     *RedpandaContainer
	rpErr  error
}

var (
	managerOnce sync.Once
	manager     *Manager
)

// GetManager returns the process-wide manager.
func GetManager() *Manager {
	managerOnce.Do(func() { manager = &Manager{} })
	return manager
}

func (m *Manager) GetPostgres(t *testing.T) *PostgresContainer {
	t.Helper()
	m.pgOnce.Do(func() { m.pg, m.pgErr = startPostgres(context.Background()) })
	if m.pgErr != nil {
		t.Fatalf("failed to start postgres container: %v", m.pgErr)
	}
	return m.pg
}

func (m *Manager) GetRedis(t *testing.T) *RedisContainer {
	t.Helper()
	m.redisOnce.Do(func() { m.redis, m.redisErr = startRedis(context.Background()) })
	if m.redisErr != nil {
		t.Fatalf("failed to start redis container: %v", m.redisErr)
	}
	return m.redis
}

func (m *Manager) GetRedpanda(t *testing.T) *RedpandaContainer {
	t.Helper()
	m.rpOnce.Do(func() { m.rp, m.rpErr = startRedpanda(context.Background()) })
	if m.rpErr != nil {
		t.Fatalf("failed to start redpanda container: %v", m.rpErr)
	}
	return m.rp
}
