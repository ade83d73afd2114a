package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"workout/internal/storage"
	dErrors "workout/pkg/domain-errors"
)

const defaultTxTimeout = 5 * time.Second

// Store is the Postgres unit of work. Every RunInTx call gets its own transaction.
type Store struct {
	db      *sqlx.DB
	timeout time.Duration
}

// New wraps db. A zero timeout falls back to 5s.
func New(db *sqlx.DB, timeout time.Duration) *Store {
	return &Store{db: db, timeout: timeout}
}

func (s *Store) RunInTx(ctx context.Context, fn func(stores storage.Stores) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := s.timeout
	if timeout == 0 {
		timeout = defaultTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", translate(err))
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(bind(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", translate(err))
	}
	return nil
}

// Health pings the database for the readiness probe.
func (s *Store) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func bind(q sqlx.ExtContext) storage.Stores {
	return storage.Stores{
		Categories:      &categoryStore{q: q},
		TrainingCenters: &trainingCenterStore{q: q},
		Athletes:        &athleteStore{q: q},
	}
}
