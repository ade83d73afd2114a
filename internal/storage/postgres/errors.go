package postgres

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"workout/pkg/platform/sentinel"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// translate maps driver errors onto sentinel errors. The constraint name is
// kept in the message so logs show which unique key or reference failed.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return sentinel.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return fmt.Errorf("%w: %s", sentinel.ErrAlreadyUsed, pqErr.Constraint)
		case pqForeignKeyViolation:
			return fmt.Errorf("%w: %s", sentinel.ErrReferenceMissing, pqErr.Constraint)
		}
		if pqErr.Code.Class() == "08" {
			return fmt.Errorf("%w: %v", sentinel.ErrUnavailable, err)
		}
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return fmt.Errorf("%w: %v", sentinel.ErrUnavailable, err)
	}
	return err
}
