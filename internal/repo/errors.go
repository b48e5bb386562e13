package repo

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicate is returned when an insert hits a unique constraint.
var ErrDuplicate = errors.New("duplicate")

const pgUniqueViolation = "23505"

// mapPGError turns driver errors callers branch on into repo sentinels.
func mapPGError(err error) error {
	var pge *pgconn.PgError
	if errors.As(err, &pge) && pge.Code == pgUniqueViolation {
		return fmt.Errorf("%w: %s", ErrDuplicate, pge.ConstraintName)
	}
	return err
}
