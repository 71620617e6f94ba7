package repositories

import (
	"errors"

	"dairy-backend/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// mapPgError converts a Postgres unique-violation into the duplicate
// sentinel so handlers can answer 409 instead of a bare 500.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return models.ErrDuplicate
	}
	return err
}
