package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation código SQLSTATE de violación de constraint único.
const uniqueViolation = "23505"

// isUniqueViolation detecta la violación de unicidad de Postgres, también
// cuando el error llega envuelto sin conservar el *PgError.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	return strings.Contains(err.Error(), uniqueViolation)
}
