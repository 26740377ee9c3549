package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// unique_violation según la tabla de códigos de error de PostgreSQL.
const pgUniqueViolation = "23505"

// isUniqueViolation indica si el error proviene de un constraint único
// violado, para mapearlo a ErrDuplicado en los adaptadores.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
