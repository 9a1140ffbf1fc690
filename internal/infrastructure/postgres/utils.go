package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// isInvalidText detecta 22P02 (ej. un id que no es uuid); se trata como no encontrado.
func isInvalidText(err error) bool {
	return pgCode(err) == "22P02"
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
