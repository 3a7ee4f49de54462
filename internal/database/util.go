package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error codes the application reacts to
const (
	PgUniqueViolation     = "23505"
	PgForeignKeyViolation = "23503"
)

// IsUniqueViolation reports whether err is a postgres unique-constraint violation
func IsUniqueViolation(err error) bool {
	return hasPgCode(err, PgUniqueViolation)
}

// IsForeignKeyViolation reports whether err references a row that does not exist
func IsForeignKeyViolation(err error) bool {
	return hasPgCode(err, PgForeignKeyViolation)
}

func hasPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}
