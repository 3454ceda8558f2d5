package service

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// isUniqueViolation reports whether err is a storage-layer unique-constraint
// violation. Callers normalize it to a conflict instead of leaking the raw
// fault. Both postgres drivers report SQLSTATE 23505 (lib/pq in production,
// pgx when gorm opens its own pool); the sqlite test driver only gives us
// the message.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
