package handlers

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// isUniqueViolation reports whether err is a Postgres unique-index
// rejection (the store-level backstop behind the application pre-checks).
// gorm's postgres driver speaks pgx, so that error shape comes first; the
// lib/pq case covers raw database/sql connections.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	return false
}
