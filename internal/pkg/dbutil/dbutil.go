package dbutil

import (
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Rebind converts ?-style placeholders to the $N form Postgres expects.
func Rebind(query string) string {
	return sqlx.Rebind(sqlx.DOLLAR, query)
}

// In expands slice arguments for IN clauses and rebinds for Postgres.
func In(query string, args ...interface{}) (string, []interface{}, error) {
	expanded, list, err := sqlx.In(query, args...)
	if err != nil {
		return "", nil, err
	}
	return sqlx.Rebind(sqlx.DOLLAR, expanded), list, nil
}

func IsConflict(err error) bool {
	var pgErr *pq.Error
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func IsForeignKeyViolation(err error) bool {
	var pgErr *pq.Error
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}

// IsTransient reports whether err looks like a connectivity failure that a
// fresh attempt may survive. Constraint violations and other SQL-level
// failures are never transient.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var pgErr *pq.Error
	if errors.As(err, &pgErr) {
		// Class 08: connection exceptions; 57P01-57P03: server shutdown/recovery.
		code := string(pgErr.Code)
		return strings.HasPrefix(code, "08") || strings.HasPrefix(code, "57P")
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "unexpected eof")
}
