package database

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/richxcame/ridematch/pkg/resilience"
)

// QueryRows runs a multi-row read under the store retry policy. Each attempt
// issues the query again and hands the fresh rows to scan.
func QueryRows[T any](ctx context.Context, db Querier, name, sql string, args []any, scan func(pgx.Rows) (T, error)) (T, error) {
	return resilience.Retry(ctx, resilience.StorePolicy(name, IsRetryable), func(ctx context.Context) (T, error) {
		rows, err := db.Query(ctx, sql, args...)
		if err != nil {
			var zero T
			return zero, err
		}
		defer rows.Close()
		return scan(rows)
	})
}

// QueryOne runs a single-row read under the store retry policy.
// pgx.ErrNoRows is returned on the first attempt.
func QueryOne[T any](ctx context.Context, db Querier, name, sql string, args []any, scan func(pgx.Row) (T, error)) (T, error) {
	return resilience.Retry(ctx, resilience.StorePolicy(name, IsRetryable), func(ctx context.Context) (T, error) {
		return scan(db.QueryRow(ctx, sql, args...))
	})
}

// IsRetryable reports whether a postgres error is worth another attempt.
func IsRetryable(err error) bool {
	if err == nil || errors.Is(err, pgx.ErrNoRows) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", // serialization_failure
			"40P01", // deadlock_detected
			"55P03", // lock_not_available
			"53000", // insufficient_resources
			"53300", // too_many_connections
			"53400", // configuration_limit_exceeded
			"57P01", // admin_shutdown
			"57P02", // crash_shutdown
			"57P03", // cannot_connect_now
			"58000", // system_error
			"XX000": // internal_error
			return true
		}
		return strings.HasPrefix(pgErr.Code, "08")
	}

	msg := strings.ToLower(err.Error())
	for _, transient := range []string{
		"connection refused",
		"connection reset",
		"broken pipe",
		"no such host",
		"network is unreachable",
		"temporary failure",
		"timeout",
		"too many connections",
		"server closed",
		"unexpected eof",
	} {
		if strings.Contains(msg, transient) {
			return true
		}
	}
	return false
}
