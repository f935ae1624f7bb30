package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	// pgx database/sql driver
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/sethvargo/go-retry"

	"github.com/sbilibin2017/gw-movie-streaming/internal/apperrors"
	"github.com/sbilibin2017/gw-movie-streaming/internal/logger"
)

// Connect opens a PostgreSQL pool, retrying with exponential backoff until
// the database answers or attempts run out.
func Connect(ctx context.Context, dsn string, maxOpenConns, maxIdleConns int, attempts uint64) (*sqlx.DB, error) {
	if attempts == 0 {
		attempts = 1
	}
	backoff := retry.WithMaxRetries(attempts-1, retry.NewExponential(500*time.Millisecond))

	var db *sqlx.DB
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		conn, err := sqlx.ConnectContext(ctx, "pgx", dsn)
		if err != nil {
			logger.Log.Warnw("postgres is not ready", "error", err)
			return retry.RetryableError(err)
		}
		db = conn
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(30 * time.Minute)
	return db, nil
}

// txGetter returns the transaction bound to a request context, if any.
type txGetter func(ctx context.Context) *sqlx.Tx

// executor picks the request transaction when present, otherwise the pool.
func executor(ctx context.Context, db *sqlx.DB, getTx txGetter) sqlx.ExtContext {
	if getTx != nil {
		if tx := getTx(ctx); tx != nil {
			return tx
		}
	}
	return db
}

// logQuery logs a statement on a single line together with its outcome.
func logQuery(query string, args []any, result any, err error) {
	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", result,
		"error", err,
	)
}

// mapError converts PostgreSQL constraint violations into application errors.
func mapError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return fmt.Errorf("%s: %w", pgErr.ConstraintName, apperrors.ErrConflict)
	case pgerrcode.ForeignKeyViolation:
		return fmt.Errorf("%s: %w", pgErr.ConstraintName, apperrors.ErrNotFound)
	}
	return err
}

// redacted stands in for secrets in query logs.
const redacted = "[REDACTED]"
