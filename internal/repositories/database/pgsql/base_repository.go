package pgsql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/SscSPs/finance_reconciler/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool      *pgxpool.Pool
	Isolation pgx.TxIsoLevel
}

// Begin starts a new database transaction at the configured isolation level
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: r.Isolation})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) && !errors.Is(err, sql.ErrTxDone) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// q runs statements on tx when there is one and on the pool otherwise.
func (r *BaseRepository) q(tx pgx.Tx) querier {
	if tx == nil {
		return r.Pool
	}
	return tx
}

// notFoundOr maps pgx.ErrNoRows to a not-found AppError and wraps everything else.
func notFoundOr(err error, what string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFoundError(what + " not found")
	}
	return apperrors.NewAppError(500, "failed to query "+what, err)
}

// expectOne reports a not-found error when an UPDATE touched no row.
func expectOne(tag pgconn.CommandTag, err error, what string) error {
	if err != nil {
		return apperrors.NewAppError(500, "failed to update "+what, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(what + " not found")
	}
	return nil
}

// uniqueViolation reports whether err is a Postgres unique constraint violation.
func uniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// collectOne runs query and scans exactly one row into T by column name.
func collectOne[T any](ctx context.Context, db querier, what, query string, args ...any) (T, error) {
	var zero T
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return zero, apperrors.NewAppError(500, "failed to query "+what, err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if err != nil {
		return zero, notFoundOr(err, what)
	}
	return m, nil
}
