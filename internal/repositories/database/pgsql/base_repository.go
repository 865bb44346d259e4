package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/player_tracker/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return translateError(err, "failed to commit transaction")
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// withScopedTx runs fn in a transaction where the setting key holds value for the duration of
// the transaction only. Row level security policies read these settings.
func (r *BaseRepository) withScopedTx(ctx context.Context, key, value string, fn func(tx pgx.Tx) error) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // No-op once committed

	if _, err := tx.Exec(ctx, `SELECT set_config($1, $2, true)`, key, value); err != nil {
		return apperrors.NewAppError(500, "failed to scope transaction", err)
	}
	if err := fn(tx); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// withCasinoTx runs fn in a transaction scoped to casinoID.
func (r *BaseRepository) withCasinoTx(ctx context.Context, casinoID string, fn func(tx pgx.Tx) error) error {
	if casinoID == "" {
		return apperrors.Wrapf(apperrors.ErrForbidden, "no casino in scope")
	}
	return r.withScopedTx(ctx, "app.casino_id", casinoID, fn)
}
