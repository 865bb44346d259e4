package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/player_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/player_tracker/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const loyaltyColumns = `entry_id, casino_id, player_id, rating_slip_id, kind, points, theo, idempotency_key,
	reason, created_at, created_by`

type PgxLoyaltyRepository struct {
	BaseRepository
}

// newPgxLoyaltyRepository creates a new repository for the loyalty ledger.
func newPgxLoyaltyRepository(pool *pgxpool.Pool) portsrepo.LoyaltyRepositoryFacade {
	return &PgxLoyaltyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.LoyaltyRepositoryFacade = (*PgxLoyaltyRepository)(nil)

func scanLoyaltyEntry(row pgx.Row) (domain.LoyaltyLedgerEntry, error) {
	var e domain.LoyaltyLedgerEntry
	err := row.Scan(
		&e.EntryID,
		&e.CasinoID,
		&e.PlayerID,
		&e.RatingSlipID,
		&e.Kind,
		&e.Points,
		&e.Theo,
		&e.IdempotencyKey,
		&e.Reason,
		&e.CreatedAt,
		&e.CreatedBy,
	)
	return e, err
}

func sumPoints(ctx context.Context, tx pgx.Tx, playerID string) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := tx.QueryRow(ctx,
		`SELECT COALESCE(SUM(points), 0) FROM loyalty_ledger WHERE player_id = $1;`, playerID).Scan(&balance)
	return balance, err
}

// AppendEntry appends entry with the player's row locked so concurrent debits see each other.
// A replay of the same rating slip accrual or idempotency key returns the stored entry.
func (r *PgxLoyaltyRepository) AppendEntry(ctx context.Context, entry domain.LoyaltyLedgerEntry) (*domain.LoyaltyLedgerEntry, bool, error) {
	var (
		stored  domain.LoyaltyLedgerEntry
		created bool
	)
	err := r.withCasinoTx(ctx, entry.CasinoID, func(tx pgx.Tx) error {
		var locked string
		if err := tx.QueryRow(ctx,
			`SELECT player_id FROM players WHERE player_id = $1 FOR UPDATE;`, entry.PlayerID).Scan(&locked); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrPlayerNotFound
			}
			return err
		}

		existing, err := findReplay(ctx, tx, entry)
		if err == nil {
			stored = existing
			return nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}

		if entry.Points.IsNegative() {
			balance, err := sumPoints(ctx, tx, entry.PlayerID)
			if err != nil {
				return err
			}
			if balance.Add(entry.Points).IsNegative() {
				return domain.ErrLoyaltyInsufficient
			}
		}

		stored, err = scanLoyaltyEntry(tx.QueryRow(ctx, `
			INSERT INTO loyalty_ledger (`+loyaltyColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING `+loyaltyColumns+`;`,
			entry.EntryID,
			entry.CasinoID,
			entry.PlayerID,
			entry.RatingSlipID,
			entry.Kind,
			entry.Points,
			entry.Theo,
			entry.IdempotencyKey,
			entry.Reason,
			entry.CreatedAt,
			entry.CreatedBy,
		))
		if err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return nil, false, translateError(err, "failed to append loyalty entry")
	}
	return &stored, created, nil
}

// findReplay looks up the entry an earlier call stored for the same slip accrual or key.
func findReplay(ctx context.Context, tx pgx.Tx, entry domain.LoyaltyLedgerEntry) (domain.LoyaltyLedgerEntry, error) {
	switch {
	case entry.Kind == domain.LoyaltyAccrual && entry.RatingSlipID != nil:
		return scanLoyaltyEntry(tx.QueryRow(ctx,
			`SELECT `+loyaltyColumns+` FROM loyalty_ledger WHERE rating_slip_id = $1 AND kind = 'accrual';`,
			*entry.RatingSlipID))
	case entry.IdempotencyKey != nil:
		return scanLoyaltyEntry(tx.QueryRow(ctx,
			`SELECT `+loyaltyColumns+` FROM loyalty_ledger WHERE casino_id = $1 AND idempotency_key = $2;`,
			entry.CasinoID, *entry.IdempotencyKey))
	}
	return domain.LoyaltyLedgerEntry{}, pgx.ErrNoRows
}

// GetBalance sums the points of a player.
func (r *PgxLoyaltyRepository) GetBalance(ctx context.Context, casinoID, playerID string) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.withCasinoTx(ctx, casinoID, func(tx pgx.Tx) (err error) {
		balance, err = sumPoints(ctx, tx, playerID)
		return err
	})
	if err != nil {
		return decimal.Zero, translateError(err, "failed to sum loyalty points")
	}
	return balance, nil
}

// ListEntries retrieves the most recent entries of a player, newest first.
func (r *PgxLoyaltyRepository) ListEntries(ctx context.Context, casinoID, playerID string, limit int) ([]domain.LoyaltyLedgerEntry, error) {
	query := `
		SELECT ` + loyaltyColumns + `
		FROM loyalty_ledger
		WHERE casino_id = $1 AND player_id = $2
		ORDER BY created_at DESC, entry_id DESC
		LIMIT $3;
	`
	var entries []domain.LoyaltyLedgerEntry
	err := r.withCasinoTx(ctx, casinoID, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, casinoID, playerID, limit)
		if err != nil {
			return err
		}
		entries, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.LoyaltyLedgerEntry, error) {
			return scanLoyaltyEntry(row)
		})
		return err
	})
	if err != nil {
		return nil, translateError(err, "failed to list loyalty entries")
	}
	if entries == nil {
		entries = []domain.LoyaltyLedgerEntry{}
	}
	return entries, nil
}
