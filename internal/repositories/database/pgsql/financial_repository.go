package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/player_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/player_tracker/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const financialColumns = `transaction_id, casino_id, player_id, visit_id, rating_slip_id, amount, direction, tender,
	idempotency_key, note, created_at, created_by, created_by_role`

type PgxFinancialRepository struct {
	BaseRepository
}

// newPgxFinancialRepository creates a new repository for the financial ledger.
func newPgxFinancialRepository(pool *pgxpool.Pool) portsrepo.FinancialRepositoryFacade {
	return &PgxFinancialRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.FinancialRepositoryFacade = (*PgxFinancialRepository)(nil)

func scanTransaction(row pgx.Row) (domain.FinancialTransaction, error) {
	var t domain.FinancialTransaction
	err := row.Scan(
		&t.TransactionID,
		&t.CasinoID,
		&t.PlayerID,
		&t.VisitID,
		&t.RatingSlipID,
		&t.Amount,
		&t.Direction,
		&t.Tender,
		&t.IdempotencyKey,
		&t.Note,
		&t.CreatedAt,
		&t.CreatedBy,
		&t.CreatedByRole,
	)
	return t, err
}

// InsertTransaction appends txn unless the casino already holds a row under its idempotency key.
func (r *PgxFinancialRepository) InsertTransaction(ctx context.Context, txn domain.FinancialTransaction) (*domain.FinancialTransaction, bool, error) {
	insert := `
		INSERT INTO financial_transactions (` + financialColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (casino_id, idempotency_key) DO NOTHING
		RETURNING ` + financialColumns + `;
	`
	var (
		stored  domain.FinancialTransaction
		created bool
	)
	err := r.withCasinoTx(ctx, txn.CasinoID, func(tx pgx.Tx) error {
		var err error
		stored, err = scanTransaction(tx.QueryRow(ctx, insert,
			txn.TransactionID,
			txn.CasinoID,
			txn.PlayerID,
			txn.VisitID,
			txn.RatingSlipID,
			txn.Amount,
			txn.Direction,
			txn.Tender,
			txn.IdempotencyKey,
			txn.Note,
			txn.CreatedAt,
			txn.CreatedBy,
			txn.CreatedByRole,
		))
		if err == nil {
			created = true
			return nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}
		// Conflict: the key was already used. Return the stored row.
		stored, err = scanTransaction(tx.QueryRow(ctx,
			`SELECT `+financialColumns+` FROM financial_transactions WHERE casino_id = $1 AND idempotency_key = $2;`,
			txn.CasinoID, txn.IdempotencyKey))
		return err
	})
	if err != nil {
		return nil, false, translateError(err, "failed to insert financial transaction")
	}
	return &stored, created, nil
}

// FindTransactionByID retrieves a ledger row.
func (r *PgxFinancialRepository) FindTransactionByID(ctx context.Context, casinoID, transactionID string) (*domain.FinancialTransaction, error) {
	return r.findOne(ctx, casinoID, "failed to find financial transaction",
		`SELECT `+financialColumns+` FROM financial_transactions WHERE transaction_id = $1;`, transactionID)
}

// FindTransactionByIdempotencyKey retrieves the row recorded under key.
func (r *PgxFinancialRepository) FindTransactionByIdempotencyKey(ctx context.Context, casinoID, key string) (*domain.FinancialTransaction, error) {
	return r.findOne(ctx, casinoID, "failed to find financial transaction by key",
		`SELECT `+financialColumns+` FROM financial_transactions WHERE casino_id = $1 AND idempotency_key = $2;`, casinoID, key)
}

func (r *PgxFinancialRepository) findOne(ctx context.Context, casinoID, msg, query string, args ...any) (*domain.FinancialTransaction, error) {
	var txn domain.FinancialTransaction
	err := r.withCasinoTx(ctx, casinoID, func(tx pgx.Tx) (err error) {
		txn, err = scanTransaction(tx.QueryRow(ctx, query, args...))
		return err
	})
	if err != nil {
		return nil, translateError(err, msg)
	}
	return &txn, nil
}

// ListTransactions retrieves rows matching filter, newest first.
func (r *PgxFinancialRepository) ListTransactions(ctx context.Context, filter portsrepo.FinancialFilter) ([]domain.FinancialTransaction, error) {
	var (
		conditions = []string{"casino_id = $1"}
		args       = []any{filter.CasinoID}
	)
	add := func(format string, values ...any) {
		args = append(args, values...)
		positions := make([]any, len(values))
		for i := range values {
			positions[i] = len(args) - len(values) + i + 1
		}
		conditions = append(conditions, fmt.Sprintf(format, positions...))
	}
	if filter.PlayerID != "" {
		add("player_id = $%d", filter.PlayerID)
	}
	if filter.VisitID != "" {
		add("visit_id = $%d", filter.VisitID)
	}
	if filter.From != nil {
		add("created_at >= $%d", *filter.From)
	}
	if filter.To != nil {
		add("created_at < $%d", *filter.To)
	}
	if c := filter.Before; c != nil {
		add("(created_at, transaction_id) < ($%d, $%d::uuid)", c.CreatedAt, c.ID)
	}

	query := `SELECT ` + financialColumns + ` FROM financial_transactions WHERE ` + strings.Join(conditions, " AND ") +
		` ORDER BY created_at DESC, transaction_id DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	var txns []domain.FinancialTransaction
	err := r.withCasinoTx(ctx, filter.CasinoID, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		txns, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.FinancialTransaction, error) {
			return scanTransaction(row)
		})
		return err
	})
	if err != nil {
		return nil, translateError(err, "failed to list financial transactions")
	}
	if txns == nil {
		txns = []domain.FinancialTransaction{}
	}
	return txns, nil
}
