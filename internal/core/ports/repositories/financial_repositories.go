package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/player_tracker/internal/core/domain"
)

// FinancialFilter filters and pages the financial ledger. Rows are ordered newest first.
type FinancialFilter struct {
	CasinoID string
	PlayerID string
	VisitID  string
	From     *time.Time // Inclusive
	To       *time.Time // Exclusive
	Limit    int // Zero returns every matching row
	Before   *LedgerCursor
}

// LedgerCursor is the sort key of the last row on the previous page.
type LedgerCursor struct {
	CreatedAt time.Time
	ID        string
}

// FinancialReader defines read operations for the financial ledger.
type FinancialReader interface {
	// FindTransactionByID retrieves a ledger row.
	FindTransactionByID(ctx context.Context, casinoID, transactionID string) (*domain.FinancialTransaction, error)

	// FindTransactionByIdempotencyKey retrieves the row recorded under key.
	FindTransactionByIdempotencyKey(ctx context.Context, casinoID, key string) (*domain.FinancialTransaction, error)

	// ListTransactions retrieves rows matching filter.
	ListTransactions(ctx context.Context, filter FinancialFilter) ([]domain.FinancialTransaction, error)
}

// FinancialWriter defines the only write the ledger allows.
type FinancialWriter interface {
	// InsertTransaction appends txn unless a row with the same casino and idempotency key
	// exists. It returns the stored row and whether it was created by this call.
	InsertTransaction(ctx context.Context, txn domain.FinancialTransaction) (*domain.FinancialTransaction, bool, error)
}

// FinancialRepositoryFacade combines all financial ledger repository interfaces
type FinancialRepositoryFacade interface {
	FinancialReader
	FinancialWriter
}
