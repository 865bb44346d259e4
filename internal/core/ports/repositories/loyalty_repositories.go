package repositories

import (
	"context"

	"github.com/SscSPs/player_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LoyaltyReader defines read operations for the loyalty ledger.
type LoyaltyReader interface {
	// GetBalance sums the points of a player.
	GetBalance(ctx context.Context, casinoID, playerID string) (decimal.Decimal, error)

	// ListEntries retrieves the most recent entries of a player, newest first.
	ListEntries(ctx context.Context, casinoID, playerID string, limit int) ([]domain.LoyaltyLedgerEntry, error)
}

// LoyaltyWriter defines the append operation of the loyalty ledger.
type LoyaltyWriter interface {
	// AppendEntry appends entry unless an accrual for the same rating slip or an entry with the
	// same idempotency key exists, in which case the stored entry is returned with created=false.
	// The player's row is locked while the balance is checked; a debit that would take the
	// balance below zero fails with domain.ErrLoyaltyInsufficient.
	AppendEntry(ctx context.Context, entry domain.LoyaltyLedgerEntry) (*domain.LoyaltyLedgerEntry, bool, error)
}

// LoyaltyRepositoryFacade combines all loyalty repository interfaces
type LoyaltyRepositoryFacade interface {
	LoyaltyReader
	LoyaltyWriter
}
