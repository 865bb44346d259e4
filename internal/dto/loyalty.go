package dto

import (
	"github.com/SscSPs/player_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AdjustPointsRequest credits (positive) or debits (negative) a player's points.
type AdjustPointsRequest struct {
	Points decimal.Decimal `json:"points"`
	Reason string          `json:"reason" binding:"required,max=500"`
}

// AdjustPointsResponse reports whether the entry was created or replayed.
type AdjustPointsResponse struct {
	Entry   domain.LoyaltyLedgerEntry `json:"entry"`
	Created bool                      `json:"created"`
}

// LoyaltyResponse is a player's balance with their most recent ledger entries.
type LoyaltyResponse struct {
	domain.LoyaltyBalance
	Entries []domain.LoyaltyLedgerEntry `json:"entries"`
}

// AccrueLoyaltyResponse is the outcome of an accrual retry. Accrued is false when the slip
// earns nothing: ghost play, no average bet, or zero points.
type AccrueLoyaltyResponse struct {
	Accrued bool                       `json:"accrued"`
	Entry   *domain.LoyaltyLedgerEntry `json:"entry,omitempty"`
}
