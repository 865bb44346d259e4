package dto

import (
	"github.com/SscSPs/player_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordFinancialTransactionRequest records a buy-in or a payout. The idempotency key is taken
// from the Idempotency-Key header.
type RecordFinancialTransactionRequest struct {
	PlayerID     string            `json:"playerID" binding:"required,uuid"`
	VisitID      *string           `json:"visitID" binding:"omitempty,uuid"`
	RatingSlipID *string           `json:"ratingSlipID" binding:"omitempty,uuid"`
	Amount       decimal.Decimal   `json:"amount"`
	Direction    domain.Direction  `json:"direction" binding:"required,direction"`
	Tender       domain.TenderType `json:"tender" binding:"required,tender"`
	Note         string            `json:"note" binding:"max=500"`
}

// RecordFinancialTransactionResponse reports whether the row was created or replayed.
type RecordFinancialTransactionResponse struct {
	Transaction domain.FinancialTransaction `json:"transaction"`
	Created     bool                        `json:"created"`
}

// ListFinancialTransactionsParams filters the ledger. GamingDay is YYYY-MM-DD.
type ListFinancialTransactionsParams struct {
	PlayerID  string `form:"playerID" binding:"omitempty,uuid"`
	VisitID   string `form:"visitID" binding:"omitempty,uuid"`
	GamingDay string `form:"gamingDay" binding:"omitempty,datetime=2006-01-02"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=200"`
	NextToken string `form:"nextToken"`
}

// ListFinancialTransactionsResponse is one page of ledger rows.
type ListFinancialTransactionsResponse struct {
	Transactions []domain.FinancialTransaction `json:"transactions"`
	NextToken    string                        `json:"nextToken,omitempty"`
}

// VisitFinancialSummaryResponse totals the ledger rows of a visit.
type VisitFinancialSummaryResponse struct {
	VisitID string `json:"visitID"`
	domain.FinancialSummary
}
