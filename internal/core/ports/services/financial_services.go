package services

import (
	"context"

	"github.com/SscSPs/player_tracker/internal/core/domain"
	"github.com/SscSPs/player_tracker/internal/dto"
)

// FinancialSvcFacade records and reads player cash movements. There is no update or delete.
type FinancialSvcFacade interface {
	// RecordTransaction appends a ledger row. A replay of idempotencyKey returns the original
	// row with created=false.
	RecordTransaction(ctx context.Context, actor domain.Actor, idempotencyKey string, req dto.RecordFinancialTransactionRequest) (*dto.RecordFinancialTransactionResponse, error)

	GetTransaction(ctx context.Context, actor domain.Actor, transactionID string) (*domain.FinancialTransaction, error)
	ListTransactions(ctx context.Context, actor domain.Actor, params dto.ListFinancialTransactionsParams) (*dto.ListFinancialTransactionsResponse, error)
	VisitSummary(ctx context.Context, actor domain.Actor, visitID string) (*dto.VisitFinancialSummaryResponse, error)
}
