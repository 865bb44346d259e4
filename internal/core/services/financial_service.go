package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/SscSPs/player_tracker/internal/apperrors"
	"github.com/SscSPs/player_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/player_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/player_tracker/internal/core/ports/services"
	"github.com/SscSPs/player_tracker/internal/dto"
	"github.com/SscSPs/player_tracker/internal/utils/pagination"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

type financialService struct {
	BaseService
	financialRepo portsrepo.FinancialRepositoryFacade
	playerRepo    portsrepo.PlayerReader
	visitRepo     portsrepo.VisitReader
	slipRepo      portsrepo.RatingSlipReader
	gamingDay     portssvc.GamingDaySvc
}

// NewFinancialService creates the player financial ledger service.
func NewFinancialService(
	financialRepo portsrepo.FinancialRepositoryFacade,
	playerRepo portsrepo.PlayerReader,
	visitRepo portsrepo.VisitReader,
	slipRepo portsrepo.RatingSlipReader,
	gamingDay portssvc.GamingDaySvc,
	opts ...Option,
) portssvc.FinancialSvcFacade {
	return &financialService{
		BaseService:   newBaseService(opts...),
		financialRepo: financialRepo,
		playerRepo:    playerRepo,
		visitRepo:     visitRepo,
		slipRepo:      slipRepo,
		gamingDay:     gamingDay,
	}
}

var _ portssvc.FinancialSvcFacade = (*financialService)(nil)

// RecordTransaction appends a ledger row once per idempotency key.
func (s *financialService) RecordTransaction(ctx context.Context, actor domain.Actor, idempotencyKey string, req dto.RecordFinancialTransactionRequest) (resp *dto.RecordFinancialTransactionResponse, err error) {
	idempotencyKey = strings.TrimSpace(idempotencyKey)
	if idempotencyKey == "" {
		return nil, domain.ErrIdempotencyKeyNeeded
	}
	txn := domain.FinancialTransaction{
		TransactionID:  uuid.NewString(),
		CasinoID:       actor.CasinoID,
		PlayerID:       req.PlayerID,
		VisitID:        req.VisitID,
		RatingSlipID:   req.RatingSlipID,
		Amount:         req.Amount,
		Direction:      req.Direction,
		Tender:         req.Tender,
		IdempotencyKey: idempotencyKey,
		Note:           strings.TrimSpace(req.Note),
		CreatedAt:      s.Now(),
		CreatedBy:      actor.StaffID,
		CreatedByRole:  actor.Role,
	}
	if err := txn.Validate(); err != nil {
		return nil, err
	}
	if !domain.CanRecord(actor.Role, txn.Direction, txn.Tender) {
		s.LogWarn(ctx, "Financial transaction not permitted for role",
			slog.String("role", string(actor.Role)),
			slog.String("direction", string(txn.Direction)),
			slog.String("tender", string(txn.Tender)))
		return nil, domain.ErrTxnRoleNotPermitted
	}

	ctx, span := s.StartSpan(ctx, "FinancialService.RecordTransaction",
		attribute.String("player_id", txn.PlayerID),
		attribute.String("direction", string(txn.Direction)))
	defer func() { s.EndSpan(span, err) }()

	if err := s.checkReferences(ctx, actor, txn); err != nil {
		return nil, err
	}

	stored, created, err := s.financialRepo.InsertTransaction(ctx, txn)
	if err != nil {
		s.LogError(ctx, err, "Failed to record financial transaction", slog.String("player_id", txn.PlayerID))
		return nil, err
	}
	if !created {
		if !stored.SamePayload(txn) {
			return nil, domain.ErrIdempotencyKeyReused
		}
		s.LogInfo(ctx, "Financial transaction replayed",
			slog.String("transaction_id", stored.TransactionID))
		return &dto.RecordFinancialTransactionResponse{Transaction: *stored, Created: false}, nil
	}

	s.LogInfo(ctx, "Financial transaction recorded",
		slog.String("transaction_id", stored.TransactionID),
		slog.String("direction", string(stored.Direction)),
		slog.String("amount", stored.Amount.String()))
	s.Publish(ctx, actor, domain.EventFinancialRecorded, stored.TransactionID, "", stored)
	return &dto.RecordFinancialTransactionResponse{Transaction: *stored, Created: true}, nil
}

// checkReferences verifies that the player exists and that any visit or slip belongs to them.
func (s *financialService) checkReferences(ctx context.Context, actor domain.Actor, txn domain.FinancialTransaction) error {
	if _, err := s.playerRepo.FindPlayerByID(ctx, actor.CasinoID, txn.PlayerID); err != nil {
		return notFoundAs(err, domain.ErrPlayerNotFound)
	}
	if txn.VisitID != nil {
		visit, err := s.visitRepo.FindVisitByID(ctx, actor.CasinoID, *txn.VisitID)
		if err != nil {
			return notFoundAs(err, domain.ErrVisitNotFound)
		}
		if visit.PlayerID == nil || *visit.PlayerID != txn.PlayerID {
			return domain.ErrVisitPlayerMismatch
		}
	}
	if txn.RatingSlipID != nil {
		slip, err := s.slipRepo.FindRatingSlipByID(ctx, actor.CasinoID, *txn.RatingSlipID)
		if err != nil {
			return notFoundAs(err, domain.ErrSlipNotFound)
		}
		if slip.PlayerID == nil || *slip.PlayerID != txn.PlayerID {
			return domain.ErrVisitPlayerMismatch
		}
		if txn.VisitID != nil && slip.VisitID != *txn.VisitID {
			return domain.ErrVisitPlayerMismatch
		}
	}
	return nil
}

// GetTransaction retrieves a ledger row.
func (s *financialService) GetTransaction(ctx context.Context, actor domain.Actor, transactionID string) (*domain.FinancialTransaction, error) {
	txn, err := s.financialRepo.FindTransactionByID(ctx, actor.CasinoID, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find financial transaction", slog.String("transaction_id", transactionID))
		}
		return nil, notFoundAs(err, domain.ErrTxnNotFound)
	}
	return txn, nil
}

// ListTransactions returns one page of ledger rows, newest first.
func (s *financialService) ListTransactions(ctx context.Context, actor domain.Actor, params dto.ListFinancialTransactionsParams) (*dto.ListFinancialTransactionsResponse, error) {
	limit := pagination.ClampLimit(params.Limit)
	filter := portsrepo.FinancialFilter{
		CasinoID: actor.CasinoID,
		PlayerID: params.PlayerID,
		VisitID:  params.VisitID,
		Limit:    limit + 1,
	}
	if params.GamingDay != "" {
		day, err := domain.ParseGamingDay(params.GamingDay)
		if err != nil {
			return nil, apperrors.Wrapf(apperrors.ErrValidation, "gamingDay must be YYYY-MM-DD")
		}
		from, to, err := s.gamingDay.GamingDayBounds(ctx, actor.CasinoID, day)
		if err != nil {
			return nil, err
		}
		filter.From, filter.To = &from, &to
	}
	if params.NextToken != "" {
		at, id, err := pagination.DecodeToken(params.NextToken)
		if err != nil {
			return nil, apperrors.Wrapf(apperrors.ErrValidation, "invalid nextToken")
		}
		filter.Before = &portsrepo.LedgerCursor{CreatedAt: at, ID: id}
	}

	txns, err := s.financialRepo.ListTransactions(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list financial transactions", slog.String("casino_id", actor.CasinoID))
		return nil, err
	}

	resp := &dto.ListFinancialTransactionsResponse{Transactions: txns}
	if len(txns) > limit {
		resp.Transactions = txns[:limit]
		last := resp.Transactions[limit-1]
		resp.NextToken = pagination.EncodeToken(last.CreatedAt, last.TransactionID)
	}
	if resp.Transactions == nil {
		resp.Transactions = []domain.FinancialTransaction{}
	}
	return resp, nil
}

// VisitSummary totals the ledger rows of a visit.
func (s *financialService) VisitSummary(ctx context.Context, actor domain.Actor, visitID string) (*dto.VisitFinancialSummaryResponse, error) {
	if _, err := s.visitRepo.FindVisitByID(ctx, actor.CasinoID, visitID); err != nil {
		return nil, notFoundAs(err, domain.ErrVisitNotFound)
	}
	txns, err := s.financialRepo.ListTransactions(ctx, portsrepo.FinancialFilter{CasinoID: actor.CasinoID, VisitID: visitID})
	if err != nil {
		s.LogError(ctx, err, "Failed to load visit ledger", slog.String("visit_id", visitID))
		return nil, err
	}
	return &dto.VisitFinancialSummaryResponse{VisitID: visitID, FinancialSummary: domain.Summarize(txns)}, nil
}
