package services

import (
	"context"

	"github.com/SscSPs/player_tracker/internal/core/domain"
	"github.com/SscSPs/player_tracker/internal/dto"
)

// RatingSlipReaderSvc defines read operations for rating slips.
type RatingSlipReaderSvc interface {
	GetSlip(ctx context.Context, actor domain.Actor, slipID string) (*domain.RatingSlip, error)
	ListSlipsForVisit(ctx context.Context, actor domain.Actor, visitID string) ([]domain.RatingSlip, error)
}

// RatingSlipLifecycleSvc defines the rating slip transitions. Each runs in one transaction
// with the slip row locked.
type RatingSlipLifecycleSvc interface {
	StartSlip(ctx context.Context, actor domain.Actor, req dto.StartRatingSlipRequest) (*domain.RatingSlip, error)
	PauseSlip(ctx context.Context, actor domain.Actor, slipID string) (*domain.RatingSlip, error)
	ResumeSlip(ctx context.Context, actor domain.Actor, slipID string) (*domain.RatingSlip, error)
	CloseSlip(ctx context.Context, actor domain.Actor, slipID string, req dto.CloseRatingSlipRequest) (*domain.RatingSlip, error)
	UpdateAverageBet(ctx context.Context, actor domain.Actor, slipID string, req dto.UpdateAverageBetRequest) (*domain.RatingSlip, error)

	// MoveSlip closes the slip and starts a new one at the target seat for the same visit.
	MoveSlip(ctx context.Context, actor domain.Actor, slipID string, req dto.MoveRatingSlipRequest) (*dto.MoveRatingSlipResponse, error)

	// AccrueLoyalty retries the loyalty accrual of a closed slip. It is a no-op when the slip
	// has already accrued.
	AccrueLoyalty(ctx context.Context, actor domain.Actor, slipID string) (*domain.LoyaltyLedgerEntry, error)
}

// RatingSlipSvcFacade combines all rating slip service interfaces
type RatingSlipSvcFacade interface {
	RatingSlipReaderSvc
	RatingSlipLifecycleSvc
}
