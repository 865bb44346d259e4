package services

import (
	"context"

	"github.com/SscSPs/player_tracker/internal/core/domain"
	"github.com/SscSPs/player_tracker/internal/dto"
)

// LoyaltyAccrualSvc turns closed rating slips into points.
type LoyaltyAccrualSvc interface {
	// AccrueForRatingSlip records the accrual of a closed slip. It returns nil without error
	// when the slip earns nothing.
	AccrueForRatingSlip(ctx context.Context, actor domain.Actor, slip domain.RatingSlip) (*domain.LoyaltyLedgerEntry, error)
}

// LoyaltySvcFacade combines accrual with balance reads and manual adjustments.
type LoyaltySvcFacade interface {
	LoyaltyAccrualSvc

	// AdjustPoints credits or debits points. Admin only.
	AdjustPoints(ctx context.Context, actor domain.Actor, playerID, idempotencyKey string, req dto.AdjustPointsRequest) (*dto.AdjustPointsResponse, error)

	// GetLoyalty returns the balance and the most recent entries of a player.
	GetLoyalty(ctx context.Context, actor domain.Actor, playerID string, limit int) (*dto.LoyaltyResponse, error)
}
