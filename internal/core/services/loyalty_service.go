package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/SscSPs/player_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/player_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/player_tracker/internal/core/ports/services"
	"github.com/SscSPs/player_tracker/internal/dto"
	"github.com/SscSPs/player_tracker/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type loyaltyService struct {
	BaseService
	loyaltyRepo portsrepo.LoyaltyRepositoryFacade
	playerRepo  portsrepo.PlayerReader
	tableRepo   portsrepo.TableReader
	casinoRepo  portsrepo.CasinoReader
}

// NewLoyaltyService creates the loyalty service.
func NewLoyaltyService(
	loyaltyRepo portsrepo.LoyaltyRepositoryFacade,
	playerRepo portsrepo.PlayerReader,
	tableRepo portsrepo.TableReader,
	casinoRepo portsrepo.CasinoReader,
	opts ...Option,
) portssvc.LoyaltySvcFacade {
	return &loyaltyService{
		BaseService: newBaseService(opts...),
		loyaltyRepo: loyaltyRepo,
		playerRepo:  playerRepo,
		tableRepo:   tableRepo,
		casinoRepo:  casinoRepo,
	}
}

var _ portssvc.LoyaltySvcFacade = (*loyaltyService)(nil)

// AccrueForRatingSlip records the points a closed slip earned. Replays return the existing accrual.
func (s *loyaltyService) AccrueForRatingSlip(ctx context.Context, actor domain.Actor, slip domain.RatingSlip) (*domain.LoyaltyLedgerEntry, error) {
	if slip.PlayerID == nil || slip.Status != domain.SlipClosed {
		return nil, nil
	}
	table, err := s.tableRepo.FindTableByID(ctx, slip.CasinoID, slip.TableID)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrTableNotFound)
	}
	settings, err := s.casinoRepo.FindSettings(ctx, slip.CasinoID)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrCasinoNotFound)
	}

	theo, points, ok := domain.AccrualForSlip(slip, *table, *settings)
	if !ok {
		s.LogDebug(ctx, "Rating slip earned no points", slog.String("rating_slip_id", slip.RatingSlipID))
		return nil, nil
	}

	slipID := slip.RatingSlipID
	entry := domain.LoyaltyLedgerEntry{
		EntryID:      uuid.NewString(),
		CasinoID:     slip.CasinoID,
		PlayerID:     *slip.PlayerID,
		RatingSlipID: &slipID,
		Kind:         domain.LoyaltyAccrual,
		Points:       points,
		Theo:         theo,
		Reason:       "rating slip " + slipID,
		CreatedAt:    s.Now(),
		CreatedBy:    actor.StaffID,
	}
	stored, created, err := s.loyaltyRepo.AppendEntry(ctx, entry)
	if err != nil {
		return nil, err
	}
	if created {
		s.LogInfo(ctx, "Loyalty accrued",
			slog.String("rating_slip_id", slipID),
			slog.String("player_id", entry.PlayerID),
			slog.String("points", points.String()))
		s.Publish(ctx, actor, domain.EventLoyaltyAccrued, stored.EntryID, slip.TableID, stored)
	}
	return stored, nil
}

// AdjustPoints credits or debits a player's points once per idempotency key.
func (s *loyaltyService) AdjustPoints(ctx context.Context, actor domain.Actor, playerID, idempotencyKey string, req dto.AdjustPointsRequest) (*dto.AdjustPointsResponse, error) {
	if err := s.Authorize(ctx, actor, domain.RoleAdmin); err != nil {
		return nil, err
	}
	idempotencyKey = strings.TrimSpace(idempotencyKey)
	if idempotencyKey == "" {
		return nil, domain.ErrIdempotencyKeyNeeded
	}
	if req.Points.IsZero() {
		return nil, domain.ErrLoyaltyZeroPoints
	}
	if _, err := s.playerRepo.FindPlayerByID(ctx, actor.CasinoID, playerID); err != nil {
		return nil, notFoundAs(err, domain.ErrPlayerNotFound)
	}

	kind := domain.LoyaltyAdjustment
	if req.Points.IsNegative() {
		kind = domain.LoyaltyRedemption
	}
	entry := domain.LoyaltyLedgerEntry{
		EntryID:        uuid.NewString(),
		CasinoID:       actor.CasinoID,
		PlayerID:       playerID,
		Kind:           kind,
		Points:         req.Points,
		Theo:           decimal.Zero,
		IdempotencyKey: &idempotencyKey,
		Reason:         strings.TrimSpace(req.Reason),
		CreatedAt:      s.Now(),
		CreatedBy:      actor.StaffID,
	}
	stored, created, err := s.loyaltyRepo.AppendEntry(ctx, entry)
	if err != nil {
		return nil, err
	}
	if !created {
		if stored.PlayerID != entry.PlayerID || !stored.Points.Equal(entry.Points) {
			return nil, domain.ErrIdempotencyKeyReused
		}
		return &dto.AdjustPointsResponse{Entry: *stored, Created: false}, nil
	}

	s.LogInfo(ctx, "Loyalty points adjusted",
		slog.String("player_id", playerID),
		slog.String("points", req.Points.String()))
	s.Publish(ctx, actor, domain.EventLoyaltyAdjusted, stored.EntryID, "", stored)
	return &dto.AdjustPointsResponse{Entry: *stored, Created: true}, nil
}

// GetLoyalty returns the balance and recent entries of a player.
func (s *loyaltyService) GetLoyalty(ctx context.Context, actor domain.Actor, playerID string, limit int) (*dto.LoyaltyResponse, error) {
	if _, err := s.playerRepo.FindPlayerByID(ctx, actor.CasinoID, playerID); err != nil {
		return nil, notFoundAs(err, domain.ErrPlayerNotFound)
	}
	balance, err := s.loyaltyRepo.GetBalance(ctx, actor.CasinoID, playerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load loyalty balance", slog.String("player_id", playerID))
		return nil, err
	}
	entries, err := s.loyaltyRepo.ListEntries(ctx, actor.CasinoID, playerID, pagination.ClampLimit(limit))
	if err != nil {
		s.LogError(ctx, err, "Failed to list loyalty entries", slog.String("player_id", playerID))
		return nil, err
	}
	if entries == nil {
		entries = []domain.LoyaltyLedgerEntry{}
	}
	return &dto.LoyaltyResponse{
		LoyaltyBalance: domain.LoyaltyBalance{PlayerID: playerID, Points: balance},
		Entries:        entries,
	}, nil
}
