package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/player_tracker/internal/apperrors"
	"github.com/SscSPs/player_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/player_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/player_tracker/internal/core/ports/services"
	"github.com/SscSPs/player_tracker/internal/dto"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

type visitService struct {
	BaseService
	visitRepo  portsrepo.VisitRepositoryFacade
	playerRepo portsrepo.PlayerReader
	floor      portsrepo.FloorTxRunner
}

// NewVisitService creates the visit service.
func NewVisitService(visitRepo portsrepo.VisitRepositoryFacade, playerRepo portsrepo.PlayerReader, floor portsrepo.FloorTxRunner, opts ...Option) portssvc.VisitSvcFacade {
	return &visitService{
		BaseService: newBaseService(opts...),
		visitRepo:   visitRepo,
		playerRepo:  playerRepo,
		floor:       floor,
	}
}

var _ portssvc.VisitSvcFacade = (*visitService)(nil)

// StartVisit opens a visit for a player, or a ghost visit when no player is given.
func (s *visitService) StartVisit(ctx context.Context, actor domain.Actor, req dto.StartVisitRequest) (*domain.Visit, error) {
	if err := s.Authorize(ctx, actor, domain.RolePitBoss, domain.RoleCashier); err != nil {
		return nil, err
	}

	if req.PlayerID != nil {
		player, err := s.playerRepo.FindPlayerByID(ctx, actor.CasinoID, *req.PlayerID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, domain.ErrPlayerNotFound
			}
			return nil, err
		}
		if !player.CanPlay() {
			return nil, domain.ErrPlayerInactive
		}
	}

	now := s.Now()
	visit := domain.Visit{
		VisitID:     uuid.NewString(),
		CasinoID:    actor.CasinoID,
		PlayerID:    req.PlayerID,
		StartedAt:   now,
		AuditFields: domain.NewAuditFields(actor.StaffID, now),
	}
	if err := s.visitRepo.SaveVisit(ctx, visit); err != nil {
		if !errors.Is(err, domain.ErrVisitAlreadyActive) {
			s.LogError(ctx, err, "Failed to save visit", slog.String("casino_id", actor.CasinoID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Visit started",
		slog.String("visit_id", visit.VisitID),
		slog.Bool("ghost", visit.IsGhost()))
	s.Publish(ctx, actor, domain.EventVisitStarted, visit.VisitID, "", visit)
	return &visit, nil
}

// GetVisit retrieves a visit of the actor's casino.
func (s *visitService) GetVisit(ctx context.Context, actor domain.Actor, visitID string) (*domain.Visit, error) {
	visit, err := s.visitRepo.FindVisitByID(ctx, actor.CasinoID, visitID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, domain.ErrVisitNotFound
		}
		s.LogError(ctx, err, "Failed to find visit", slog.String("visit_id", visitID))
		return nil, err
	}
	return visit, nil
}

// EndVisit ends a visit. The visit row is locked while its active slips are counted so a slip
// cannot be started on it concurrently.
func (s *visitService) EndVisit(ctx context.Context, actor domain.Actor, visitID string) (visit *domain.Visit, err error) {
	if err := s.Authorize(ctx, actor, domain.RolePitBoss, domain.RoleCashier); err != nil {
		return nil, err
	}
	ctx, span := s.StartSpan(ctx, "VisitService.EndVisit", attribute.String("visit_id", visitID))
	defer func() { s.EndSpan(span, err) }()

	err = s.floor.WithFloorTx(ctx, actor.CasinoID, func(ctx context.Context, tx portsrepo.FloorTx) error {
		v, err := tx.LockVisit(ctx, visitID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return domain.ErrVisitNotFound
			}
			return err
		}
		active, err := tx.CountActiveSlipsForVisit(ctx, visitID)
		if err != nil {
			return err
		}
		if active > 0 {
			return domain.ErrVisitHasActiveSlips
		}
		if err := v.End(s.Now(), actor.StaffID); err != nil {
			return err
		}
		if err := tx.UpdateVisit(ctx, *v); err != nil {
			return err
		}
		visit = v
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Visit ended", slog.String("visit_id", visitID))
	s.Publish(ctx, actor, domain.EventVisitEnded, visit.VisitID, "", visit)
	return visit, nil
}

// GetActiveVisitForPlayer retrieves the player's visit that has not ended.
func (s *visitService) GetActiveVisitForPlayer(ctx context.Context, actor domain.Actor, playerID string) (*domain.Visit, error) {
	visit, err := s.visitRepo.FindActiveVisitByPlayer(ctx, actor.CasinoID, playerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, domain.ErrVisitNotFound
		}
		return nil, err
	}
	return visit, nil
}
