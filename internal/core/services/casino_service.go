package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/player_tracker/internal/apperrors"
	"github.com/SscSPs/player_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/player_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/player_tracker/internal/core/ports/services"
	"github.com/SscSPs/player_tracker/internal/dto"
)

type casinoService struct {
	BaseService
	casinoRepo portsrepo.CasinoRepositoryFacade
}

// NewCasinoService creates the casino settings and gaming day service.
func NewCasinoService(casinoRepo portsrepo.CasinoRepositoryFacade, opts ...Option) portssvc.CasinoSvcFacade {
	return &casinoService{
		BaseService: newBaseService(opts...),
		casinoRepo:  casinoRepo,
	}
}

var _ portssvc.CasinoSvcFacade = (*casinoService)(nil)

func (s *casinoService) loadSettings(ctx context.Context, casinoID string) (*domain.CasinoSettings, error) {
	settings, err := s.casinoRepo.FindSettings(ctx, casinoID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, domain.ErrCasinoNotFound
		}
		s.LogError(ctx, err, "Failed to load casino settings", slog.String("casino_id", casinoID))
		return nil, err
	}
	return settings, nil
}

// GetSettings retrieves the settings of the actor's casino.
func (s *casinoService) GetSettings(ctx context.Context, actor domain.Actor) (*domain.CasinoSettings, error) {
	return s.loadSettings(ctx, actor.CasinoID)
}

// UpdateSettings validates and stores new settings for the actor's casino.
func (s *casinoService) UpdateSettings(ctx context.Context, actor domain.Actor, req dto.UpdateCasinoSettingsRequest) (*domain.CasinoSettings, error) {
	if err := s.Authorize(ctx, actor, domain.RoleAdmin); err != nil {
		return nil, err
	}
	settings, err := s.loadSettings(ctx, actor.CasinoID)
	if err != nil {
		return nil, err
	}

	if req.Timezone != nil {
		if _, err := time.LoadLocation(*req.Timezone); err != nil || *req.Timezone == "" {
			return nil, domain.ErrInvalidTimezone
		}
		settings.Timezone = *req.Timezone
	}
	if req.GamingDayStart != nil {
		start, err := domain.ParseTimeOfDay(*req.GamingDayStart)
		if err != nil {
			return nil, domain.ErrInvalidGamingStart
		}
		settings.GamingDayStart = start
	}
	if req.PointsPerTheo != nil {
		if req.PointsPerTheo.IsNegative() {
			return nil, apperrors.Wrapf(apperrors.ErrValidation, "pointsPerTheo must not be negative")
		}
		settings.PointsPerTheo = *req.PointsPerTheo
	}
	if req.RequireAverageBetOnClose != nil {
		settings.RequireAverageBetOnClose = *req.RequireAverageBetOnClose
	}
	settings.LastUpdatedAt = s.Now()
	settings.LastUpdatedBy = actor.StaffID

	if err := s.casinoRepo.UpdateSettings(ctx, *settings); err != nil {
		s.LogError(ctx, err, "Failed to update casino settings", slog.String("casino_id", actor.CasinoID))
		return nil, err
	}

	s.LogInfo(ctx, "Casino settings updated",
		slog.String("casino_id", actor.CasinoID),
		slog.String("timezone", settings.Timezone),
		slog.String("gaming_day_start", settings.GamingDayStart.String()))
	return settings, nil
}

// ResolveGamingDay returns the gaming day containing at for the casino.
func (s *casinoService) ResolveGamingDay(ctx context.Context, casinoID string, at time.Time) (domain.GamingDay, error) {
	settings, err := s.loadSettings(ctx, casinoID)
	if err != nil {
		return domain.GamingDay{}, err
	}
	return settings.GamingDayAt(at)
}

// GamingDayBounds returns the instant range of a gaming day for the casino.
func (s *casinoService) GamingDayBounds(ctx context.Context, casinoID string, day domain.GamingDay) (time.Time, time.Time, error) {
	settings, err := s.loadSettings(ctx, casinoID)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return settings.GamingDayBounds(day)
}
