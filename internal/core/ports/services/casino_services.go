package services

import (
	"context"
	"time"

	"github.com/SscSPs/player_tracker/internal/core/domain"
	"github.com/SscSPs/player_tracker/internal/dto"
)

// CasinoSettingsSvc defines operations on the caller's casino configuration.
type CasinoSettingsSvc interface {
	// GetSettings retrieves the settings of the actor's casino.
	GetSettings(ctx context.Context, actor domain.Actor) (*domain.CasinoSettings, error)

	// UpdateSettings changes the settings of the actor's casino. Admin only.
	UpdateSettings(ctx context.Context, actor domain.Actor, req dto.UpdateCasinoSettingsRequest) (*domain.CasinoSettings, error)
}

// GamingDaySvc resolves gaming days. It is the single place gaming days are derived.
type GamingDaySvc interface {
	// ResolveGamingDay returns the gaming day containing at for the casino.
	ResolveGamingDay(ctx context.Context, casinoID string, at time.Time) (domain.GamingDay, error)

	// GamingDayBounds returns the instant range [from, to) of a gaming day for the casino.
	GamingDayBounds(ctx context.Context, casinoID string, day domain.GamingDay) (time.Time, time.Time, error)
}

// CasinoSvcFacade combines all casino-related service interfaces
type CasinoSvcFacade interface {
	CasinoSettingsSvc
	GamingDaySvc
}
