package repositories

import (
	"context"

	"github.com/SscSPs/player_tracker/internal/core/domain"
)

// CasinoReader defines read operations for casinos and their settings.
type CasinoReader interface {
	// FindCasinoByID retrieves a casino.
	FindCasinoByID(ctx context.Context, casinoID string) (*domain.Casino, error)

	// FindSettings retrieves the settings of a casino.
	FindSettings(ctx context.Context, casinoID string) (*domain.CasinoSettings, error)

	// CountCasinos returns how many casinos exist.
	CountCasinos(ctx context.Context) (int, error)
}

// CasinoWriter defines write operations for casinos.
type CasinoWriter interface {
	// CreateCasinoWithAdmin persists a casino, its settings and its first admin atomically.
	CreateCasinoWithAdmin(ctx context.Context, casino domain.Casino, settings domain.CasinoSettings, admin domain.Staff) error

	// UpdateSettings replaces the settings of a casino.
	UpdateSettings(ctx context.Context, settings domain.CasinoSettings) error
}

// CasinoRepositoryFacade combines all casino-related repository interfaces
type CasinoRepositoryFacade interface {
	CasinoReader
	CasinoWriter
}
