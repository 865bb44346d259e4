package services

import (
	portsrepo "github.com/SscSPs/player_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/player_tracker/internal/core/ports/services"
	"github.com/SscSPs/player_tracker/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, opts ...Option) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Casino settings back gaming day resolution for every other service
	container.Casino = NewCasinoService(repos.CasinoRepo, opts...)
	container.Auth = NewAuthService(cfg, repos.StaffRepo, repos.CasinoRepo, opts...)
	container.Player = NewPlayerService(repos.PlayerRepo, opts...)
	container.Visit = NewVisitService(repos.VisitRepo, repos.PlayerRepo, repos.RatingSlipRepo, opts...)
	container.Table = NewTableService(repos.TableRepo, repos.RatingSlipRepo, opts...)

	// Loyalty is created before rating slips since closing a slip accrues points
	container.Loyalty = NewLoyaltyService(repos.LoyaltyRepo, repos.PlayerRepo, repos.TableRepo, repos.CasinoRepo, opts...)
	container.RatingSlip = NewRatingSlipService(repos.RatingSlipRepo, repos.CasinoRepo, container.Loyalty, opts...)
	container.Financial = NewFinancialService(repos.FinancialRepo, repos.PlayerRepo, repos.VisitRepo, repos.RatingSlipRepo, container.Casino, opts...)

	return container
}
