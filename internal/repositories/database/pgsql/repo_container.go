package pgsql

import (
	portsrepo "github.com/SscSPs/player_tracker/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider creates and returns a provider with all repository implementations.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CasinoRepo:     newPgxCasinoRepository(dbPool),
		StaffRepo:      newPgxStaffRepository(dbPool),
		PlayerRepo:     newPgxPlayerRepository(dbPool),
		VisitRepo:      newPgxVisitRepository(dbPool),
		TableRepo:      newPgxTableRepository(dbPool),
		RatingSlipRepo: newPgxRatingSlipRepository(dbPool),
		FinancialRepo:  newPgxFinancialRepository(dbPool),
		LoyaltyRepo:    newPgxLoyaltyRepository(dbPool),
	}
}
