package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	CasinoRepo     CasinoRepositoryFacade
	StaffRepo      StaffRepositoryFacade
	PlayerRepo     PlayerRepositoryFacade
	VisitRepo      VisitRepositoryFacade
	TableRepo      TableRepositoryFacade
	RatingSlipRepo RatingSlipRepositoryWithTx
	FinancialRepo  FinancialRepositoryFacade
	LoyaltyRepo    LoyaltyRepositoryFacade
}
