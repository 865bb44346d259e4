package repositories

import (
	"context"

	"github.com/SscSPs/player_tracker/internal/core/domain"
)

// VisitReader defines read operations for visits.
type VisitReader interface {
	// FindVisitByID retrieves a visit of a casino.
	FindVisitByID(ctx context.Context, casinoID, visitID string) (*domain.Visit, error)

	// FindActiveVisitByPlayer retrieves the player's visit that has not ended.
	FindActiveVisitByPlayer(ctx context.Context, casinoID, playerID string) (*domain.Visit, error)
}

// VisitWriter defines write operations for visits.
type VisitWriter interface {
	// SaveVisit persists a new visit. A second active visit for the same player fails with
	// domain.ErrVisitAlreadyActive.
	SaveVisit(ctx context.Context, visit domain.Visit) error
}

// VisitRepositoryFacade combines all visit-related repository interfaces
type VisitRepositoryFacade interface {
	VisitReader
	VisitWriter
}
