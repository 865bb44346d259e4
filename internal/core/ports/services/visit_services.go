package services

import (
	"context"

	"github.com/SscSPs/player_tracker/internal/core/domain"
	"github.com/SscSPs/player_tracker/internal/dto"
)

// VisitSvcFacade manages visits.
type VisitSvcFacade interface {
	// StartVisit opens a visit, or a ghost visit when no player is given.
	StartVisit(ctx context.Context, actor domain.Actor, req dto.StartVisitRequest) (*domain.Visit, error)

	GetVisit(ctx context.Context, actor domain.Actor, visitID string) (*domain.Visit, error)

	// EndVisit ends a visit that has no open or paused rating slips.
	EndVisit(ctx context.Context, actor domain.Actor, visitID string) (*domain.Visit, error)

	GetActiveVisitForPlayer(ctx context.Context, actor domain.Actor, playerID string) (*domain.Visit, error)
}
