package services

import (
	"context"

	"github.com/SscSPs/player_tracker/internal/core/domain"
	"github.com/SscSPs/player_tracker/internal/dto"
)

// TableSvcFacade manages the gaming tables on the floor.
type TableSvcFacade interface {
	CreateTable(ctx context.Context, actor domain.Actor, req dto.CreateTableRequest) (*domain.GamingTable, error)
	GetTable(ctx context.Context, actor domain.Actor, tableID string) (*domain.GamingTable, error)
	ListTables(ctx context.Context, actor domain.Actor, status *domain.TableStatus) ([]domain.GamingTable, error)

	// SetTableStatus changes a table's state. A table with active slips can only stay active.
	SetTableStatus(ctx context.Context, actor domain.Actor, tableID string, status domain.TableStatus) (*domain.GamingTable, error)

	// ListActiveSlips returns the open and paused slips seated at a table.
	ListActiveSlips(ctx context.Context, actor domain.Actor, tableID string) ([]domain.RatingSlip, error)
}
