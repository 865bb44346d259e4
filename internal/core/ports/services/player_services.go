package services

import (
	"context"

	"github.com/SscSPs/player_tracker/internal/core/domain"
	"github.com/SscSPs/player_tracker/internal/dto"
)

// PlayerReaderSvc defines read operations for players.
type PlayerReaderSvc interface {
	GetPlayer(ctx context.Context, actor domain.Actor, playerID string) (*domain.Player, error)

	// SearchPlayers returns a page of players and the token of the next page, if any.
	SearchPlayers(ctx context.Context, actor domain.Actor, params dto.SearchPlayersParams) (*dto.ListPlayersResponse, error)
}

// PlayerWriterSvc defines write operations for players.
type PlayerWriterSvc interface {
	CreatePlayer(ctx context.Context, actor domain.Actor, req dto.CreatePlayerRequest) (*domain.Player, error)
	UpdatePlayer(ctx context.Context, actor domain.Actor, playerID string, req dto.UpdatePlayerRequest) (*domain.Player, error)
}

// PlayerSvcFacade combines all player-related service interfaces
type PlayerSvcFacade interface {
	PlayerReaderSvc
	PlayerWriterSvc
}
