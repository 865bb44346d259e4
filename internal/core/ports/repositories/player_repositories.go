package repositories

import (
	"context"

	"github.com/SscSPs/player_tracker/internal/core/domain"
)

// PlayerSearch filters and pages a player search. Players are ordered by last name,
// first name and id.
type PlayerSearch struct {
	CasinoID string
	Query    string // Case-insensitive prefix of first or last name
	Limit    int
	After    *PlayerCursor
}

// PlayerCursor is the sort key of the last player on the previous page.
type PlayerCursor struct {
	LastName  string
	FirstName string
	PlayerID  string
}

// PlayerReader defines read operations for players.
type PlayerReader interface {
	// FindPlayerByID retrieves a player of a casino.
	FindPlayerByID(ctx context.Context, casinoID, playerID string) (*domain.Player, error)

	// SearchPlayers retrieves up to Limit players matching the search.
	SearchPlayers(ctx context.Context, search PlayerSearch) ([]domain.Player, error)
}

// PlayerWriter defines write operations for players.
type PlayerWriter interface {
	// SavePlayer persists a new player.
	SavePlayer(ctx context.Context, player domain.Player) error

	// UpdatePlayer replaces the mutable fields of a player.
	UpdatePlayer(ctx context.Context, player domain.Player) error
}

// PlayerRepositoryFacade combines all player-related repository interfaces
type PlayerRepositoryFacade interface {
	PlayerReader
	PlayerWriter
}
