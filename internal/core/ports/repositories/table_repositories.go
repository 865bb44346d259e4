package repositories

import (
	"context"

	"github.com/SscSPs/player_tracker/internal/core/domain"
)

// TableReader defines read operations for gaming tables.
type TableReader interface {
	// FindTableByID retrieves a table of a casino.
	FindTableByID(ctx context.Context, casinoID, tableID string) (*domain.GamingTable, error)

	// ListTables retrieves the tables of a casino ordered by label, optionally by status.
	ListTables(ctx context.Context, casinoID string, status *domain.TableStatus) ([]domain.GamingTable, error)
}

// TableWriter defines write operations for gaming tables.
type TableWriter interface {
	// SaveTable persists a new table.
	SaveTable(ctx context.Context, table domain.GamingTable) error
}

// TableRepositoryFacade combines all table-related repository interfaces
type TableRepositoryFacade interface {
	TableReader
	TableWriter
}
