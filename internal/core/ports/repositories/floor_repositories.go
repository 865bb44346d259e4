package repositories

import (
	"context"

	"github.com/SscSPs/player_tracker/internal/core/domain"
)

// FloorTx is the set of operations available inside one casino-scoped database transaction
// on the floor: visits, tables and rating slips. Lock methods hold the row until the
// transaction ends.
type FloorTx interface {
	// LockVisit reads a visit with SELECT ... FOR UPDATE.
	LockVisit(ctx context.Context, visitID string) (*domain.Visit, error)

	// UpdateVisit writes the end time and audit fields of a visit.
	UpdateVisit(ctx context.Context, visit domain.Visit) error

	// LockTable reads a table with SELECT ... FOR UPDATE.
	LockTable(ctx context.Context, tableID string) (*domain.GamingTable, error)

	// UpdateTable writes the status and audit fields of a table.
	UpdateTable(ctx context.Context, table domain.GamingTable) error

	// LockRatingSlip reads a slip with SELECT ... FOR UPDATE together with its pauses.
	LockRatingSlip(ctx context.Context, slipID string) (*domain.RatingSlip, error)

	// CountActiveSlipsForVisit counts the open and paused slips of a visit.
	CountActiveSlipsForVisit(ctx context.Context, visitID string) (int, error)

	// CountActiveSlipsForTable counts the open and paused slips at a table.
	CountActiveSlipsForTable(ctx context.Context, tableID string) (int, error)

	// HasActiveSlipForPlayerAtTable reports whether the player has an open or paused slip at the table.
	HasActiveSlipForPlayerAtTable(ctx context.Context, playerID, tableID string) (bool, error)

	// InsertRatingSlip persists a new slip.
	InsertRatingSlip(ctx context.Context, slip domain.RatingSlip) error

	// UpdateRatingSlip writes the mutable columns of a slip.
	UpdateRatingSlip(ctx context.Context, slip domain.RatingSlip) error

	// InsertPause persists a new active pause.
	InsertPause(ctx context.Context, pause domain.RatingSlipPause) error

	// EndPause writes the end of a pause.
	EndPause(ctx context.Context, pause domain.RatingSlipPause) error
}

// FloorTxRunner runs fn inside a transaction scoped to casinoID. The transaction commits when
// fn returns nil and rolls back otherwise.
type FloorTxRunner interface {
	WithFloorTx(ctx context.Context, casinoID string, fn func(ctx context.Context, tx FloorTx) error) error
}

// RatingSlipReader defines read operations for rating slips.
type RatingSlipReader interface {
	// FindRatingSlipByID retrieves a slip with its pauses.
	FindRatingSlipByID(ctx context.Context, casinoID, slipID string) (*domain.RatingSlip, error)

	// ListRatingSlipsByVisit retrieves the slips of a visit ordered by start time.
	ListRatingSlipsByVisit(ctx context.Context, casinoID, visitID string) ([]domain.RatingSlip, error)

	// ListActiveRatingSlipsByTable retrieves the open and paused slips at a table ordered by seat.
	ListActiveRatingSlipsByTable(ctx context.Context, casinoID, tableID string) ([]domain.RatingSlip, error)
}

// RatingSlipRepositoryWithTx combines rating slip reads with floor transactions.
type RatingSlipRepositoryWithTx interface {
	RatingSlipReader
	FloorTxRunner
}
