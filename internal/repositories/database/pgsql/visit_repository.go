package pgsql

import (
	"context"

	"github.com/SscSPs/player_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/player_tracker/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const visitColumns = `visit_id, casino_id, player_id, started_at, ended_at,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxVisitRepository struct {
	BaseRepository
}

// newPgxVisitRepository creates a new repository for visits.
func newPgxVisitRepository(pool *pgxpool.Pool) portsrepo.VisitRepositoryFacade {
	return &PgxVisitRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.VisitRepositoryFacade = (*PgxVisitRepository)(nil)

func scanVisit(row pgx.Row) (domain.Visit, error) {
	var v domain.Visit
	err := row.Scan(
		&v.VisitID,
		&v.CasinoID,
		&v.PlayerID,
		&v.StartedAt,
		&v.EndedAt,
		&v.CreatedAt,
		&v.CreatedBy,
		&v.LastUpdatedAt,
		&v.LastUpdatedBy,
	)
	return v, err
}

// SaveVisit persists a new visit.
func (r *PgxVisitRepository) SaveVisit(ctx context.Context, visit domain.Visit) error {
	query := `
		INSERT INTO visits (` + visitColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	err := r.withCasinoTx(ctx, visit.CasinoID, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, query,
			visit.VisitID,
			visit.CasinoID,
			visit.PlayerID,
			visit.StartedAt,
			visit.EndedAt,
			visit.CreatedAt,
			visit.CreatedBy,
			visit.LastUpdatedAt,
			visit.LastUpdatedBy,
		)
		return err
	})
	return translateError(err, "failed to save visit")
}

// FindVisitByID retrieves a visit of a casino.
func (r *PgxVisitRepository) FindVisitByID(ctx context.Context, casinoID, visitID string) (*domain.Visit, error) {
	query := `SELECT ` + visitColumns + ` FROM visits WHERE visit_id = $1;`
	var visit domain.Visit
	err := r.withCasinoTx(ctx, casinoID, func(tx pgx.Tx) (err error) {
		visit, err = scanVisit(tx.QueryRow(ctx, query, visitID))
		return err
	})
	if err != nil {
		return nil, translateError(err, "failed to find visit")
	}
	return &visit, nil
}

// FindActiveVisitByPlayer retrieves the player's visit that has not ended.
func (r *PgxVisitRepository) FindActiveVisitByPlayer(ctx context.Context, casinoID, playerID string) (*domain.Visit, error) {
	query := `SELECT ` + visitColumns + ` FROM visits WHERE player_id = $1 AND ended_at IS NULL;`
	var visit domain.Visit
	err := r.withCasinoTx(ctx, casinoID, func(tx pgx.Tx) (err error) {
		visit, err = scanVisit(tx.QueryRow(ctx, query, playerID))
		return err
	})
	if err != nil {
		return nil, translateError(err, "failed to find active visit")
	}
	return &visit, nil
}
