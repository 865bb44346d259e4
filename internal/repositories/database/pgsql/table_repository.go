package pgsql

import (
	"context"

	"github.com/SscSPs/player_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/player_tracker/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const tableColumns = `table_id, casino_id, label, game_type, seats, house_edge, decisions_per_hour, status,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxTableRepository struct {
	BaseRepository
}

// newPgxTableRepository creates a new repository for gaming tables.
func newPgxTableRepository(pool *pgxpool.Pool) portsrepo.TableRepositoryFacade {
	return &PgxTableRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.TableRepositoryFacade = (*PgxTableRepository)(nil)

func scanTable(row pgx.Row) (domain.GamingTable, error) {
	var t domain.GamingTable
	err := row.Scan(
		&t.TableID,
		&t.CasinoID,
		&t.Label,
		&t.GameType,
		&t.Seats,
		&t.HouseEdge,
		&t.DecisionsPerHour,
		&t.Status,
		&t.CreatedAt,
		&t.CreatedBy,
		&t.LastUpdatedAt,
		&t.LastUpdatedBy,
	)
	return t, err
}

// SaveTable persists a new table.
func (r *PgxTableRepository) SaveTable(ctx context.Context, table domain.GamingTable) error {
	query := `
		INSERT INTO gaming_tables (` + tableColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	err := r.withCasinoTx(ctx, table.CasinoID, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, query,
			table.TableID,
			table.CasinoID,
			table.Label,
			table.GameType,
			table.Seats,
			table.HouseEdge,
			table.DecisionsPerHour,
			table.Status,
			table.CreatedAt,
			table.CreatedBy,
			table.LastUpdatedAt,
			table.LastUpdatedBy,
		)
		return err
	})
	return translateError(err, "failed to save gaming table")
}

// FindTableByID retrieves a table of a casino.
func (r *PgxTableRepository) FindTableByID(ctx context.Context, casinoID, tableID string) (*domain.GamingTable, error) {
	query := `SELECT ` + tableColumns + ` FROM gaming_tables WHERE table_id = $1;`
	var table domain.GamingTable
	err := r.withCasinoTx(ctx, casinoID, func(tx pgx.Tx) (err error) {
		table, err = scanTable(tx.QueryRow(ctx, query, tableID))
		return err
	})
	if err != nil {
		return nil, translateError(err, "failed to find gaming table")
	}
	return &table, nil
}

// ListTables retrieves the tables of a casino ordered by label, optionally by status.
func (r *PgxTableRepository) ListTables(ctx context.Context, casinoID string, status *domain.TableStatus) ([]domain.GamingTable, error) {
	query := `
		SELECT ` + tableColumns + `
		FROM gaming_tables
		WHERE casino_id = $1 AND ($2::text IS NULL OR status = $2)
		ORDER BY label;
	`
	var tables []domain.GamingTable
	err := r.withCasinoTx(ctx, casinoID, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, casinoID, status)
		if err != nil {
			return err
		}
		tables, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.GamingTable, error) {
			return scanTable(row)
		})
		return err
	})
	if err != nil {
		return nil, translateError(err, "failed to list gaming tables")
	}
	if tables == nil {
		tables = []domain.GamingTable{}
	}
	return tables, nil
}
