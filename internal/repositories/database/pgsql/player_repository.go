package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/player_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/player_tracker/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const playerColumns = `player_id, casino_id, first_name, last_name, birth_date, loyalty_tier, status,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxPlayerRepository struct {
	BaseRepository
}

// newPgxPlayerRepository creates a new repository for player data.
func newPgxPlayerRepository(pool *pgxpool.Pool) portsrepo.PlayerRepositoryFacade {
	return &PgxPlayerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.PlayerRepositoryFacade = (*PgxPlayerRepository)(nil)

func scanPlayer(row pgx.Row) (domain.Player, error) {
	var p domain.Player
	err := row.Scan(
		&p.PlayerID,
		&p.CasinoID,
		&p.FirstName,
		&p.LastName,
		&p.BirthDate,
		&p.LoyaltyTier,
		&p.Status,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
	)
	return p, err
}

// SavePlayer persists a new player.
func (r *PgxPlayerRepository) SavePlayer(ctx context.Context, player domain.Player) error {
	query := `
		INSERT INTO players (` + playerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	err := r.withCasinoTx(ctx, player.CasinoID, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, query,
			player.PlayerID,
			player.CasinoID,
			player.FirstName,
			player.LastName,
			player.BirthDate,
			player.LoyaltyTier,
			player.Status,
			player.CreatedAt,
			player.CreatedBy,
			player.LastUpdatedAt,
			player.LastUpdatedBy,
		)
		return err
	})
	return translateError(err, "failed to save player")
}

// UpdatePlayer replaces the mutable fields of a player.
func (r *PgxPlayerRepository) UpdatePlayer(ctx context.Context, player domain.Player) error {
	query := `
		UPDATE players
		SET first_name = $2, last_name = $3, birth_date = $4, loyalty_tier = $5, status = $6,
			last_updated_at = $7, last_updated_by = $8
		WHERE player_id = $1;
	`
	err := r.withCasinoTx(ctx, player.CasinoID, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, query,
			player.PlayerID,
			player.FirstName,
			player.LastName,
			player.BirthDate,
			player.LoyaltyTier,
			player.Status,
			player.LastUpdatedAt,
			player.LastUpdatedBy,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		return nil
	})
	return translateError(err, "failed to update player")
}

// FindPlayerByID retrieves a player of a casino.
func (r *PgxPlayerRepository) FindPlayerByID(ctx context.Context, casinoID, playerID string) (*domain.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE player_id = $1;`
	var player domain.Player
	err := r.withCasinoTx(ctx, casinoID, func(tx pgx.Tx) (err error) {
		player, err = scanPlayer(tx.QueryRow(ctx, query, playerID))
		return err
	})
	if err != nil {
		return nil, translateError(err, "failed to find player")
	}
	return &player, nil
}

// SearchPlayers retrieves up to Limit players whose first or last name starts with the query.
func (r *PgxPlayerRepository) SearchPlayers(ctx context.Context, search portsrepo.PlayerSearch) ([]domain.Player, error) {
	var (
		conditions = []string{"casino_id = $1"}
		args       = []any{search.CasinoID}
	)
	if q := strings.TrimSpace(search.Query); q != "" {
		args = append(args, escapeLike(strings.ToLower(q))+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf("(lower(first_name) LIKE $%d OR lower(last_name) LIKE $%d)", n, n))
	}
	if c := search.After; c != nil {
		args = append(args, strings.ToLower(c.LastName), strings.ToLower(c.FirstName), c.PlayerID)
		n := len(args)
		conditions = append(conditions, fmt.Sprintf("(lower(last_name), lower(first_name), player_id) > ($%d, $%d, $%d::uuid)", n-2, n-1, n))
	}
	query := `SELECT ` + playerColumns + ` FROM players WHERE ` + strings.Join(conditions, " AND ") +
		` ORDER BY lower(last_name), lower(first_name), player_id`
	if search.Limit > 0 {
		args = append(args, search.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	var players []domain.Player
	err := r.withCasinoTx(ctx, search.CasinoID, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		players, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Player, error) {
			return scanPlayer(row)
		})
		return err
	})
	if err != nil {
		return nil, translateError(err, "failed to search players")
	}
	if players == nil {
		players = []domain.Player{}
	}
	return players, nil
}

// escapeLike escapes the LIKE wildcards in s.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
