package pgsql

import (
	"context"

	"github.com/SscSPs/player_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/player_tracker/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCasinoRepository struct {
	BaseRepository
}

// newPgxCasinoRepository creates a new repository for casinos and their settings.
func newPgxCasinoRepository(pool *pgxpool.Pool) portsrepo.CasinoRepositoryFacade {
	return &PgxCasinoRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.CasinoRepositoryFacade = (*PgxCasinoRepository)(nil)

// FindCasinoByID retrieves a casino.
func (r *PgxCasinoRepository) FindCasinoByID(ctx context.Context, casinoID string) (*domain.Casino, error) {
	query := `
		SELECT casino_id, name, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM casinos
		WHERE casino_id = $1;
	`
	var c domain.Casino
	err := r.withCasinoTx(ctx, casinoID, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, query, casinoID).Scan(
			&c.CasinoID,
			&c.Name,
			&c.IsActive,
			&c.CreatedAt,
			&c.CreatedBy,
			&c.LastUpdatedAt,
			&c.LastUpdatedBy,
		)
	})
	if err != nil {
		return nil, translateError(err, "failed to find casino")
	}
	return &c, nil
}

// FindSettings retrieves the settings of a casino.
func (r *PgxCasinoRepository) FindSettings(ctx context.Context, casinoID string) (*domain.CasinoSettings, error) {
	query := `
		SELECT casino_id, timezone, to_char(gaming_day_start, 'HH24:MI'), points_per_theo,
			require_average_bet_on_close, last_updated_at, last_updated_by
		FROM casino_settings
		WHERE casino_id = $1;
	`
	var (
		s        domain.CasinoSettings
		dayStart string
	)
	err := r.withCasinoTx(ctx, casinoID, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, query, casinoID).Scan(
			&s.CasinoID,
			&s.Timezone,
			&dayStart,
			&s.PointsPerTheo,
			&s.RequireAverageBetOnClose,
			&s.LastUpdatedAt,
			&s.LastUpdatedBy,
		)
	})
	if err != nil {
		return nil, translateError(err, "failed to find casino settings")
	}
	if s.GamingDayStart, err = domain.ParseTimeOfDay(dayStart); err != nil {
		return nil, translateError(err, "stored gaming day start is malformed")
	}
	return &s, nil
}

// CountCasinos returns how many casinos exist. It runs before any casino is in scope.
func (r *PgxCasinoRepository) CountCasinos(ctx context.Context) (int, error) {
	var count int
	err := r.withScopedTx(ctx, "app.scope", "bootstrap", func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, `SELECT count(*) FROM casinos;`).Scan(&count)
	})
	if err != nil {
		return 0, translateError(err, "failed to count casinos")
	}
	return count, nil
}

// CreateCasinoWithAdmin persists a casino, its settings and its first admin atomically.
func (r *PgxCasinoRepository) CreateCasinoWithAdmin(ctx context.Context, casino domain.Casino, settings domain.CasinoSettings, admin domain.Staff) error {
	err := r.withCasinoTx(ctx, casino.CasinoID, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			INSERT INTO casinos (casino_id, name, is_active, created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7);`,
			casino.CasinoID, casino.Name, casino.IsActive,
			casino.CreatedAt, casino.CreatedBy, casino.LastUpdatedAt, casino.LastUpdatedBy,
		); err != nil {
			return err
		}
		if err := upsertSettings(ctx, tx, settings); err != nil {
			return err
		}
		return insertStaff(ctx, tx, admin)
	})
	return translateError(err, "failed to create casino")
}

// UpdateSettings replaces the settings of a casino.
func (r *PgxCasinoRepository) UpdateSettings(ctx context.Context, settings domain.CasinoSettings) error {
	err := r.withCasinoTx(ctx, settings.CasinoID, func(tx pgx.Tx) error {
		return upsertSettings(ctx, tx, settings)
	})
	return translateError(err, "failed to update casino settings")
}

func upsertSettings(ctx context.Context, tx pgx.Tx, s domain.CasinoSettings) error {
	query := `
		INSERT INTO casino_settings (casino_id, timezone, gaming_day_start, points_per_theo,
			require_average_bet_on_close, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3::time, $4, $5, $6, $7)
		ON CONFLICT (casino_id) DO UPDATE SET
			timezone = EXCLUDED.timezone,
			gaming_day_start = EXCLUDED.gaming_day_start,
			points_per_theo = EXCLUDED.points_per_theo,
			require_average_bet_on_close = EXCLUDED.require_average_bet_on_close,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := tx.Exec(ctx, query,
		s.CasinoID,
		s.Timezone,
		s.GamingDayStart.String(),
		s.PointsPerTheo,
		s.RequireAverageBetOnClose,
		s.LastUpdatedAt,
		s.LastUpdatedBy,
	)
	return err
}
