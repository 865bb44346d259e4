package pgsql

import (
	"context"

	"github.com/SscSPs/player_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/player_tracker/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const ratingSlipColumns = `rating_slip_id, casino_id, visit_id, player_id, table_id, seat_number, status,
	start_time, end_time, average_bet, paused_seconds, duration_seconds, moved_from_id,
	created_at, created_by, last_updated_at, last_updated_by`

const pauseColumns = `pause_id, rating_slip_id, casino_id, started_at, ended_at, created_by`

type PgxRatingSlipRepository struct {
	BaseRepository
}

// newPgxRatingSlipRepository creates a new repository for rating slips and floor transactions.
func newPgxRatingSlipRepository(pool *pgxpool.Pool) portsrepo.RatingSlipRepositoryWithTx {
	return &PgxRatingSlipRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.RatingSlipRepositoryWithTx = (*PgxRatingSlipRepository)(nil)

func scanRatingSlip(row pgx.Row) (domain.RatingSlip, error) {
	var (
		s          domain.RatingSlip
		averageBet decimal.NullDecimal
	)
	err := row.Scan(
		&s.RatingSlipID,
		&s.CasinoID,
		&s.VisitID,
		&s.PlayerID,
		&s.TableID,
		&s.SeatNumber,
		&s.Status,
		&s.StartTime,
		&s.EndTime,
		&averageBet,
		&s.PausedSeconds,
		&s.DurationSecs,
		&s.MovedFromID,
		&s.CreatedAt,
		&s.CreatedBy,
		&s.LastUpdatedAt,
		&s.LastUpdatedBy,
	)
	if averageBet.Valid {
		s.AverageBet = &averageBet.Decimal
	}
	return s, err
}

func scanPause(row pgx.Row) (domain.RatingSlipPause, error) {
	var p domain.RatingSlipPause
	err := row.Scan(&p.PauseID, &p.RatingSlipID, &p.CasinoID, &p.StartedAt, &p.EndedAt, &p.CreatedBy)
	return p, err
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

// querySlips runs a slip query and attaches the pauses of every returned slip.
func querySlips(ctx context.Context, tx pgx.Tx, query string, args ...any) ([]domain.RatingSlip, error) {
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	slips, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.RatingSlip, error) {
		return scanRatingSlip(row)
	})
	if err != nil || len(slips) == 0 {
		return slips, err
	}

	ids := make([]string, len(slips))
	for i := range slips {
		ids[i] = slips[i].RatingSlipID
		slips[i].Pauses = []domain.RatingSlipPause{}
	}
	pauseRows, err := tx.Query(ctx,
		`SELECT `+pauseColumns+` FROM rating_slip_pauses WHERE rating_slip_id = ANY($1::uuid[]) ORDER BY started_at;`, ids)
	if err != nil {
		return nil, err
	}
	pauses, err := pgx.CollectRows(pauseRows, func(row pgx.CollectableRow) (domain.RatingSlipPause, error) {
		return scanPause(row)
	})
	if err != nil {
		return nil, err
	}
	bySlip := make(map[string]int, len(slips))
	for i := range slips {
		bySlip[slips[i].RatingSlipID] = i
	}
	for _, p := range pauses {
		i := bySlip[p.RatingSlipID]
		slips[i].Pauses = append(slips[i].Pauses, p)
	}
	return slips, nil
}

// FindRatingSlipByID retrieves a slip with its pauses.
func (r *PgxRatingSlipRepository) FindRatingSlipByID(ctx context.Context, casinoID, slipID string) (*domain.RatingSlip, error) {
	var slip *domain.RatingSlip
	err := r.withCasinoTx(ctx, casinoID, func(tx pgx.Tx) error {
		slips, err := querySlips(ctx, tx, `SELECT `+ratingSlipColumns+` FROM rating_slips WHERE rating_slip_id = $1;`, slipID)
		if err != nil {
			return err
		}
		if len(slips) == 0 {
			return pgx.ErrNoRows
		}
		slip = &slips[0]
		return nil
	})
	if err != nil {
		return nil, translateError(err, "failed to find rating slip")
	}
	return slip, nil
}

// ListRatingSlipsByVisit retrieves the slips of a visit ordered by start time.
func (r *PgxRatingSlipRepository) ListRatingSlipsByVisit(ctx context.Context, casinoID, visitID string) ([]domain.RatingSlip, error) {
	return r.listSlips(ctx, casinoID, "failed to list rating slips of visit", `
		SELECT `+ratingSlipColumns+`
		FROM rating_slips
		WHERE casino_id = $1 AND visit_id = $2
		ORDER BY start_time, rating_slip_id;`, casinoID, visitID)
}

// ListActiveRatingSlipsByTable retrieves the open and paused slips at a table ordered by seat.
func (r *PgxRatingSlipRepository) ListActiveRatingSlipsByTable(ctx context.Context, casinoID, tableID string) ([]domain.RatingSlip, error) {
	return r.listSlips(ctx, casinoID, "failed to list active rating slips of table", `
		SELECT `+ratingSlipColumns+`
		FROM rating_slips
		WHERE casino_id = $1 AND table_id = $2 AND status IN ('open', 'paused')
		ORDER BY seat_number, start_time;`, casinoID, tableID)
}

func (r *PgxRatingSlipRepository) listSlips(ctx context.Context, casinoID, msg, query string, args ...any) ([]domain.RatingSlip, error) {
	var slips []domain.RatingSlip
	err := r.withCasinoTx(ctx, casinoID, func(tx pgx.Tx) (err error) {
		slips, err = querySlips(ctx, tx, query, args...)
		return err
	})
	if err != nil {
		return nil, translateError(err, msg)
	}
	if slips == nil {
		slips = []domain.RatingSlip{}
	}
	return slips, nil
}

// WithFloorTx runs fn inside a transaction scoped to casinoID. Errors returned by fn are
// translated so callers see domain errors for constraint violations.
func (r *PgxRatingSlipRepository) WithFloorTx(ctx context.Context, casinoID string, fn func(ctx context.Context, tx portsrepo.FloorTx) error) error {
	err := r.withCasinoTx(ctx, casinoID, func(tx pgx.Tx) error {
		return fn(ctx, &pgxFloorTx{tx: tx})
	})
	return translateError(err, "floor transaction failed")
}

// pgxFloorTx implements portsrepo.FloorTx on an open transaction.
type pgxFloorTx struct {
	tx pgx.Tx
}

var _ portsrepo.FloorTx = (*pgxFloorTx)(nil)

func (f *pgxFloorTx) LockVisit(ctx context.Context, visitID string) (*domain.Visit, error) {
	visit, err := scanVisit(f.tx.QueryRow(ctx, `SELECT `+visitColumns+` FROM visits WHERE visit_id = $1 FOR UPDATE;`, visitID))
	if err != nil {
		return nil, translateError(err, "failed to lock visit")
	}
	return &visit, nil
}

func (f *pgxFloorTx) UpdateVisit(ctx context.Context, visit domain.Visit) error {
	_, err := f.tx.Exec(ctx, `
		UPDATE visits SET ended_at = $2, last_updated_at = $3, last_updated_by = $4
		WHERE visit_id = $1;`,
		visit.VisitID, visit.EndedAt, visit.LastUpdatedAt, visit.LastUpdatedBy)
	return translateError(err, "failed to update visit")
}

func (f *pgxFloorTx) LockTable(ctx context.Context, tableID string) (*domain.GamingTable, error) {
	table, err := scanTable(f.tx.QueryRow(ctx, `SELECT `+tableColumns+` FROM gaming_tables WHERE table_id = $1 FOR UPDATE;`, tableID))
	if err != nil {
		return nil, translateError(err, "failed to lock gaming table")
	}
	return &table, nil
}

func (f *pgxFloorTx) UpdateTable(ctx context.Context, table domain.GamingTable) error {
	_, err := f.tx.Exec(ctx, `
		UPDATE gaming_tables SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE table_id = $1;`,
		table.TableID, table.Status, table.LastUpdatedAt, table.LastUpdatedBy)
	return translateError(err, "failed to update gaming table")
}

func (f *pgxFloorTx) LockRatingSlip(ctx context.Context, slipID string) (*domain.RatingSlip, error) {
	slips, err := querySlips(ctx, f.tx, `SELECT `+ratingSlipColumns+` FROM rating_slips WHERE rating_slip_id = $1 FOR UPDATE;`, slipID)
	if err != nil {
		return nil, translateError(err, "failed to lock rating slip")
	}
	if len(slips) == 0 {
		return nil, translateError(pgx.ErrNoRows, "rating slip not found")
	}
	return &slips[0], nil
}

func (f *pgxFloorTx) count(ctx context.Context, msg, query string, args ...any) (int, error) {
	var n int
	if err := f.tx.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, translateError(err, msg)
	}
	return n, nil
}

func (f *pgxFloorTx) CountActiveSlipsForVisit(ctx context.Context, visitID string) (int, error) {
	return f.count(ctx, "failed to count active slips of visit",
		`SELECT count(*) FROM rating_slips WHERE visit_id = $1 AND status IN ('open', 'paused');`, visitID)
}

func (f *pgxFloorTx) CountActiveSlipsForTable(ctx context.Context, tableID string) (int, error) {
	return f.count(ctx, "failed to count active slips of table",
		`SELECT count(*) FROM rating_slips WHERE table_id = $1 AND status IN ('open', 'paused');`, tableID)
}

func (f *pgxFloorTx) HasActiveSlipForPlayerAtTable(ctx context.Context, playerID, tableID string) (bool, error) {
	n, err := f.count(ctx, "failed to check active slip",
		`SELECT count(*) FROM rating_slips WHERE player_id = $1 AND table_id = $2 AND status IN ('open', 'paused');`,
		playerID, tableID)
	return n > 0, err
}

func (f *pgxFloorTx) InsertRatingSlip(ctx context.Context, s domain.RatingSlip) error {
	query := `
		INSERT INTO rating_slips (` + ratingSlipColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err := f.tx.Exec(ctx, query,
		s.RatingSlipID,
		s.CasinoID,
		s.VisitID,
		s.PlayerID,
		s.TableID,
		s.SeatNumber,
		s.Status,
		s.StartTime,
		s.EndTime,
		nullDecimal(s.AverageBet),
		s.PausedSeconds,
		s.DurationSecs,
		s.MovedFromID,
		s.CreatedAt,
		s.CreatedBy,
		s.LastUpdatedAt,
		s.LastUpdatedBy,
	)
	return translateError(err, "failed to insert rating slip")
}

// UpdateRatingSlip writes the mutable columns. Seat, table, visit and player never change.
func (f *pgxFloorTx) UpdateRatingSlip(ctx context.Context, s domain.RatingSlip) error {
	query := `
		UPDATE rating_slips
		SET status = $2, end_time = $3, average_bet = $4, paused_seconds = $5, duration_seconds = $6,
			last_updated_at = $7, last_updated_by = $8
		WHERE rating_slip_id = $1;
	`
	_, err := f.tx.Exec(ctx, query,
		s.RatingSlipID,
		s.Status,
		s.EndTime,
		nullDecimal(s.AverageBet),
		s.PausedSeconds,
		s.DurationSecs,
		s.LastUpdatedAt,
		s.LastUpdatedBy,
	)
	return translateError(err, "failed to update rating slip")
}

func (f *pgxFloorTx) InsertPause(ctx context.Context, p domain.RatingSlipPause) error {
	_, err := f.tx.Exec(ctx, `
		INSERT INTO rating_slip_pauses (`+pauseColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6);`,
		p.PauseID, p.RatingSlipID, p.CasinoID, p.StartedAt, p.EndedAt, p.CreatedBy)
	return translateError(err, "failed to insert pause")
}

func (f *pgxFloorTx) EndPause(ctx context.Context, p domain.RatingSlipPause) error {
	_, err := f.tx.Exec(ctx, `UPDATE rating_slip_pauses SET ended_at = $2 WHERE pause_id = $1;`, p.PauseID, p.EndedAt)
	return translateError(err, "failed to end pause")
}
