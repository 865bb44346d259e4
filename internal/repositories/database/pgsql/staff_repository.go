package pgsql

import (
	"context"
	"strings"

	"github.com/SscSPs/player_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/player_tracker/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const staffColumns = `staff_id, casino_id, email, first_name, last_name, role, password_hash, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxStaffRepository struct {
	BaseRepository
}

// newPgxStaffRepository creates a new repository for staff data.
func newPgxStaffRepository(pool *pgxpool.Pool) portsrepo.StaffRepositoryFacade {
	return &PgxStaffRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.StaffRepositoryFacade = (*PgxStaffRepository)(nil)

func scanStaff(row pgx.Row) (domain.Staff, error) {
	var s domain.Staff
	err := row.Scan(
		&s.StaffID,
		&s.CasinoID,
		&s.Email,
		&s.FirstName,
		&s.LastName,
		&s.Role,
		&s.PasswordHash,
		&s.IsActive,
		&s.CreatedAt,
		&s.CreatedBy,
		&s.LastUpdatedAt,
		&s.LastUpdatedBy,
	)
	return s, err
}

func insertStaff(ctx context.Context, tx pgx.Tx, s domain.Staff) error {
	query := `
		INSERT INTO staff (` + staffColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := tx.Exec(ctx, query,
		s.StaffID,
		s.CasinoID,
		strings.ToLower(s.Email),
		s.FirstName,
		s.LastName,
		s.Role,
		s.PasswordHash,
		s.IsActive,
		s.CreatedAt,
		s.CreatedBy,
		s.LastUpdatedAt,
		s.LastUpdatedBy,
	)
	return err
}

// SaveStaff persists a new staff member.
func (r *PgxStaffRepository) SaveStaff(ctx context.Context, staff domain.Staff) error {
	err := r.withCasinoTx(ctx, staff.CasinoID, func(tx pgx.Tx) error {
		return insertStaff(ctx, tx, staff)
	})
	return translateError(err, "failed to save staff")
}

// FindStaffByID retrieves a staff member of a casino.
func (r *PgxStaffRepository) FindStaffByID(ctx context.Context, casinoID, staffID string) (*domain.Staff, error) {
	query := `SELECT ` + staffColumns + ` FROM staff WHERE staff_id = $1;`
	var staff domain.Staff
	err := r.withCasinoTx(ctx, casinoID, func(tx pgx.Tx) (err error) {
		staff, err = scanStaff(tx.QueryRow(ctx, query, staffID))
		return err
	})
	if err != nil {
		return nil, translateError(err, "failed to find staff")
	}
	return &staff, nil
}

// FindStaffByEmailForLogin retrieves a staff member by email before any casino is in scope.
func (r *PgxStaffRepository) FindStaffByEmailForLogin(ctx context.Context, email string) (*domain.Staff, error) {
	query := `SELECT ` + staffColumns + ` FROM staff WHERE email = $1;`
	var staff domain.Staff
	err := r.withScopedTx(ctx, "app.scope", "login", func(tx pgx.Tx) (err error) {
		staff, err = scanStaff(tx.QueryRow(ctx, query, strings.ToLower(strings.TrimSpace(email))))
		return err
	})
	if err != nil {
		return nil, translateError(err, "failed to find staff by email")
	}
	return &staff, nil
}

// ListStaff retrieves all staff of a casino ordered by name.
func (r *PgxStaffRepository) ListStaff(ctx context.Context, casinoID string) ([]domain.Staff, error) {
	query := `SELECT ` + staffColumns + ` FROM staff WHERE casino_id = $1 ORDER BY last_name, first_name, staff_id;`
	var staff []domain.Staff
	err := r.withCasinoTx(ctx, casinoID, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, casinoID)
		if err != nil {
			return err
		}
		staff, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Staff, error) {
			return scanStaff(row)
		})
		return err
	})
	if err != nil {
		return nil, translateError(err, "failed to list staff")
	}
	if staff == nil {
		staff = []domain.Staff{}
	}
	return staff, nil
}
