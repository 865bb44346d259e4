package repositories

import (
	"context"

	"github.com/SscSPs/player_tracker/internal/core/domain"
)

// StaffReader defines read operations for staff.
type StaffReader interface {
	// FindStaffByID retrieves a staff member of a casino.
	FindStaffByID(ctx context.Context, casinoID, staffID string) (*domain.Staff, error)

	// FindStaffByEmailForLogin retrieves a staff member by email across casinos. It is the only
	// read that runs before a casino is known.
	FindStaffByEmailForLogin(ctx context.Context, email string) (*domain.Staff, error)

	// ListStaff retrieves all staff of a casino.
	ListStaff(ctx context.Context, casinoID string) ([]domain.Staff, error)
}

// StaffWriter defines write operations for staff.
type StaffWriter interface {
	// SaveStaff persists a new staff member.
	SaveStaff(ctx context.Context, staff domain.Staff) error
}

// StaffRepositoryFacade combines all staff-related repository interfaces
type StaffRepositoryFacade interface {
	StaffReader
	StaffWriter
}
