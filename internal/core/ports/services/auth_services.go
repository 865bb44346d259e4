package services

import (
	"context"

	"github.com/SscSPs/player_tracker/internal/core/domain"
	"github.com/SscSPs/player_tracker/internal/dto"
)

// AuthSvc signs staff in.
type AuthSvc interface {
	// Login checks credentials and issues a session token bound to the staff member's casino and role.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}

// StaffSvc manages staff accounts.
type StaffSvc interface {
	// CreateStaff adds a staff member to the actor's casino. Admin only.
	CreateStaff(ctx context.Context, actor domain.Actor, req dto.CreateStaffRequest) (*domain.Staff, error)

	// ListStaff lists the staff of the actor's casino. Admin only.
	ListStaff(ctx context.Context, actor domain.Actor) ([]domain.Staff, error)

	// EnsureBootstrapAdmin creates a casino and its first admin when no casino exists yet.
	EnsureBootstrapAdmin(ctx context.Context, req dto.BootstrapAdmin) error
}

// AuthSvcFacade combines authentication and staff management.
type AuthSvcFacade interface {
	AuthSvc
	StaffSvc
}
