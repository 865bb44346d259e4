package dto

import (
	"time"

	"github.com/SscSPs/player_tracker/internal/core/domain"
)

// LoginRequest defines the credentials for staff login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the session token and the signed-in staff member.
type LoginResponse struct {
	AccessToken string        `json:"accessToken"`
	TokenType   string        `json:"tokenType"`
	ExpiresAt   time.Time     `json:"expiresAt"`
	Staff       StaffResponse `json:"staff"`
}

// --- Staff DTOs ---

// CreateStaffRequest defines data for adding a staff member to the caller's casino.
type CreateStaffRequest struct {
	Email     string           `json:"email" binding:"required,email"`
	Password  string           `json:"password" binding:"required,min=8"`
	FirstName string           `json:"firstName" binding:"required"`
	LastName  string           `json:"lastName" binding:"required"`
	Role      domain.StaffRole `json:"role" binding:"required,staffrole"`
}

// StaffResponse defines data returned for a staff member.
type StaffResponse struct {
	StaffID   string           `json:"staffID"`
	CasinoID  string           `json:"casinoID"`
	Email     string           `json:"email"`
	FirstName string           `json:"firstName"`
	LastName  string           `json:"lastName"`
	Role      domain.StaffRole `json:"role"`
	IsActive  bool             `json:"isActive"`
	CreatedAt time.Time        `json:"createdAt"`
}

// ToStaffResponse converts domain.Staff to DTO.
func ToStaffResponse(s *domain.Staff) StaffResponse {
	return StaffResponse{
		StaffID:   s.StaffID,
		CasinoID:  s.CasinoID,
		Email:     s.Email,
		FirstName: s.FirstName,
		LastName:  s.LastName,
		Role:      s.Role,
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
	}
}

// ToListStaffResponse converts a slice of domain.Staff to DTOs.
func ToListStaffResponse(staff []domain.Staff) []StaffResponse {
	list := make([]StaffResponse, len(staff))
	for i := range staff {
		list[i] = ToStaffResponse(&staff[i])
	}
	return list
}

// BootstrapAdmin describes the casino and first admin created on an empty database.
type BootstrapAdmin struct {
	CasinoName string
	Timezone   string
	Email      string
	Password   string
}
