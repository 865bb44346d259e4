package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/SscSPs/player_tracker/internal/apperrors"
	"github.com/SscSPs/player_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/player_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/player_tracker/internal/core/ports/services"
	"github.com/SscSPs/player_tracker/internal/dto"
	"github.com/SscSPs/player_tracker/internal/platform/config"
	"github.com/SscSPs/player_tracker/internal/utils"
	"github.com/google/uuid"
)

type authService struct {
	BaseService
	cfg        *config.Config
	staffRepo  portsrepo.StaffRepositoryFacade
	casinoRepo portsrepo.CasinoRepositoryFacade
}

// NewAuthService creates the login and staff management service.
func NewAuthService(cfg *config.Config, staffRepo portsrepo.StaffRepositoryFacade, casinoRepo portsrepo.CasinoRepositoryFacade, opts ...Option) portssvc.AuthSvcFacade {
	return &authService{
		BaseService: newBaseService(opts...),
		cfg:         cfg,
		staffRepo:   staffRepo,
		casinoRepo:  casinoRepo,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Login checks credentials and issues a session token.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	staff, err := s.staffRepo.FindStaffByEmailForLogin(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			utils.BurnPasswordCheck(req.Password)
			s.LogWarn(ctx, "Login for unknown email")
			return nil, domain.ErrInvalidCredentials
		}
		s.LogError(ctx, err, "Failed to look up staff for login")
		return nil, err
	}
	if !utils.CheckPasswordHash(req.Password, staff.PasswordHash) {
		s.LogWarn(ctx, "Login with wrong password", slog.String("staff_id", staff.StaffID))
		return nil, domain.ErrInvalidCredentials
	}
	if !staff.IsActive {
		return nil, domain.ErrStaffInactive
	}

	token, expiresAt, err := utils.GenerateJWT(*staff, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer, s.Now())
	if err != nil {
		s.LogError(ctx, err, "Failed to sign session token", slog.String("staff_id", staff.StaffID))
		return nil, apperrors.NewAppError(500, "failed to sign session token", err)
	}

	s.LogInfo(ctx, "Staff signed in",
		slog.String("staff_id", staff.StaffID),
		slog.String("casino_id", staff.CasinoID),
		slog.String("role", string(staff.Role)))
	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		Staff:       dto.ToStaffResponse(staff),
	}, nil
}

// CreateStaff adds a staff member to the actor's casino.
func (s *authService) CreateStaff(ctx context.Context, actor domain.Actor, req dto.CreateStaffRequest) (*domain.Staff, error) {
	if err := s.Authorize(ctx, actor, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if !req.Role.Valid() {
		return nil, domain.ErrInvalidStaffRole
	}
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	staff := domain.Staff{
		StaffID:      uuid.NewString(),
		CasinoID:     actor.CasinoID,
		Email:        normalizeEmail(req.Email),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         req.Role,
		PasswordHash: hash,
		IsActive:     true,
		AuditFields:  domain.NewAuditFields(actor.StaffID, s.Now()),
	}
	if err := s.staffRepo.SaveStaff(ctx, staff); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save staff", slog.String("casino_id", actor.CasinoID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Staff created",
		slog.String("staff_id", staff.StaffID),
		slog.String("role", string(staff.Role)))
	return &staff, nil
}

// ListStaff lists the staff of the actor's casino.
func (s *authService) ListStaff(ctx context.Context, actor domain.Actor) ([]domain.Staff, error) {
	if err := s.Authorize(ctx, actor, domain.RoleAdmin); err != nil {
		return nil, err
	}
	staff, err := s.staffRepo.ListStaff(ctx, actor.CasinoID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list staff", slog.String("casino_id", actor.CasinoID))
		return nil, err
	}
	if staff == nil {
		return []domain.Staff{}, nil
	}
	return staff, nil
}

// EnsureBootstrapAdmin creates the first casino and its admin on an empty database.
func (s *authService) EnsureBootstrapAdmin(ctx context.Context, req dto.BootstrapAdmin) error {
	count, err := s.casinoRepo.CountCasinos(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		s.LogDebug(ctx, "Casino already exists, skipping bootstrap")
		return nil
	}

	settings := domain.DefaultCasinoSettings("", req.Timezone)
	if _, err := settings.Location(); err != nil {
		return err
	}
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return err
	}

	now := s.Now()
	casinoID := uuid.NewString()
	adminID := uuid.NewString()
	casino := domain.Casino{
		CasinoID:    casinoID,
		Name:        req.CasinoName,
		IsActive:    true,
		AuditFields: domain.NewAuditFields(adminID, now),
	}
	settings.CasinoID = casinoID
	settings.LastUpdatedAt = now
	settings.LastUpdatedBy = adminID
	admin := domain.Staff{
		StaffID:      adminID,
		CasinoID:     casinoID,
		Email:        normalizeEmail(req.Email),
		FirstName:    "Casino",
		LastName:     "Admin",
		Role:         domain.RoleAdmin,
		PasswordHash: hash,
		IsActive:     true,
		AuditFields:  domain.NewAuditFields(adminID, now),
	}
	if err := s.casinoRepo.CreateCasinoWithAdmin(ctx, casino, settings, admin); err != nil {
		s.LogError(ctx, err, "Failed to bootstrap casino")
		return err
	}

	s.LogInfo(ctx, "Bootstrapped casino and admin",
		slog.String("casino_id", casinoID),
		slog.String("staff_id", adminID))
	return nil
}
