package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/player_tracker/internal/apperrors"
	"github.com/SscSPs/player_tracker/internal/core/domain"
	"github.com/SscSPs/player_tracker/internal/core/services"
	"github.com/SscSPs/player_tracker/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCasinoService_UpdateSettings(t *testing.T) {
	casinoID := uuid.NewString()
	admin := domain.Actor{StaffID: uuid.NewString(), CasinoID: casinoID, Role: domain.RoleAdmin}
	current := domain.DefaultCasinoSettings(casinoID, "America/Los_Angeles")
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("applies provided fields", func(t *testing.T) {
		repo := new(MockCasinoRepository)
		svc := services.NewCasinoService(repo, services.WithClock(func() time.Time { return now }))
		repo.On("FindSettings", mock.Anything, casinoID).Return(&current, nil).Once()
		repo.On("UpdateSettings", mock.Anything, mock.MatchedBy(func(s domain.CasinoSettings) bool {
			return s.Timezone == "Europe/London" && s.GamingDayStart.String() == "04:30" && s.RequireAverageBetOnClose
		})).Return(nil).Once()

		tz, start, requireBet := "Europe/London", "04:30", true
		updated, err := svc.UpdateSettings(context.Background(), admin, dto.UpdateCasinoSettingsRequest{
			Timezone: &tz, GamingDayStart: &start, RequireAverageBetOnClose: &requireBet,
		})
		require.NoError(t, err)
		assert.Equal(t, admin.StaffID, updated.LastUpdatedBy)
		assert.Equal(t, now, updated.LastUpdatedAt)
		assert.True(t, updated.PointsPerTheo.Equal(current.PointsPerTheo))
		repo.AssertExpectations(t)
	})

	t.Run("validation", func(t *testing.T) {
		repo := new(MockCasinoRepository)
		svc := services.NewCasinoService(repo)
		repo.On("FindSettings", mock.Anything, casinoID).Return(&current, nil)

		badTZ := "Mars/Olympus"
		_, err := svc.UpdateSettings(context.Background(), admin, dto.UpdateCasinoSettingsRequest{Timezone: &badTZ})
		assert.ErrorIs(t, err, domain.ErrInvalidTimezone)

		badStart := "25:00"
		_, err = svc.UpdateSettings(context.Background(), admin, dto.UpdateCasinoSettingsRequest{GamingDayStart: &badStart})
		assert.ErrorIs(t, err, domain.ErrInvalidGamingStart)

		negative := decimal.NewFromInt(-1)
		_, err = svc.UpdateSettings(context.Background(), admin, dto.UpdateCasinoSettingsRequest{PointsPerTheo: &negative})
		assert.ErrorIs(t, err, apperrors.ErrValidation)

		repo.AssertNotCalled(t, "UpdateSettings", mock.Anything, mock.Anything)
	})

	t.Run("admin only", func(t *testing.T) {
		svc := services.NewCasinoService(new(MockCasinoRepository))
		pitBoss := domain.Actor{StaffID: uuid.NewString(), CasinoID: casinoID, Role: domain.RolePitBoss}

		_, err := svc.UpdateSettings(context.Background(), pitBoss, dto.UpdateCasinoSettingsRequest{})
		assert.ErrorIs(t, err, domain.ErrStaffRoleRequired)
	})
}

func TestCasinoService_ResolveGamingDay(t *testing.T) {
	casinoID := uuid.NewString()
	settings := domain.DefaultCasinoSettings(casinoID, "America/Los_Angeles")
	repo := new(MockCasinoRepository)
	repo.On("FindSettings", mock.Anything, casinoID).Return(&settings, nil)
	repo.On("FindSettings", mock.Anything, mock.Anything).Return(nil, apperrors.ErrNotFound)
	svc := services.NewCasinoService(repo)

	// 02:00 local on March 2nd is before the 06:00 boundary, so it belongs to March 1st.
	at := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	day, err := svc.ResolveGamingDay(context.Background(), casinoID, at)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-01", day.String())

	from, to, err := svc.GamingDayBounds(context.Background(), casinoID, day)
	require.NoError(t, err)
	assert.True(t, !at.Before(from) && at.Before(to))
	assert.Equal(t, 24*time.Hour, to.Sub(from))

	_, err = svc.ResolveGamingDay(context.Background(), uuid.NewString(), at)
	assert.ErrorIs(t, err, domain.ErrCasinoNotFound)
}
