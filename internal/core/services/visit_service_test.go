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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestVisitService_StartVisit(t *testing.T) {
	casinoID := uuid.NewString()
	cashier := domain.Actor{StaffID: uuid.NewString(), CasinoID: casinoID, Role: domain.RoleCashier}
	activePlayer := &domain.Player{PlayerID: uuid.NewString(), CasinoID: casinoID, Status: domain.PlayerActive}
	bannedPlayer := &domain.Player{PlayerID: uuid.NewString(), CasinoID: casinoID, Status: domain.PlayerBanned}
	clock := newFakeClock(time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC))

	t.Run("rated visit", func(t *testing.T) {
		visitRepo := new(MockVisitRepository)
		playerRepo := new(MockPlayerRepository)
		events := &recordingPublisher{}
		svc := services.NewVisitService(visitRepo, playerRepo, newMemFloor(), services.WithClock(clock.Now), services.WithEventPublisher(events))

		playerRepo.On("FindPlayerByID", mock.Anything, casinoID, activePlayer.PlayerID).Return(activePlayer, nil).Once()
		visitRepo.On("SaveVisit", mock.Anything, mock.MatchedBy(func(v domain.Visit) bool {
			return v.PlayerID != nil && *v.PlayerID == activePlayer.PlayerID && v.CasinoID == casinoID && v.EndedAt == nil
		})).Return(nil).Once()

		visit, err := svc.StartVisit(context.Background(), cashier, dto.StartVisitRequest{PlayerID: &activePlayer.PlayerID})
		require.NoError(t, err)
		assert.False(t, visit.IsGhost())
		assert.Equal(t, clock.Now(), visit.StartedAt)
		assert.Equal(t, []domain.EventType{domain.EventVisitStarted}, events.Types())
		visitRepo.AssertExpectations(t)
	})

	t.Run("ghost visit", func(t *testing.T) {
		visitRepo := new(MockVisitRepository)
		svc := services.NewVisitService(visitRepo, new(MockPlayerRepository), newMemFloor())
		visitRepo.On("SaveVisit", mock.Anything, mock.MatchedBy(func(v domain.Visit) bool { return v.PlayerID == nil })).Return(nil).Once()

		visit, err := svc.StartVisit(context.Background(), cashier, dto.StartVisitRequest{})
		require.NoError(t, err)
		assert.True(t, visit.IsGhost())
	})

	t.Run("second active visit", func(t *testing.T) {
		visitRepo := new(MockVisitRepository)
		playerRepo := new(MockPlayerRepository)
		svc := services.NewVisitService(visitRepo, playerRepo, newMemFloor())
		playerRepo.On("FindPlayerByID", mock.Anything, casinoID, activePlayer.PlayerID).Return(activePlayer, nil).Once()
		visitRepo.On("SaveVisit", mock.Anything, mock.Anything).Return(domain.ErrVisitAlreadyActive).Once()

		_, err := svc.StartVisit(context.Background(), cashier, dto.StartVisitRequest{PlayerID: &activePlayer.PlayerID})
		assert.ErrorIs(t, err, domain.ErrVisitAlreadyActive)
	})

	t.Run("banned player", func(t *testing.T) {
		playerRepo := new(MockPlayerRepository)
		svc := services.NewVisitService(new(MockVisitRepository), playerRepo, newMemFloor())
		playerRepo.On("FindPlayerByID", mock.Anything, casinoID, bannedPlayer.PlayerID).Return(bannedPlayer, nil).Once()

		_, err := svc.StartVisit(context.Background(), cashier, dto.StartVisitRequest{PlayerID: &bannedPlayer.PlayerID})
		assert.ErrorIs(t, err, domain.ErrPlayerInactive)
	})

	t.Run("unknown player", func(t *testing.T) {
		playerRepo := new(MockPlayerRepository)
		svc := services.NewVisitService(new(MockVisitRepository), playerRepo, newMemFloor())
		missing := uuid.NewString()
		playerRepo.On("FindPlayerByID", mock.Anything, casinoID, missing).Return(nil, apperrors.ErrNotFound).Once()

		_, err := svc.StartVisit(context.Background(), cashier, dto.StartVisitRequest{PlayerID: &missing})
		assert.ErrorIs(t, err, domain.ErrPlayerNotFound)
	})

	t.Run("dealer cannot start visits", func(t *testing.T) {
		svc := services.NewVisitService(new(MockVisitRepository), new(MockPlayerRepository), newMemFloor())
		dealer := domain.Actor{StaffID: uuid.NewString(), CasinoID: casinoID, Role: domain.RoleDealer}

		_, err := svc.StartVisit(context.Background(), dealer, dto.StartVisitRequest{})
		assert.ErrorIs(t, err, domain.ErrStaffRoleRequired)
	})
}

func TestVisitService_EndVisit(t *testing.T) {
	casinoID := uuid.NewString()
	pitBoss := domain.Actor{StaffID: uuid.NewString(), CasinoID: casinoID, Role: domain.RolePitBoss}
	start := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	clock := newFakeClock(start)

	newFloor := func(withActiveSlip bool) (*memFloor, domain.Visit) {
		floor := newMemFloor()
		visit := domain.Visit{VisitID: uuid.NewString(), CasinoID: casinoID, StartedAt: start}
		floor.visits[visit.VisitID] = visit
		if withActiveSlip {
			slipID := uuid.NewString()
			floor.slips[slipID] = domain.RatingSlip{RatingSlipID: slipID, CasinoID: casinoID, VisitID: visit.VisitID, Status: domain.SlipPaused, StartTime: start}
		}
		return floor, visit
	}

	t.Run("ends visit without active slips", func(t *testing.T) {
		floor, visit := newFloor(false)
		svc := services.NewVisitService(new(MockVisitRepository), new(MockPlayerRepository), floor, services.WithClock(clock.Now))

		ended, err := svc.EndVisit(context.Background(), pitBoss, visit.VisitID)
		require.NoError(t, err)
		require.NotNil(t, ended.EndedAt)
		assert.False(t, floor.visits[visit.VisitID].IsActive())

		_, err = svc.EndVisit(context.Background(), pitBoss, visit.VisitID)
		assert.ErrorIs(t, err, domain.ErrVisitEnded)
	})

	t.Run("rejects while a slip is paused", func(t *testing.T) {
		floor, visit := newFloor(true)
		svc := services.NewVisitService(new(MockVisitRepository), new(MockPlayerRepository), floor, services.WithClock(clock.Now))

		_, err := svc.EndVisit(context.Background(), pitBoss, visit.VisitID)
		assert.ErrorIs(t, err, domain.ErrVisitHasActiveSlips)
		assert.True(t, floor.visits[visit.VisitID].IsActive())
	})

	t.Run("unknown visit", func(t *testing.T) {
		floor, _ := newFloor(false)
		svc := services.NewVisitService(new(MockVisitRepository), new(MockPlayerRepository), floor)

		_, err := svc.EndVisit(context.Background(), pitBoss, uuid.NewString())
		assert.ErrorIs(t, err, domain.ErrVisitNotFound)
	})
}

func TestVisitService_GetVisit(t *testing.T) {
	casinoID := uuid.NewString()
	actor := domain.Actor{StaffID: uuid.NewString(), CasinoID: casinoID, Role: domain.RoleDealer}
	visitRepo := new(MockVisitRepository)
	svc := services.NewVisitService(visitRepo, new(MockPlayerRepository), newMemFloor())

	visit := &domain.Visit{VisitID: uuid.NewString(), CasinoID: casinoID}
	visitRepo.On("FindVisitByID", mock.Anything, casinoID, visit.VisitID).Return(visit, nil).Once()
	visitRepo.On("FindVisitByID", mock.Anything, casinoID, mock.Anything).Return(nil, apperrors.ErrNotFound).Once()

	got, err := svc.GetVisit(context.Background(), actor, visit.VisitID)
	require.NoError(t, err)
	assert.Equal(t, visit.VisitID, got.VisitID)

	_, err = svc.GetVisit(context.Background(), actor, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrVisitNotFound)
}
