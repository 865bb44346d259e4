package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/player_tracker/internal/apperrors"
	"github.com/SscSPs/player_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/player_tracker/internal/core/ports/services"
	"github.com/SscSPs/player_tracker/internal/core/services"
	"github.com/SscSPs/player_tracker/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type loyaltyFixture struct {
	loyaltyRepo *MockLoyaltyRepository
	playerRepo  *MockPlayerRepository
	tableRepo   *MockTableRepository
	casinoRepo  *MockCasinoRepository
	events      *recordingPublisher
	casinoID    string
	player      *domain.Player
	table       *domain.GamingTable
	admin       domain.Actor
}

func newLoyaltyFixture() *loyaltyFixture {
	f := &loyaltyFixture{
		loyaltyRepo: new(MockLoyaltyRepository),
		playerRepo:  new(MockPlayerRepository),
		tableRepo:   new(MockTableRepository),
		casinoRepo:  new(MockCasinoRepository),
		events:      &recordingPublisher{},
		casinoID:    uuid.NewString(),
	}
	f.player = &domain.Player{PlayerID: uuid.NewString(), CasinoID: f.casinoID, Status: domain.PlayerActive}
	f.table = &domain.GamingTable{
		TableID: uuid.NewString(), CasinoID: f.casinoID, Seats: 7,
		HouseEdge: decimal.RequireFromString("0.02"), DecisionsPerHour: 60, Status: domain.TableActive,
	}
	f.admin = domain.Actor{StaffID: uuid.NewString(), CasinoID: f.casinoID, Role: domain.RoleAdmin}
	return f
}

func (f *loyaltyFixture) service() portssvc.LoyaltySvcFacade {
	return services.NewLoyaltyService(f.loyaltyRepo, f.playerRepo, f.tableRepo, f.casinoRepo, services.WithEventPublisher(f.events))
}

func (f *loyaltyFixture) closedSlip(bet *decimal.Decimal, played time.Duration) domain.RatingSlip {
	start := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
	end := start.Add(played)
	secs := int64(played / time.Second)
	return domain.RatingSlip{
		RatingSlipID: uuid.NewString(), CasinoID: f.casinoID, PlayerID: &f.player.PlayerID, TableID: f.table.TableID,
		Status: domain.SlipClosed, StartTime: start, EndTime: &end, DurationSecs: &secs, AverageBet: bet,
	}
}

func TestLoyaltyService_AccrueForRatingSlip(t *testing.T) {
	t.Run("accrues theo based points", func(t *testing.T) {
		f := newLoyaltyFixture()
		settings := domain.DefaultCasinoSettings(f.casinoID, "UTC")
		settings.PointsPerTheo = decimal.NewFromInt(2)
		f.tableRepo.On("FindTableByID", mock.Anything, f.casinoID, f.table.TableID).Return(f.table, nil).Once()
		f.casinoRepo.On("FindSettings", mock.Anything, f.casinoID).Return(&settings, nil).Once()

		bet := decimal.NewFromInt(100)
		slip := f.closedSlip(&bet, 2*time.Hour)
		// 100 x 60 x 2h x 0.02 = 240 theo, 480 points.
		f.loyaltyRepo.On("AppendEntry", mock.Anything, mock.MatchedBy(func(e domain.LoyaltyLedgerEntry) bool {
			return e.Kind == domain.LoyaltyAccrual && e.Points.Equal(decimal.NewFromInt(480)) &&
				e.Theo.Equal(decimal.NewFromInt(240)) && *e.RatingSlipID == slip.RatingSlipID
		})).Return(&domain.LoyaltyLedgerEntry{EntryID: "e1", Points: decimal.NewFromInt(480)}, true, nil).Once()

		entry, err := f.service().AccrueForRatingSlip(context.Background(), f.admin, slip)
		require.NoError(t, err)
		assert.Equal(t, "e1", entry.EntryID)
		assert.Equal(t, []domain.EventType{domain.EventLoyaltyAccrued}, f.events.Types())
		f.loyaltyRepo.AssertExpectations(t)
	})

	t.Run("replayed accrual is not published twice", func(t *testing.T) {
		f := newLoyaltyFixture()
		settings := domain.DefaultCasinoSettings(f.casinoID, "UTC")
		f.tableRepo.On("FindTableByID", mock.Anything, f.casinoID, f.table.TableID).Return(f.table, nil).Once()
		f.casinoRepo.On("FindSettings", mock.Anything, f.casinoID).Return(&settings, nil).Once()
		f.loyaltyRepo.On("AppendEntry", mock.Anything, mock.Anything).Return(&domain.LoyaltyLedgerEntry{EntryID: "e1"}, false, nil).Once()

		bet := decimal.NewFromInt(100)
		_, err := f.service().AccrueForRatingSlip(context.Background(), f.admin, f.closedSlip(&bet, time.Hour))
		require.NoError(t, err)
		assert.Empty(t, f.events.Types())
	})

	t.Run("ghost slip earns nothing", func(t *testing.T) {
		f := newLoyaltyFixture()
		bet := decimal.NewFromInt(100)
		slip := f.closedSlip(&bet, time.Hour)
		slip.PlayerID = nil

		entry, err := f.service().AccrueForRatingSlip(context.Background(), f.admin, slip)
		require.NoError(t, err)
		assert.Nil(t, entry)
		f.loyaltyRepo.AssertNotCalled(t, "AppendEntry", mock.Anything, mock.Anything)
	})

	t.Run("slip without average bet earns nothing", func(t *testing.T) {
		f := newLoyaltyFixture()
		settings := domain.DefaultCasinoSettings(f.casinoID, "UTC")
		f.tableRepo.On("FindTableByID", mock.Anything, f.casinoID, f.table.TableID).Return(f.table, nil).Once()
		f.casinoRepo.On("FindSettings", mock.Anything, f.casinoID).Return(&settings, nil).Once()

		entry, err := f.service().AccrueForRatingSlip(context.Background(), f.admin, f.closedSlip(nil, time.Hour))
		require.NoError(t, err)
		assert.Nil(t, entry)
		f.loyaltyRepo.AssertNotCalled(t, "AppendEntry", mock.Anything, mock.Anything)
	})
}

func TestLoyaltyService_AdjustPoints(t *testing.T) {
	t.Run("credit", func(t *testing.T) {
		f := newLoyaltyFixture()
		f.playerRepo.On("FindPlayerByID", mock.Anything, f.casinoID, f.player.PlayerID).Return(f.player, nil).Once()
		f.loyaltyRepo.On("AppendEntry", mock.Anything, mock.MatchedBy(func(e domain.LoyaltyLedgerEntry) bool {
			return e.Kind == domain.LoyaltyAdjustment && *e.IdempotencyKey == "adj-1"
		})).Return(&domain.LoyaltyLedgerEntry{EntryID: "e1", PlayerID: f.player.PlayerID, Points: decimal.NewFromInt(50)}, true, nil).Once()

		resp, err := f.service().AdjustPoints(context.Background(), f.admin, f.player.PlayerID, "adj-1", dto.AdjustPointsRequest{Points: decimal.NewFromInt(50), Reason: "service recovery"})
		require.NoError(t, err)
		assert.True(t, resp.Created)
		assert.Equal(t, []domain.EventType{domain.EventLoyaltyAdjusted}, f.events.Types())
	})

	t.Run("debit is a redemption", func(t *testing.T) {
		f := newLoyaltyFixture()
		f.playerRepo.On("FindPlayerByID", mock.Anything, f.casinoID, f.player.PlayerID).Return(f.player, nil).Once()
		f.loyaltyRepo.On("AppendEntry", mock.Anything, mock.MatchedBy(func(e domain.LoyaltyLedgerEntry) bool {
			return e.Kind == domain.LoyaltyRedemption
		})).Return(nil, false, domain.ErrLoyaltyInsufficient).Once()

		_, err := f.service().AdjustPoints(context.Background(), f.admin, f.player.PlayerID, "adj-2", dto.AdjustPointsRequest{Points: decimal.NewFromInt(-500), Reason: "comp"})
		assert.ErrorIs(t, err, domain.ErrLoyaltyInsufficient)
	})

	t.Run("replay with a different amount", func(t *testing.T) {
		f := newLoyaltyFixture()
		f.playerRepo.On("FindPlayerByID", mock.Anything, f.casinoID, f.player.PlayerID).Return(f.player, nil).Once()
		f.loyaltyRepo.On("AppendEntry", mock.Anything, mock.Anything).
			Return(&domain.LoyaltyLedgerEntry{EntryID: "e1", PlayerID: f.player.PlayerID, Points: decimal.NewFromInt(10)}, false, nil).Once()

		_, err := f.service().AdjustPoints(context.Background(), f.admin, f.player.PlayerID, "adj-1", dto.AdjustPointsRequest{Points: decimal.NewFromInt(50), Reason: "x"})
		assert.ErrorIs(t, err, domain.ErrIdempotencyKeyReused)
	})

	t.Run("rejections", func(t *testing.T) {
		f := newLoyaltyFixture()
		svc := f.service()
		ctx := context.Background()

		pitBoss := domain.Actor{StaffID: uuid.NewString(), CasinoID: f.casinoID, Role: domain.RolePitBoss}
		_, err := svc.AdjustPoints(ctx, pitBoss, f.player.PlayerID, "k", dto.AdjustPointsRequest{Points: decimal.NewFromInt(1)})
		assert.ErrorIs(t, err, domain.ErrStaffRoleRequired)

		_, err = svc.AdjustPoints(ctx, f.admin, f.player.PlayerID, "", dto.AdjustPointsRequest{Points: decimal.NewFromInt(1)})
		assert.ErrorIs(t, err, domain.ErrIdempotencyKeyNeeded)

		_, err = svc.AdjustPoints(ctx, f.admin, f.player.PlayerID, "k", dto.AdjustPointsRequest{Points: decimal.Zero})
		assert.ErrorIs(t, err, domain.ErrLoyaltyZeroPoints)

		missing := uuid.NewString()
		f.playerRepo.On("FindPlayerByID", mock.Anything, f.casinoID, missing).Return(nil, apperrors.ErrNotFound).Once()
		_, err = svc.AdjustPoints(ctx, f.admin, missing, "k", dto.AdjustPointsRequest{Points: decimal.NewFromInt(1)})
		assert.ErrorIs(t, err, domain.ErrPlayerNotFound)
	})
}

func TestLoyaltyService_GetLoyalty(t *testing.T) {
	f := newLoyaltyFixture()
	f.playerRepo.On("FindPlayerByID", mock.Anything, f.casinoID, f.player.PlayerID).Return(f.player, nil).Once()
	f.loyaltyRepo.On("GetBalance", mock.Anything, f.casinoID, f.player.PlayerID).Return(decimal.NewFromInt(1234), nil).Once()
	f.loyaltyRepo.On("ListEntries", mock.Anything, f.casinoID, f.player.PlayerID, 50).Return(nil, nil).Once()

	resp, err := f.service().GetLoyalty(context.Background(), f.admin, f.player.PlayerID, 0)
	require.NoError(t, err)
	assert.True(t, resp.Points.Equal(decimal.NewFromInt(1234)))
	assert.Equal(t, f.player.PlayerID, resp.PlayerID)
	assert.NotNil(t, resp.Entries)
}
