package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/player_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/player_tracker/internal/core/ports/services"
	"github.com/SscSPs/player_tracker/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Casino ---

type mockCasinoService struct{ mock.Mock }

var _ portssvc.CasinoSvcFacade = (*mockCasinoService)(nil)

func (m *mockCasinoService) GetSettings(ctx context.Context, actor domain.Actor) (*domain.CasinoSettings, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CasinoSettings), args.Error(1)
}

func (m *mockCasinoService) UpdateSettings(ctx context.Context, actor domain.Actor, req dto.UpdateCasinoSettingsRequest) (*domain.CasinoSettings, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CasinoSettings), args.Error(1)
}

func (m *mockCasinoService) ResolveGamingDay(ctx context.Context, casinoID string, at time.Time) (domain.GamingDay, error) {
	args := m.Called(ctx, casinoID, at)
	return args.Get(0).(domain.GamingDay), args.Error(1)
}

func (m *mockCasinoService) GamingDayBounds(ctx context.Context, casinoID string, day domain.GamingDay) (time.Time, time.Time, error) {
	args := m.Called(ctx, casinoID, day)
	return args.Get(0).(time.Time), args.Get(1).(time.Time), args.Error(2)
}

// --- Player ---

type mockPlayerService struct{ mock.Mock }

var _ portssvc.PlayerSvcFacade = (*mockPlayerService)(nil)

func (m *mockPlayerService) GetPlayer(ctx context.Context, actor domain.Actor, playerID string) (*domain.Player, error) {
	args := m.Called(ctx, actor, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Player), args.Error(1)
}

func (m *mockPlayerService) SearchPlayers(ctx context.Context, actor domain.Actor, params dto.SearchPlayersParams) (*dto.ListPlayersResponse, error) {
	args := m.Called(ctx, actor, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListPlayersResponse), args.Error(1)
}

func (m *mockPlayerService) CreatePlayer(ctx context.Context, actor domain.Actor, req dto.CreatePlayerRequest) (*domain.Player, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Player), args.Error(1)
}

func (m *mockPlayerService) UpdatePlayer(ctx context.Context, actor domain.Actor, playerID string, req dto.UpdatePlayerRequest) (*domain.Player, error) {
	args := m.Called(ctx, actor, playerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Player), args.Error(1)
}

// --- Rating slips ---

type mockRatingSlipService struct{ mock.Mock }

var _ portssvc.RatingSlipSvcFacade = (*mockRatingSlipService)(nil)

func (m *mockRatingSlipService) slip(args mock.Arguments) (*domain.RatingSlip, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RatingSlip), args.Error(1)
}

func (m *mockRatingSlipService) GetSlip(ctx context.Context, actor domain.Actor, slipID string) (*domain.RatingSlip, error) {
	return m.slip(m.Called(ctx, actor, slipID))
}

func (m *mockRatingSlipService) ListSlipsForVisit(ctx context.Context, actor domain.Actor, visitID string) ([]domain.RatingSlip, error) {
	args := m.Called(ctx, actor, visitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RatingSlip), args.Error(1)
}

func (m *mockRatingSlipService) StartSlip(ctx context.Context, actor domain.Actor, req dto.StartRatingSlipRequest) (*domain.RatingSlip, error) {
	return m.slip(m.Called(ctx, actor, req))
}

func (m *mockRatingSlipService) PauseSlip(ctx context.Context, actor domain.Actor, slipID string) (*domain.RatingSlip, error) {
	return m.slip(m.Called(ctx, actor, slipID))
}

func (m *mockRatingSlipService) ResumeSlip(ctx context.Context, actor domain.Actor, slipID string) (*domain.RatingSlip, error) {
	return m.slip(m.Called(ctx, actor, slipID))
}

func (m *mockRatingSlipService) CloseSlip(ctx context.Context, actor domain.Actor, slipID string, req dto.CloseRatingSlipRequest) (*domain.RatingSlip, error) {
	return m.slip(m.Called(ctx, actor, slipID, req))
}

func (m *mockRatingSlipService) UpdateAverageBet(ctx context.Context, actor domain.Actor, slipID string, req dto.UpdateAverageBetRequest) (*domain.RatingSlip, error) {
	return m.slip(m.Called(ctx, actor, slipID, req))
}

func (m *mockRatingSlipService) MoveSlip(ctx context.Context, actor domain.Actor, slipID string, req dto.MoveRatingSlipRequest) (*dto.MoveRatingSlipResponse, error) {
	args := m.Called(ctx, actor, slipID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MoveRatingSlipResponse), args.Error(1)
}

func (m *mockRatingSlipService) AccrueLoyalty(ctx context.Context, actor domain.Actor, slipID string) (*domain.LoyaltyLedgerEntry, error) {
	args := m.Called(ctx, actor, slipID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoyaltyLedgerEntry), args.Error(1)
}

// --- Financial ---

type mockFinancialService struct{ mock.Mock }

var _ portssvc.FinancialSvcFacade = (*mockFinancialService)(nil)

func (m *mockFinancialService) RecordTransaction(ctx context.Context, actor domain.Actor, idempotencyKey string, req dto.RecordFinancialTransactionRequest) (*dto.RecordFinancialTransactionResponse, error) {
	args := m.Called(ctx, actor, idempotencyKey, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RecordFinancialTransactionResponse), args.Error(1)
}

func (m *mockFinancialService) GetTransaction(ctx context.Context, actor domain.Actor, transactionID string) (*domain.FinancialTransaction, error) {
	args := m.Called(ctx, actor, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialTransaction), args.Error(1)
}

func (m *mockFinancialService) ListTransactions(ctx context.Context, actor domain.Actor, params dto.ListFinancialTransactionsParams) (*dto.ListFinancialTransactionsResponse, error) {
	args := m.Called(ctx, actor, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListFinancialTransactionsResponse), args.Error(1)
}

func (m *mockFinancialService) VisitSummary(ctx context.Context, actor domain.Actor, visitID string) (*dto.VisitFinancialSummaryResponse, error) {
	args := m.Called(ctx, actor, visitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.VisitFinancialSummaryResponse), args.Error(1)
}
