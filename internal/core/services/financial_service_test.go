package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/player_tracker/internal/apperrors"
	"github.com/SscSPs/player_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/player_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/player_tracker/internal/core/ports/services"
	"github.com/SscSPs/player_tracker/internal/core/services"
	"github.com/SscSPs/player_tracker/internal/dto"
	"github.com/SscSPs/player_tracker/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type FinancialServiceTestSuite struct {
	suite.Suite
	finRepo    *MockFinancialRepository
	playerRepo *MockPlayerRepository
	visitRepo  *MockVisitRepository
	floor      *memFloor
	gamingDay  *MockGamingDaySvc
	events     *recordingPublisher
	service    portssvc.FinancialSvcFacade

	casinoID string
	player   *domain.Player
	visit    *domain.Visit
	pitBoss  domain.Actor
	cashier  domain.Actor
}

func (suite *FinancialServiceTestSuite) SetupTest() {
	suite.finRepo = new(MockFinancialRepository)
	suite.playerRepo = new(MockPlayerRepository)
	suite.visitRepo = new(MockVisitRepository)
	suite.floor = newMemFloor()
	suite.gamingDay = new(MockGamingDaySvc)
	suite.events = &recordingPublisher{}
	suite.service = services.NewFinancialService(suite.finRepo, suite.playerRepo, suite.visitRepo, suite.floor, suite.gamingDay,
		services.WithEventPublisher(suite.events))

	suite.casinoID = uuid.NewString()
	suite.player = &domain.Player{PlayerID: uuid.NewString(), CasinoID: suite.casinoID, Status: domain.PlayerActive}
	playerID := suite.player.PlayerID
	suite.visit = &domain.Visit{VisitID: uuid.NewString(), CasinoID: suite.casinoID, PlayerID: &playerID}
	suite.pitBoss = domain.Actor{StaffID: uuid.NewString(), CasinoID: suite.casinoID, Role: domain.RolePitBoss}
	suite.cashier = domain.Actor{StaffID: uuid.NewString(), CasinoID: suite.casinoID, Role: domain.RoleCashier}

	suite.playerRepo.On("FindPlayerByID", mock.Anything, suite.casinoID, suite.player.PlayerID).Return(suite.player, nil).Maybe()
	suite.visitRepo.On("FindVisitByID", mock.Anything, suite.casinoID, suite.visit.VisitID).Return(suite.visit, nil).Maybe()
}

func TestFinancialServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FinancialServiceTestSuite))
}

func (suite *FinancialServiceTestSuite) buyIn() dto.RecordFinancialTransactionRequest {
	return dto.RecordFinancialTransactionRequest{
		PlayerID:  suite.player.PlayerID,
		VisitID:   &suite.visit.VisitID,
		Amount:    decimal.NewFromInt(500),
		Direction: domain.DirectionIn,
		Tender:    domain.TenderCash,
	}
}

func (suite *FinancialServiceTestSuite) TestRecordTransaction_Created() {
	req := suite.buyIn()
	suite.finRepo.On("InsertTransaction", mock.Anything, mock.MatchedBy(func(txn domain.FinancialTransaction) bool {
		return txn.IdempotencyKey == "key-1" && txn.CreatedBy == suite.pitBoss.StaffID && txn.CreatedByRole == domain.RolePitBoss
	})).Return(&domain.FinancialTransaction{
		TransactionID: uuid.NewString(), CasinoID: suite.casinoID, PlayerID: req.PlayerID, VisitID: req.VisitID,
		Amount: req.Amount, Direction: req.Direction, Tender: req.Tender, IdempotencyKey: "key-1",
	}, true, nil).Once()

	resp, err := suite.service.RecordTransaction(context.Background(), suite.pitBoss, " key-1 ", req)
	suite.Require().NoError(err)
	suite.True(resp.Created)
	suite.True(resp.Transaction.Amount.Equal(decimal.NewFromInt(500)))
	suite.Equal([]domain.EventType{domain.EventFinancialRecorded}, suite.events.Types())
	suite.finRepo.AssertExpectations(suite.T())
}

func (suite *FinancialServiceTestSuite) TestRecordTransaction_ReplayReturnsOriginal() {
	req := suite.buyIn()
	original := &domain.FinancialTransaction{
		TransactionID: uuid.NewString(), CasinoID: suite.casinoID, PlayerID: req.PlayerID, VisitID: req.VisitID,
		Amount: req.Amount, Direction: req.Direction, Tender: req.Tender, IdempotencyKey: "key-1",
	}
	suite.finRepo.On("InsertTransaction", mock.Anything, mock.Anything).Return(original, false, nil).Once()

	resp, err := suite.service.RecordTransaction(context.Background(), suite.pitBoss, "key-1", req)
	suite.Require().NoError(err)
	suite.False(resp.Created)
	suite.Equal(original.TransactionID, resp.Transaction.TransactionID)
	suite.Empty(suite.events.Types())
}

func (suite *FinancialServiceTestSuite) TestRecordTransaction_KeyReusedForDifferentPayload() {
	req := suite.buyIn()
	original := &domain.FinancialTransaction{
		TransactionID: uuid.NewString(), PlayerID: req.PlayerID, VisitID: req.VisitID,
		Amount: decimal.NewFromInt(100), Direction: req.Direction, Tender: req.Tender,
	}
	suite.finRepo.On("InsertTransaction", mock.Anything, mock.Anything).Return(original, false, nil).Once()

	_, err := suite.service.RecordTransaction(context.Background(), suite.pitBoss, "key-1", req)
	suite.ErrorIs(err, domain.ErrIdempotencyKeyReused)
}

func (suite *FinancialServiceTestSuite) TestRecordTransaction_Validation() {
	ctx := context.Background()

	_, err := suite.service.RecordTransaction(ctx, suite.pitBoss, "", suite.buyIn())
	suite.ErrorIs(err, domain.ErrIdempotencyKeyNeeded)

	zero := suite.buyIn()
	zero.Amount = decimal.Zero
	_, err = suite.service.RecordTransaction(ctx, suite.pitBoss, "k", zero)
	suite.ErrorIs(err, domain.ErrTxnInvalidAmount)

	negative := suite.buyIn()
	negative.Amount = decimal.NewFromInt(-5)
	_, err = suite.service.RecordTransaction(ctx, suite.pitBoss, "k", negative)
	suite.ErrorIs(err, domain.ErrTxnInvalidAmount)

	suite.finRepo.AssertNotCalled(suite.T(), "InsertTransaction", mock.Anything, mock.Anything)
}

func (suite *FinancialServiceTestSuite) TestRecordTransaction_RoleRules() {
	ctx := context.Background()

	payout := suite.buyIn()
	payout.Direction = domain.DirectionOut
	_, err := suite.service.RecordTransaction(ctx, suite.pitBoss, "k1", payout)
	suite.ErrorIs(err, domain.ErrTxnRoleNotPermitted)
	suite.ErrorIs(err, apperrors.ErrForbidden)

	_, err = suite.service.RecordTransaction(ctx, suite.cashier, "k2", suite.buyIn())
	suite.ErrorIs(err, domain.ErrTxnRoleNotPermitted)

	dealer := domain.Actor{StaffID: uuid.NewString(), CasinoID: suite.casinoID, Role: domain.RoleDealer}
	_, err = suite.service.RecordTransaction(ctx, dealer, "k3", suite.buyIn())
	suite.ErrorIs(err, domain.ErrTxnRoleNotPermitted)

	suite.finRepo.On("InsertTransaction", mock.Anything, mock.Anything).Return(&domain.FinancialTransaction{TransactionID: "t"}, true, nil).Once()
	_, err = suite.service.RecordTransaction(ctx, suite.cashier, "k4", payout)
	suite.NoError(err)
}

func (suite *FinancialServiceTestSuite) TestRecordTransaction_References() {
	ctx := context.Background()

	unknown := suite.buyIn()
	unknown.PlayerID = uuid.NewString()
	suite.playerRepo.On("FindPlayerByID", mock.Anything, suite.casinoID, unknown.PlayerID).Return(nil, apperrors.ErrNotFound).Once()
	_, err := suite.service.RecordTransaction(ctx, suite.pitBoss, "k1", unknown)
	suite.ErrorIs(err, domain.ErrPlayerNotFound)

	otherPlayer := uuid.NewString()
	foreignVisit := &domain.Visit{VisitID: uuid.NewString(), CasinoID: suite.casinoID, PlayerID: &otherPlayer}
	suite.visitRepo.On("FindVisitByID", mock.Anything, suite.casinoID, foreignVisit.VisitID).Return(foreignVisit, nil).Once()
	mismatch := suite.buyIn()
	mismatch.VisitID = &foreignVisit.VisitID
	_, err = suite.service.RecordTransaction(ctx, suite.pitBoss, "k2", mismatch)
	suite.ErrorIs(err, domain.ErrVisitPlayerMismatch)

	slipID := uuid.NewString()
	suite.floor.slips[slipID] = domain.RatingSlip{RatingSlipID: slipID, CasinoID: suite.casinoID, VisitID: uuid.NewString(), PlayerID: &suite.player.PlayerID}
	wrongSlip := suite.buyIn()
	wrongSlip.RatingSlipID = &slipID
	_, err = suite.service.RecordTransaction(ctx, suite.pitBoss, "k3", wrongSlip)
	suite.ErrorIs(err, domain.ErrVisitPlayerMismatch)
}

func (suite *FinancialServiceTestSuite) TestListTransactions_GamingDayAndPaging() {
	day, err := domain.ParseGamingDay("2026-03-01")
	suite.Require().NoError(err)
	from := time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)
	suite.gamingDay.On("GamingDayBounds", mock.Anything, suite.casinoID, day).Return(from, to, nil).Once()

	rows := []domain.FinancialTransaction{
		{TransactionID: "c", CreatedAt: from.Add(3 * time.Hour)},
		{TransactionID: "b", CreatedAt: from.Add(2 * time.Hour)},
		{TransactionID: "a", CreatedAt: from.Add(time.Hour)},
	}
	suite.finRepo.On("ListTransactions", mock.Anything, mock.MatchedBy(func(f portsrepo.FinancialFilter) bool {
		return f.Limit == 3 && f.From != nil && f.From.Equal(from) && f.To.Equal(to) && f.Before == nil
	})).Return(rows, nil).Once()

	resp, err := suite.service.ListTransactions(context.Background(), suite.cashier, dto.ListFinancialTransactionsParams{GamingDay: "2026-03-01", Limit: 2})
	suite.Require().NoError(err)
	suite.Len(resp.Transactions, 2)
	suite.Require().NotEmpty(resp.NextToken)

	at, id, err := pagination.DecodeToken(resp.NextToken)
	suite.Require().NoError(err)
	suite.Equal("b", id)
	suite.True(at.Equal(rows[1].CreatedAt))

	suite.finRepo.On("ListTransactions", mock.Anything, mock.MatchedBy(func(f portsrepo.FinancialFilter) bool {
		return f.Before != nil && f.Before.ID == "b"
	})).Return(rows[2:], nil).Once()
	next, err := suite.service.ListTransactions(context.Background(), suite.cashier, dto.ListFinancialTransactionsParams{Limit: 2, NextToken: resp.NextToken})
	suite.Require().NoError(err)
	suite.Len(next.Transactions, 1)
	suite.Empty(next.NextToken)
}

func (suite *FinancialServiceTestSuite) TestListTransactions_BadToken() {
	_, err := suite.service.ListTransactions(context.Background(), suite.cashier, dto.ListFinancialTransactionsParams{NextToken: "%%%"})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *FinancialServiceTestSuite) TestVisitSummary() {
	txns := []domain.FinancialTransaction{
		{Amount: decimal.NewFromInt(1000), Direction: domain.DirectionIn},
		{Amount: decimal.NewFromInt(400), Direction: domain.DirectionOut},
	}
	suite.finRepo.On("ListTransactions", mock.Anything, portsrepo.FinancialFilter{CasinoID: suite.casinoID, VisitID: suite.visit.VisitID}).Return(txns, nil).Once()

	summary, err := suite.service.VisitSummary(context.Background(), suite.cashier, suite.visit.VisitID)
	suite.Require().NoError(err)
	suite.Equal(suite.visit.VisitID, summary.VisitID)
	suite.True(summary.Net.Equal(decimal.NewFromInt(600)))
	suite.Equal(2, summary.TransactionCount)
}

func (suite *FinancialServiceTestSuite) TestGetTransaction_NotFound() {
	id := uuid.NewString()
	suite.finRepo.On("FindTransactionByID", mock.Anything, suite.casinoID, id).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetTransaction(context.Background(), suite.cashier, id)
	suite.ErrorIs(err, domain.ErrTxnNotFound)
}
