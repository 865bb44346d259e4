package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/player_tracker/internal/apperrors"
	"github.com/SscSPs/player_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/player_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/player_tracker/internal/core/services"
	"github.com/SscSPs/player_tracker/internal/dto"
	"github.com/SscSPs/player_tracker/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPlayerService_CreatePlayer(t *testing.T) {
	casinoID := uuid.NewString()
	cashier := domain.Actor{StaffID: uuid.NewString(), CasinoID: casinoID, Role: domain.RoleCashier}
	repo := new(MockPlayerRepository)
	svc := services.NewPlayerService(repo)

	birth := "1980-05-17"
	repo.On("SavePlayer", mock.Anything, mock.MatchedBy(func(p domain.Player) bool {
		return p.CasinoID == casinoID && p.LastName == "Ng" && p.LoyaltyTier == "standard" && p.BirthDate != nil
	})).Return(nil).Once()

	player, err := svc.CreatePlayer(context.Background(), cashier, dto.CreatePlayerRequest{FirstName: " Ada ", LastName: "Ng", BirthDate: &birth})
	require.NoError(t, err)
	assert.Equal(t, "Ada", player.FirstName)
	assert.Equal(t, domain.PlayerActive, player.Status)

	badBirth := "17/05/1980"
	_, err = svc.CreatePlayer(context.Background(), cashier, dto.CreatePlayerRequest{FirstName: "A", LastName: "B", BirthDate: &badBirth})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	dealer := domain.Actor{StaffID: uuid.NewString(), CasinoID: casinoID, Role: domain.RoleDealer}
	_, err = svc.CreatePlayer(context.Background(), dealer, dto.CreatePlayerRequest{FirstName: "A", LastName: "B"})
	assert.ErrorIs(t, err, domain.ErrStaffRoleRequired)
}

func TestPlayerService_UpdatePlayer(t *testing.T) {
	casinoID := uuid.NewString()
	pitBoss := domain.Actor{StaffID: uuid.NewString(), CasinoID: casinoID, Role: domain.RolePitBoss}
	repo := new(MockPlayerRepository)
	svc := services.NewPlayerService(repo)

	existing := &domain.Player{PlayerID: uuid.NewString(), CasinoID: casinoID, FirstName: "Ada", LastName: "Ng", Status: domain.PlayerActive, LoyaltyTier: "standard"}
	repo.On("FindPlayerByID", mock.Anything, casinoID, existing.PlayerID).Return(existing, nil)
	repo.On("UpdatePlayer", mock.Anything, mock.MatchedBy(func(p domain.Player) bool {
		return p.Status == domain.PlayerBanned && p.FirstName == "Ada" && p.LastUpdatedBy == pitBoss.StaffID
	})).Return(nil).Once()

	banned := domain.PlayerBanned
	updated, err := svc.UpdatePlayer(context.Background(), pitBoss, existing.PlayerID, dto.UpdatePlayerRequest{Status: &banned})
	require.NoError(t, err)
	assert.Equal(t, domain.PlayerBanned, updated.Status)

	missing := uuid.NewString()
	repo.On("FindPlayerByID", mock.Anything, casinoID, missing).Return(nil, apperrors.ErrNotFound)
	_, err = svc.UpdatePlayer(context.Background(), pitBoss, missing, dto.UpdatePlayerRequest{})
	assert.ErrorIs(t, err, domain.ErrPlayerNotFound)
}

func TestPlayerService_SearchPlayers(t *testing.T) {
	casinoID := uuid.NewString()
	actor := domain.Actor{StaffID: uuid.NewString(), CasinoID: casinoID, Role: domain.RoleDealer}
	repo := new(MockPlayerRepository)
	svc := services.NewPlayerService(repo)

	page := []domain.Player{
		{PlayerID: "p1", FirstName: "Ada", LastName: "Ng"},
		{PlayerID: "p2", FirstName: "Bo", LastName: "Ng"},
		{PlayerID: "p3", FirstName: "Cy", LastName: "Ng"},
	}
	repo.On("SearchPlayers", mock.Anything, portsrepo.PlayerSearch{CasinoID: casinoID, Query: "ng", Limit: 3}).Return(page, nil).Once()

	resp, err := svc.SearchPlayers(context.Background(), actor, dto.SearchPlayersParams{Query: " ng ", Limit: 2})
	require.NoError(t, err)
	assert.Len(t, resp.Players, 2)
	fields, err := pagination.DecodeMultiFieldToken(resp.NextToken, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ng", "Bo", "p2"}, fields)

	repo.On("SearchPlayers", mock.Anything, portsrepo.PlayerSearch{
		CasinoID: casinoID, Query: "ng", Limit: 3,
		After: &portsrepo.PlayerCursor{LastName: "Ng", FirstName: "Bo", PlayerID: "p2"},
	}).Return(page[2:], nil).Once()
	next, err := svc.SearchPlayers(context.Background(), actor, dto.SearchPlayersParams{Query: "ng", Limit: 2, NextToken: resp.NextToken})
	require.NoError(t, err)
	assert.Len(t, next.Players, 1)
	assert.Empty(t, next.NextToken)

	_, err = svc.SearchPlayers(context.Background(), actor, dto.SearchPlayersParams{NextToken: pagination.EncodeMultiFieldToken("only-one")})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
