package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/player_tracker/internal/apperrors"
	"github.com/SscSPs/player_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/player_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/player_tracker/internal/core/ports/services"
	"github.com/SscSPs/player_tracker/internal/dto"
	"github.com/SscSPs/player_tracker/internal/utils/pagination"
	"github.com/google/uuid"
)

const birthDateLayout = "2006-01-02"

type playerService struct {
	BaseService
	playerRepo portsrepo.PlayerRepositoryFacade
}

// NewPlayerService creates the player enrolment and search service.
func NewPlayerService(playerRepo portsrepo.PlayerRepositoryFacade, opts ...Option) portssvc.PlayerSvcFacade {
	return &playerService{
		BaseService: newBaseService(opts...),
		playerRepo:  playerRepo,
	}
}

var _ portssvc.PlayerSvcFacade = (*playerService)(nil)

func parseBirthDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(birthDateLayout, *s)
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrValidation, "birthDate must be YYYY-MM-DD")
	}
	return &t, nil
}

// CreatePlayer enrols a player in the actor's casino.
func (s *playerService) CreatePlayer(ctx context.Context, actor domain.Actor, req dto.CreatePlayerRequest) (*domain.Player, error) {
	if err := s.Authorize(ctx, actor, domain.RolePitBoss, domain.RoleCashier); err != nil {
		return nil, err
	}
	birthDate, err := parseBirthDate(req.BirthDate)
	if err != nil {
		return nil, err
	}

	player := domain.Player{
		PlayerID:    uuid.NewString(),
		CasinoID:    actor.CasinoID,
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		BirthDate:   birthDate,
		LoyaltyTier: req.LoyaltyTier,
		Status:      domain.PlayerActive,
		AuditFields: domain.NewAuditFields(actor.StaffID, s.Now()),
	}
	if player.LoyaltyTier == "" {
		player.LoyaltyTier = "standard"
	}
	if err := s.playerRepo.SavePlayer(ctx, player); err != nil {
		s.LogError(ctx, err, "Failed to save player", slog.String("casino_id", actor.CasinoID))
		return nil, err
	}

	s.LogInfo(ctx, "Player enrolled", slog.String("player_id", player.PlayerID))
	return &player, nil
}

// GetPlayer retrieves a player of the actor's casino.
func (s *playerService) GetPlayer(ctx context.Context, actor domain.Actor, playerID string) (*domain.Player, error) {
	player, err := s.playerRepo.FindPlayerByID(ctx, actor.CasinoID, playerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, domain.ErrPlayerNotFound
		}
		s.LogError(ctx, err, "Failed to find player", slog.String("player_id", playerID))
		return nil, err
	}
	return player, nil
}

// UpdatePlayer applies the provided fields to a player.
func (s *playerService) UpdatePlayer(ctx context.Context, actor domain.Actor, playerID string, req dto.UpdatePlayerRequest) (*domain.Player, error) {
	if err := s.Authorize(ctx, actor, domain.RolePitBoss, domain.RoleCashier); err != nil {
		return nil, err
	}
	player, err := s.GetPlayer(ctx, actor, playerID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		player.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		player.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.BirthDate != nil {
		if player.BirthDate, err = parseBirthDate(req.BirthDate); err != nil {
			return nil, err
		}
	}
	if req.LoyaltyTier != nil {
		player.LoyaltyTier = *req.LoyaltyTier
	}
	if req.Status != nil {
		switch *req.Status {
		case domain.PlayerActive, domain.PlayerInactive, domain.PlayerBanned:
			player.Status = *req.Status
		default:
			return nil, apperrors.Wrapf(apperrors.ErrValidation, "unknown player status %q", *req.Status)
		}
	}
	player.Touch(actor.StaffID, s.Now())

	if err := s.playerRepo.UpdatePlayer(ctx, *player); err != nil {
		s.LogError(ctx, err, "Failed to update player", slog.String("player_id", playerID))
		return nil, err
	}
	return player, nil
}

// SearchPlayers returns one page of players ordered by name.
func (s *playerService) SearchPlayers(ctx context.Context, actor domain.Actor, params dto.SearchPlayersParams) (*dto.ListPlayersResponse, error) {
	limit := pagination.ClampLimit(params.Limit)
	search := portsrepo.PlayerSearch{
		CasinoID: actor.CasinoID,
		Query:    strings.TrimSpace(params.Query),
		Limit:    limit + 1,
	}
	if params.NextToken != "" {
		fields, err := pagination.DecodeMultiFieldToken(params.NextToken, 3)
		if err != nil {
			return nil, apperrors.Wrapf(apperrors.ErrValidation, "invalid nextToken")
		}
		search.After = &portsrepo.PlayerCursor{LastName: fields[0], FirstName: fields[1], PlayerID: fields[2]}
	}

	players, err := s.playerRepo.SearchPlayers(ctx, search)
	if err != nil {
		s.LogError(ctx, err, "Failed to search players", slog.String("casino_id", actor.CasinoID))
		return nil, err
	}

	resp := &dto.ListPlayersResponse{Players: players}
	if len(players) > limit {
		resp.Players = players[:limit]
		last := resp.Players[limit-1]
		resp.NextToken = pagination.EncodeMultiFieldToken(last.LastName, last.FirstName, last.PlayerID)
	}
	if resp.Players == nil {
		resp.Players = []domain.Player{}
	}
	return resp, nil
}
