package dto

import "github.com/SscSPs/player_tracker/internal/core/domain"

// CreatePlayerRequest defines data for enrolling a player.
type CreatePlayerRequest struct {
	FirstName   string  `json:"firstName" binding:"required,max=100"`
	LastName    string  `json:"lastName" binding:"required,max=100"`
	BirthDate   *string `json:"birthDate" binding:"omitempty,datetime=2006-01-02"`
	LoyaltyTier string  `json:"loyaltyTier" binding:"omitempty,max=50"`
}

// UpdatePlayerRequest defines the player fields that can change. Omitted fields are kept.
type UpdatePlayerRequest struct {
	FirstName   *string              `json:"firstName" binding:"omitempty,min=1,max=100"`
	LastName    *string              `json:"lastName" binding:"omitempty,min=1,max=100"`
	BirthDate   *string              `json:"birthDate" binding:"omitempty,datetime=2006-01-02"`
	LoyaltyTier *string              `json:"loyaltyTier" binding:"omitempty,max=50"`
	Status      *domain.PlayerStatus `json:"status" binding:"omitempty,oneof=active inactive banned"`
}

// SearchPlayersParams are the query parameters of a player search.
type SearchPlayersParams struct {
	Query     string `form:"q"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=200"`
	NextToken string `form:"nextToken"`
}

// ListPlayersResponse is one page of players.
type ListPlayersResponse struct {
	Players   []domain.Player `json:"players"`
	NextToken string          `json:"nextToken,omitempty"`
}
