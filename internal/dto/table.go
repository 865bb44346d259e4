package dto

import (
	"github.com/SscSPs/player_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTableRequest defines data for adding a gaming table to the floor.
type CreateTableRequest struct {
	Label            string          `json:"label" binding:"required,max=50"`
	GameType         string          `json:"gameType" binding:"required,max=50"`
	Seats            int             `json:"seats" binding:"required,min=1,max=20"`
	HouseEdge        decimal.Decimal `json:"houseEdge"`
	DecisionsPerHour int             `json:"decisionsPerHour" binding:"min=0"`
}

// SetTableStatusRequest changes a table's operating state.
type SetTableStatusRequest struct {
	Status domain.TableStatus `json:"status" binding:"required,tablestatus"`
}

// ListTablesParams filters the table list.
type ListTablesParams struct {
	Status string `form:"status" binding:"omitempty,tablestatus"`
}
