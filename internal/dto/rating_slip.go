package dto

import (
	"time"

	"github.com/SscSPs/player_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// StartRatingSlipRequest opens a rating slip for a visit at a table seat.
type StartRatingSlipRequest struct {
	VisitID    string           `json:"visitID" binding:"required,uuid"`
	TableID    string           `json:"tableID" binding:"required,uuid"`
	SeatNumber int              `json:"seatNumber" binding:"required,min=1"`
	AverageBet *decimal.Decimal `json:"averageBet"`
}

// CloseRatingSlipRequest closes a slip, optionally recording the final average bet.
type CloseRatingSlipRequest struct {
	AverageBet *decimal.Decimal `json:"averageBet"`
}

// UpdateAverageBetRequest sets the average bet of an active slip.
type UpdateAverageBetRequest struct {
	AverageBet decimal.Decimal `json:"averageBet"`
}

// MoveRatingSlipRequest moves a player to another seat. The current slip is closed and a new one
// is started at the target seat.
type MoveRatingSlipRequest struct {
	TableID    string           `json:"tableID" binding:"required,uuid"`
	SeatNumber int              `json:"seatNumber" binding:"required,min=1"`
	AverageBet *decimal.Decimal `json:"averageBet"`
}

// RatingSlipResponse is a rating slip with its live played time.
type RatingSlipResponse struct {
	domain.RatingSlip
	PlayedSeconds int64            `json:"playedSeconds"`
	GamingDay     domain.GamingDay `json:"gamingDay"`
	AsOf          time.Time        `json:"asOf"`
}

// ToRatingSlipResponse computes the played time of slip as of asOf.
func ToRatingSlipResponse(slip *domain.RatingSlip, gamingDay domain.GamingDay, asOf time.Time) RatingSlipResponse {
	return RatingSlipResponse{
		RatingSlip:    *slip,
		PlayedSeconds: int64(slip.DurationAt(asOf) / time.Second),
		GamingDay:     gamingDay,
		AsOf:          asOf,
	}
}

// MoveRatingSlipResponse returns both halves of a move.
type MoveRatingSlipResponse struct {
	Closed  domain.RatingSlip `json:"closed"`
	Started domain.RatingSlip `json:"started"`
}
