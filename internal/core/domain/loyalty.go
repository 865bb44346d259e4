package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoyaltyEntryKind classifies a loyalty ledger row.
type LoyaltyEntryKind string

const (
	LoyaltyAccrual    LoyaltyEntryKind = "accrual"
	LoyaltyAdjustment LoyaltyEntryKind = "adjustment"
	LoyaltyRedemption LoyaltyEntryKind = "redemption"
)

// LoyaltyLedgerEntry is an append-only change to a player's points balance.
type LoyaltyLedgerEntry struct {
	EntryID        string           `json:"entryID"`
	CasinoID       string           `json:"casinoID"`
	PlayerID       string           `json:"playerID"`
	RatingSlipID   *string          `json:"ratingSlipID,omitempty"` // Set for accruals; one accrual per slip
	Kind           LoyaltyEntryKind `json:"kind"`
	Points         decimal.Decimal  `json:"points"` // Negative for redemptions and debits
	Theo           decimal.Decimal  `json:"theo"`
	IdempotencyKey *string          `json:"idempotencyKey,omitempty"`
	Reason         string           `json:"reason,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
	CreatedBy      string           `json:"createdBy"`
}

// LoyaltyBalance is a player's current points.
type LoyaltyBalance struct {
	PlayerID string          `json:"playerID"`
	Points   decimal.Decimal `json:"points"`
}

// Theo is the theoretical win of a session: average bet x decisions per hour x hours x house edge.
func Theo(averageBet decimal.Decimal, decisionsPerHour int, played time.Duration, houseEdge decimal.Decimal) decimal.Decimal {
	if played <= 0 || decisionsPerHour <= 0 || !averageBet.IsPositive() || !houseEdge.IsPositive() {
		return decimal.Zero
	}
	hours := decimal.NewFromInt(int64(played / time.Second)).Div(decimal.NewFromInt(3600))
	return averageBet.
		Mul(decimal.NewFromInt(int64(decisionsPerHour))).
		Mul(hours).
		Mul(houseEdge).
		Round(2)
}

// PointsForTheo converts theo into whole points, rounding down.
func PointsForTheo(theo, pointsPerTheo decimal.Decimal) decimal.Decimal {
	if !theo.IsPositive() || !pointsPerTheo.IsPositive() {
		return decimal.Zero
	}
	return theo.Mul(pointsPerTheo).Floor()
}

// AccrualForSlip computes the loyalty accrual of a closed, rated slip. It returns false when
// the slip earns nothing: ghost play, no average bet, or zero points.
func AccrualForSlip(slip RatingSlip, table GamingTable, settings CasinoSettings) (theo, points decimal.Decimal, ok bool) {
	if slip.Status != SlipClosed || slip.PlayerID == nil || slip.AverageBet == nil || slip.DurationSecs == nil {
		return decimal.Zero, decimal.Zero, false
	}
	played := time.Duration(*slip.DurationSecs) * time.Second
	theo = Theo(*slip.AverageBet, table.DecisionsPerHour, played, table.HouseEdge)
	points = PointsForTheo(theo, settings.PointsPerTheo)
	if !points.IsPositive() {
		return theo, decimal.Zero, false
	}
	return theo, points, true
}
