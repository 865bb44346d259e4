package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction is whether money moves toward the casino (in) or toward the player (out).
type Direction string

const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)

// Valid reports whether d is a known direction.
func (d Direction) Valid() bool { return d == DirectionIn || d == DirectionOut }

// TenderType is the instrument used for a financial transaction.
type TenderType string

const (
	TenderCash   TenderType = "cash"
	TenderChips  TenderType = "chips"
	TenderMarker TenderType = "marker"
	TenderCheque TenderType = "cheque"
	TenderWire   TenderType = "wire"
)

// Valid reports whether t is a known tender type.
func (t TenderType) Valid() bool {
	switch t {
	case TenderCash, TenderChips, TenderMarker, TenderCheque, TenderWire:
		return true
	}
	return false
}

// FinancialTransaction is an append-only ledger row of a player's cash movement.
// Rows are never updated or deleted after creation.
type FinancialTransaction struct {
	TransactionID  string          `json:"transactionID"`
	CasinoID       string          `json:"casinoID"`
	PlayerID       string          `json:"playerID"`
	VisitID        *string         `json:"visitID,omitempty"`
	RatingSlipID   *string         `json:"ratingSlipID,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	Direction      Direction       `json:"direction"`
	Tender         TenderType      `json:"tender"`
	IdempotencyKey string          `json:"idempotencyKey"`
	Note           string          `json:"note,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	CreatedBy      string          `json:"createdBy"`
	CreatedByRole  StaffRole       `json:"createdByRole"`
}

// Validate checks amount, direction and tender.
func (t FinancialTransaction) Validate() error {
	if !t.Amount.IsPositive() {
		return ErrTxnInvalidAmount
	}
	if !t.Direction.Valid() {
		return ErrTxnInvalidDirection
	}
	if !t.Tender.Valid() {
		return ErrTxnInvalidTender
	}
	return nil
}

// SamePayload reports whether other describes the same movement, so a replayed idempotency
// key can be told apart from a key reused for a different request.
func (t FinancialTransaction) SamePayload(other FinancialTransaction) bool {
	return t.PlayerID == other.PlayerID &&
		equalOptional(t.VisitID, other.VisitID) &&
		equalOptional(t.RatingSlipID, other.RatingSlipID) &&
		t.Amount.Equal(other.Amount) &&
		t.Direction == other.Direction &&
		t.Tender == other.Tender
}

func equalOptional(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// recordingRules lists, per role, which direction and tender combinations it may record.
// Pit bosses record table buy-ins; cashiers record cage settlements paid out to players.
var recordingRules = map[StaffRole]map[Direction][]TenderType{
	RolePitBoss: {
		DirectionIn: {TenderCash, TenderChips},
	},
	RoleCashier: {
		DirectionOut: {TenderCash, TenderChips, TenderCheque, TenderWire},
	},
}

// CanRecord reports whether role may record a transaction with direction and tender.
func CanRecord(role StaffRole, direction Direction, tender TenderType) bool {
	if role == RoleAdmin {
		return direction.Valid() && tender.Valid()
	}
	for _, allowed := range recordingRules[role][direction] {
		if allowed == tender {
			return true
		}
	}
	return false
}

// FinancialSummary aggregates the ledger rows of a visit or player.
type FinancialSummary struct {
	TotalIn          decimal.Decimal `json:"totalIn"`
	TotalOut         decimal.Decimal `json:"totalOut"`
	Net              decimal.Decimal `json:"net"` // TotalIn - TotalOut
	TransactionCount int             `json:"transactionCount"`
}

// Summarize totals txns.
func Summarize(txns []FinancialTransaction) FinancialSummary {
	sum := FinancialSummary{TotalIn: decimal.Zero, TotalOut: decimal.Zero}
	for _, t := range txns {
		switch t.Direction {
		case DirectionIn:
			sum.TotalIn = sum.TotalIn.Add(t.Amount)
		case DirectionOut:
			sum.TotalOut = sum.TotalOut.Add(t.Amount)
		}
	}
	sum.Net = sum.TotalIn.Sub(sum.TotalOut)
	sum.TransactionCount = len(txns)
	return sum
}
