package domain

import "github.com/shopspring/decimal"

// TableStatus is the operating state of a gaming table.
type TableStatus string

const (
	TableActive   TableStatus = "active"
	TableInactive TableStatus = "inactive"
	TableClosed   TableStatus = "closed"
)

// Valid reports whether s is a known table status.
func (s TableStatus) Valid() bool {
	switch s {
	case TableActive, TableInactive, TableClosed:
		return true
	}
	return false
}

// GamingTable is a table on the floor where rating slips are opened.
type GamingTable struct {
	TableID          string          `json:"tableID"`
	CasinoID         string          `json:"casinoID"`
	Label            string          `json:"label"`
	GameType         string          `json:"gameType"`
	Seats            int             `json:"seats"`
	HouseEdge        decimal.Decimal `json:"houseEdge"` // Fraction, e.g. 0.015 for 1.5%
	DecisionsPerHour int             `json:"decisionsPerHour"`
	Status           TableStatus     `json:"status"`
	AuditFields
}

// ValidateSeat checks seat against the table's seat count. Seats are numbered from 1.
func (t GamingTable) ValidateSeat(seat int) error {
	if seat < 1 || seat > t.Seats {
		return ErrSeatOutOfRange
	}
	return nil
}

// Validate checks the table's static settings.
func (t GamingTable) Validate() error {
	if t.Label == "" || t.GameType == "" || t.Seats < 1 || t.Seats > 20 || t.DecisionsPerHour < 0 {
		return ErrInvalidTableSettings
	}
	if t.HouseEdge.IsNegative() || t.HouseEdge.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return ErrInvalidTableSettings
	}
	if !t.Status.Valid() {
		return ErrInvalidTableStatus
	}
	return nil
}
