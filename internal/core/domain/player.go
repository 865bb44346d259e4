package domain

import "time"

// PlayerStatus is the enrolment state of a player.
type PlayerStatus string

const (
	PlayerActive   PlayerStatus = "active"
	PlayerInactive PlayerStatus = "inactive"
	PlayerBanned   PlayerStatus = "banned"
)

// Player is an identified patron enrolled at a casino.
type Player struct {
	PlayerID    string       `json:"playerID"`
	CasinoID    string       `json:"casinoID"`
	FirstName   string       `json:"firstName"`
	LastName    string       `json:"lastName"`
	BirthDate   *time.Time   `json:"birthDate,omitempty"`
	LoyaltyTier string       `json:"loyaltyTier"`
	Status      PlayerStatus `json:"status"`
	AuditFields
}

// CanPlay reports whether the player may start visits and rating slips.
func (p Player) CanPlay() bool { return p.Status == PlayerActive }
