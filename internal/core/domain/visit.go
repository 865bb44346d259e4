package domain

import "time"

// Visit anchors a patron's presence at the casino. A visit without a player is a ghost visit
// used for unrated play.
type Visit struct {
	VisitID   string     `json:"visitID"`
	CasinoID  string     `json:"casinoID"`
	PlayerID  *string    `json:"playerID,omitempty"`
	StartedAt time.Time  `json:"startedAt"`
	EndedAt   *time.Time `json:"endedAt,omitempty"`
	AuditFields
}

// IsGhost reports whether the visit has no player identity.
func (v Visit) IsGhost() bool { return v.PlayerID == nil }

// IsActive reports whether the visit has not ended.
func (v Visit) IsActive() bool { return v.EndedAt == nil }

// End closes the visit.
func (v *Visit) End(now time.Time, staffID string) error {
	if !v.IsActive() {
		return ErrVisitEnded
	}
	v.EndedAt = &now
	v.Touch(staffID, now)
	return nil
}
