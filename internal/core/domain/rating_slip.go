package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RatingSlipStatus is the lifecycle state of a rating slip.
type RatingSlipStatus string

const (
	SlipOpen   RatingSlipStatus = "open"
	SlipPaused RatingSlipStatus = "paused"
	SlipClosed RatingSlipStatus = "closed" // Terminal
)

// IsActive reports whether the slip still counts as the player's live slip at its table.
func (s RatingSlipStatus) IsActive() bool { return s == SlipOpen || s == SlipPaused }

// RatingSlipPause is one pause interval of a rating slip. EndedAt is nil while the pause is active.
type RatingSlipPause struct {
	PauseID      string     `json:"pauseID"`
	RatingSlipID string     `json:"ratingSlipID"`
	CasinoID     string     `json:"casinoID"`
	StartedAt    time.Time  `json:"startedAt"`
	EndedAt      *time.Time `json:"endedAt,omitempty"`
	CreatedBy    string     `json:"createdBy"`
}

// IsActive reports whether the pause has not been ended.
func (p RatingSlipPause) IsActive() bool { return p.EndedAt == nil }

// overlap returns how much of the pause falls inside [from, to]. An active pause runs until to.
func (p RatingSlipPause) overlap(from, to time.Time) time.Duration {
	start := p.StartedAt
	if start.Before(from) {
		start = from
	}
	end := to
	if p.EndedAt != nil && p.EndedAt.Before(to) {
		end = *p.EndedAt
	}
	if !end.After(start) {
		return 0
	}
	return end.Sub(start)
}

// RatingSlip records one measured gameplay session of a visit at a table seat.
type RatingSlip struct {
	RatingSlipID  string            `json:"ratingSlipID"`
	CasinoID      string            `json:"casinoID"`
	VisitID       string            `json:"visitID"`
	PlayerID      *string           `json:"playerID,omitempty"` // Copied from the visit; nil for ghost play
	TableID       string            `json:"tableID"`
	SeatNumber    int               `json:"seatNumber"` // Immutable once set
	Status        RatingSlipStatus  `json:"status"`
	StartTime     time.Time         `json:"startTime"`
	EndTime       *time.Time        `json:"endTime,omitempty"`
	AverageBet    *decimal.Decimal  `json:"averageBet,omitempty"`
	PausedSeconds int64             `json:"pausedSeconds"`             // Accumulated completed pause time
	DurationSecs  *int64            `json:"durationSeconds,omitempty"` // Set on close
	MovedFromID   *string           `json:"movedFromID,omitempty"`
	Pauses        []RatingSlipPause `json:"pauses"`
	AuditFields
}

// NewRatingSlip creates an open slip starting at now.
func NewRatingSlip(id string, visit Visit, table GamingTable, seat int, averageBet *decimal.Decimal, staffID string, now time.Time) (*RatingSlip, error) {
	if !visit.IsActive() {
		return nil, ErrVisitEnded
	}
	if table.Status != TableActive {
		return nil, ErrTableNotActive
	}
	if err := table.ValidateSeat(seat); err != nil {
		return nil, err
	}
	if averageBet != nil && averageBet.IsNegative() {
		return nil, ErrSlipInvalidBet
	}
	return &RatingSlip{
		RatingSlipID: id,
		CasinoID:     visit.CasinoID,
		VisitID:      visit.VisitID,
		PlayerID:     visit.PlayerID,
		TableID:      table.TableID,
		SeatNumber:   seat,
		Status:       SlipOpen,
		StartTime:    now,
		AverageBet:   averageBet,
		Pauses:       []RatingSlipPause{},
		AuditFields:  NewAuditFields(staffID, now),
	}, nil
}

// ActivePause returns the pause with no end, or nil.
func (s *RatingSlip) ActivePause() *RatingSlipPause {
	for i := range s.Pauses {
		if s.Pauses[i].IsActive() {
			return &s.Pauses[i]
		}
	}
	return nil
}

// clampToStart keeps transition instants from landing before the slip started.
func (s *RatingSlip) clampToStart(now time.Time) time.Time {
	if now.Before(s.StartTime) {
		return s.StartTime
	}
	return now
}

// Pause moves an open slip to paused and opens a new pause interval.
func (s *RatingSlip) Pause(pauseID string, now time.Time, staffID string) (RatingSlipPause, error) {
	if s.Status == SlipClosed {
		return RatingSlipPause{}, ErrSlipInvalidState
	}
	if s.Status != SlipOpen || s.ActivePause() != nil {
		return RatingSlipPause{}, ErrSlipNotOpen
	}
	now = s.clampToStart(now)
	pause := RatingSlipPause{
		PauseID:      pauseID,
		RatingSlipID: s.RatingSlipID,
		CasinoID:     s.CasinoID,
		StartedAt:    now,
		CreatedBy:    staffID,
	}
	s.Pauses = append(s.Pauses, pause)
	s.Status = SlipPaused
	s.Touch(staffID, now)
	return pause, nil
}

// Resume ends the active pause and returns the slip to open.
func (s *RatingSlip) Resume(now time.Time, staffID string) (RatingSlipPause, error) {
	if s.Status == SlipClosed {
		return RatingSlipPause{}, ErrSlipInvalidState
	}
	if s.Status != SlipPaused {
		return RatingSlipPause{}, ErrSlipNotPaused
	}
	ended, err := s.endActivePause(now)
	if err != nil {
		return RatingSlipPause{}, err
	}
	s.Status = SlipOpen
	s.Touch(staffID, now)
	return ended, nil
}

// Close ends the slip. A paused slip has its active pause ended at the same instant first,
// so the final pause is excluded from the duration. The ended pause is returned, if any.
func (s *RatingSlip) Close(now time.Time, averageBet *decimal.Decimal, staffID string) (*RatingSlipPause, error) {
	if s.Status == SlipClosed {
		return nil, ErrSlipInvalidState
	}
	if averageBet != nil {
		if averageBet.IsNegative() {
			return nil, ErrSlipInvalidBet
		}
		s.AverageBet = averageBet
	}
	now = s.clampToStart(now)

	var ended *RatingSlipPause
	if s.Status == SlipPaused {
		p, err := s.endActivePause(now)
		if err != nil {
			return nil, err
		}
		ended = &p
	}

	s.Status = SlipClosed
	s.EndTime = &now
	secs := int64(s.DurationAt(now) / time.Second)
	s.DurationSecs = &secs
	s.Touch(staffID, now)
	return ended, nil
}

// UpdateAverageBet sets the average bet of a slip that is still active.
func (s *RatingSlip) UpdateAverageBet(averageBet decimal.Decimal, now time.Time, staffID string) error {
	if s.Status == SlipClosed {
		return ErrSlipInvalidState
	}
	if averageBet.IsNegative() {
		return ErrSlipInvalidBet
	}
	s.AverageBet = &averageBet
	s.Touch(staffID, now)
	return nil
}

func (s *RatingSlip) endActivePause(now time.Time) (RatingSlipPause, error) {
	p := s.ActivePause()
	if p == nil {
		return RatingSlipPause{}, ErrSlipNotPaused
	}
	end := now
	if end.Before(p.StartedAt) {
		end = p.StartedAt
	}
	p.EndedAt = &end
	s.PausedSeconds = int64(s.PausedDurationAt(end) / time.Second)
	return *p, nil
}

// PausedDurationAt sums the pause time between the start of the slip and asOf (or the end
// time of a closed slip, whichever is earlier). An active pause counts up to that instant.
func (s *RatingSlip) PausedDurationAt(asOf time.Time) time.Duration {
	end := s.effectiveEnd(asOf)
	var total time.Duration
	for _, p := range s.Pauses {
		total += p.overlap(s.StartTime, end)
	}
	return total
}

// DurationAt is the played time of the slip: elapsed time minus pauses. It is never negative
// and never exceeds the elapsed time.
func (s *RatingSlip) DurationAt(asOf time.Time) time.Duration {
	end := s.effectiveEnd(asOf)
	elapsed := end.Sub(s.StartTime)
	if elapsed <= 0 {
		return 0
	}
	played := elapsed - s.PausedDurationAt(end)
	if played < 0 {
		return 0
	}
	if played > elapsed {
		return elapsed
	}
	return played
}

func (s *RatingSlip) effectiveEnd(asOf time.Time) time.Time {
	if s.EndTime != nil && s.EndTime.Before(asOf) {
		return *s.EndTime
	}
	return asOf
}
