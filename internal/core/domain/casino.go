package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Casino is the tenant. Every other entity belongs to exactly one casino.
type Casino struct {
	CasinoID string `json:"casinoID"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
	AuditFields
}

// CasinoSettings holds the per-casino configuration that drives gaming day and loyalty math.
type CasinoSettings struct {
	CasinoID                 string          `json:"casinoID"`
	Timezone                 string          `json:"timezone"`       // IANA zone, e.g. America/Los_Angeles
	GamingDayStart           TimeOfDay       `json:"gamingDayStart"` // Local boundary of the gaming day
	PointsPerTheo            decimal.Decimal `json:"pointsPerTheo"`  // Loyalty points earned per unit of theoretical win
	RequireAverageBetOnClose bool            `json:"requireAverageBetOnClose"`
	LastUpdatedAt            time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy            string          `json:"lastUpdatedBy"`
}

// Location loads the casino's time zone.
func (s CasinoSettings) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil || s.Timezone == "" {
		return nil, ErrInvalidTimezone
	}
	return loc, nil
}

// GamingDayAt resolves the gaming day of an instant for this casino.
func (s CasinoSettings) GamingDayAt(at time.Time) (GamingDay, error) {
	loc, err := s.Location()
	if err != nil {
		return GamingDay{}, err
	}
	return ResolveGamingDay(at, loc, s.GamingDayStart), nil
}

// GamingDayBounds returns the instant range of day for this casino.
func (s CasinoSettings) GamingDayBounds(day GamingDay) (time.Time, time.Time, error) {
	loc, err := s.Location()
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	from, to := GamingDayBounds(day, loc, s.GamingDayStart)
	return from, to, nil
}

// DefaultCasinoSettings are applied to a newly created casino.
func DefaultCasinoSettings(casinoID, timezone string) CasinoSettings {
	return CasinoSettings{
		CasinoID:       casinoID,
		Timezone:       timezone,
		GamingDayStart: DefaultGamingDayStart,
		PointsPerTheo:  decimal.NewFromInt(1),
	}
}
