package dto

import (
	"time"

	"github.com/SscSPs/player_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpdateCasinoSettingsRequest defines the settings an admin may change. Omitted fields keep
// their current values.
type UpdateCasinoSettingsRequest struct {
	Timezone                 *string          `json:"timezone"`
	GamingDayStart           *string          `json:"gamingDayStart"` // HH:MM
	PointsPerTheo            *decimal.Decimal `json:"pointsPerTheo"`
	RequireAverageBetOnClose *bool            `json:"requireAverageBetOnClose"`
}

// GamingDayResponse is the gaming day of an instant and the instant range it covers.
type GamingDayResponse struct {
	GamingDay domain.GamingDay `json:"gamingDay"`
	Timezone  string           `json:"timezone"`
	StartsAt  time.Time        `json:"startsAt"`
	EndsAt    time.Time        `json:"endsAt"`
}
