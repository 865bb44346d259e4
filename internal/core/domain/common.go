package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // StaffID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // StaffID Reference
}

// NewAuditFields stamps creation and update with the same actor and instant.
func NewAuditFields(staffID string, now time.Time) AuditFields {
	return AuditFields{
		CreatedAt:     now,
		CreatedBy:     staffID,
		LastUpdatedAt: now,
		LastUpdatedBy: staffID,
	}
}

// Touch records an update.
func (a *AuditFields) Touch(staffID string, now time.Time) {
	a.LastUpdatedAt = now
	a.LastUpdatedBy = staffID
}
