package dto

// StartVisitRequest opens a visit. A missing player id starts a ghost visit for unrated play.
type StartVisitRequest struct {
	PlayerID *string `json:"playerID" binding:"omitempty,uuid"`
}
