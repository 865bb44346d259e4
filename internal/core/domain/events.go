package domain

import "time"

// EventType names a domain event. It doubles as the routing key on the message bus.
type EventType string

const (
	EventRatingSlipStarted   EventType = "rating_slip.started"
	EventRatingSlipPaused    EventType = "rating_slip.paused"
	EventRatingSlipResumed   EventType = "rating_slip.resumed"
	EventRatingSlipClosed    EventType = "rating_slip.closed"
	EventRatingSlipMoved     EventType = "rating_slip.moved"
	EventRatingSlipBetChange EventType = "rating_slip.average_bet_updated"
	EventVisitStarted        EventType = "visit.started"
	EventVisitEnded          EventType = "visit.ended"
	EventTableStatusChanged  EventType = "table.status_changed"
	EventFinancialRecorded   EventType = "financial_transaction.recorded"
	EventLoyaltyAccrued      EventType = "loyalty.accrued"
	EventLoyaltyAdjusted     EventType = "loyalty.adjusted"
)

// Event is emitted after the change it describes has been committed.
type Event struct {
	EventID    string    `json:"eventID"`
	Type       EventType `json:"type"`
	CasinoID   string    `json:"casinoID"`
	EntityID   string    `json:"entityID"`
	TableID    string    `json:"tableID,omitempty"` // Set for floor events so dashboards can filter by table
	OccurredAt time.Time `json:"occurredAt"`
	ActorID    string    `json:"actorID"`
	Payload    any       `json:"payload,omitempty"`
}
