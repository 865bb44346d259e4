package ports

import (
	"context"

	"github.com/SscSPs/player_tracker/internal/core/domain"
)

// EventPublisher delivers committed domain events to subscribers outside the service.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}
