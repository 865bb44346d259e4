package events

import (
	"context"
	"errors"

	"github.com/SscSPs/player_tracker/internal/core/domain"
	"github.com/SscSPs/player_tracker/internal/core/ports"
)

// MultiPublisher sends every event to each of its publishers.
type MultiPublisher []ports.EventPublisher

var _ ports.EventPublisher = MultiPublisher(nil)

// Publish tries every publisher and joins their errors.
func (m MultiPublisher) Publish(ctx context.Context, event domain.Event) error {
	var errs []error
	for _, p := range m {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
