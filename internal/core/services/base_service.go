package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/player_tracker/internal/core/domain"
	"github.com/SscSPs/player_tracker/internal/core/ports"
	"github.com/SscSPs/player_tracker/internal/middleware"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/SscSPs/player_tracker/internal/core/services"

// BaseService provides common functionality for all services
type BaseService struct {
	events ports.EventPublisher
	clock  func() time.Time
}

// Option configures the BaseService of any service.
type Option func(*BaseService)

// WithClock replaces the wall clock. Tests use it to pin transition instants.
func WithClock(clock func() time.Time) Option {
	return func(b *BaseService) { b.clock = clock }
}

// WithEventPublisher sets where committed domain events are sent.
func WithEventPublisher(p ports.EventPublisher) Option {
	return func(b *BaseService) { b.events = p }
}

func newBaseService(opts ...Option) BaseService {
	b := BaseService{clock: time.Now}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// Now returns the current instant in UTC.
func (s *BaseService) Now() time.Time {
	return s.clock().UTC()
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogWarn logs a warning with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}

// Authorize checks that the actor holds one of roles. Admins always pass.
func (s *BaseService) Authorize(ctx context.Context, actor domain.Actor, roles ...domain.StaffRole) error {
	if actor.HasAnyRole(roles...) {
		return nil
	}
	s.LogWarn(ctx, "Staff role not permitted",
		slog.String("staff_id", actor.StaffID),
		slog.String("role", string(actor.Role)))
	return domain.ErrStaffRoleRequired
}

// StartSpan starts a span for a service operation. The span is a no-op unless a tracer
// provider has been installed.
func (s *BaseService) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, name, trace.WithAttributes(attrs...))
}

// EndSpan records err on span and ends it.
func (s *BaseService) EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// Publish sends a committed event. Delivery failures are logged and never undo the change.
func (s *BaseService) Publish(ctx context.Context, actor domain.Actor, eventType domain.EventType, entityID, tableID string, payload any) {
	if s.events == nil {
		return
	}
	event := domain.Event{
		EventID:    uuid.NewString(),
		Type:       eventType,
		CasinoID:   actor.CasinoID,
		EntityID:   entityID,
		TableID:    tableID,
		OccurredAt: s.Now(),
		ActorID:    actor.StaffID,
		Payload:    payload,
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.LogError(ctx, err, "Failed to publish event",
			slog.String("event_type", string(eventType)),
			slog.String("entity_id", entityID))
	}
}
