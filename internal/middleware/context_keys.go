package middleware

import (
	"context"

	"github.com/SscSPs/player_tracker/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// actorCtxKey is the key used to store the authenticated staff member in the request context.
const actorCtxKey = contextKey("actor")

// WithActor returns a copy of ctx carrying actor.
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorCtxKey, actor)
}

// ActorFromCtx retrieves the authenticated staff member from ctx.
func ActorFromCtx(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorCtxKey).(domain.Actor)
	return actor, ok
}

// GetActor retrieves the authenticated staff member of the request.
// It returns the actor and a boolean indicating if it was found.
func GetActor(c *gin.Context) (domain.Actor, bool) {
	return ActorFromCtx(c.Request.Context())
}

func contextWithKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, idempotencyKeyCtxKey, key)
}
