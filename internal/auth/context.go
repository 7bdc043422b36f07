package auth

import (
	"context"

	"canteen/internal/model"
)

type actorKey struct{}

// WithActor returns a copy of ctx carrying the authenticated caller.
func WithActor(ctx context.Context, actor model.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFrom returns the caller stored by WithActor.
func ActorFrom(ctx context.Context) (model.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(model.Actor)
	return actor, ok
}
