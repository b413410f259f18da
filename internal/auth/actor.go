package auth

import "context"

// Actor is the authenticated caller, carried explicitly through every core
// operation instead of being read from ambient session state. The identity
// layer upstream authenticates; IsAdmin is re-validated against the
// directory on each request.
type Actor struct {
	Email   string
	IsAdmin bool
}

type contextKey struct{}

func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, contextKey{}, actor)
}

func ActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(contextKey{}).(Actor)
	return actor, ok
}
