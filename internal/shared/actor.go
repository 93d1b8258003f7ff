package shared

import "context"

// SystemActor is the attribution used when a request carries no actor
// identity. The fallback is applied where commands are built, never inside
// the persistence layer.
const SystemActor = "SYSTEM"

// ActorOrSystem applies the fallback attribution to a raw actor value.
func ActorOrSystem(actor string) string {
	if actor == "" {
		return SystemActor
	}
	return actor
}

type actorContextKey struct{}

// ContextWithActor stores the acting identity in context.
func ContextWithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

// ActorFromContext extracts the acting identity, defaulting to SystemActor.
func ActorFromContext(ctx context.Context) string {
	actor, _ := ctx.Value(actorContextKey{}).(string)
	if actor == "" {
		return SystemActor
	}
	return actor
}
