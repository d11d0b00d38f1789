package auth

import (
	"context"

	"github.com/giftwish/giftwish/pkg/api"
)

// userIDKey is a private type for the authenticated-user context key.
type userIDKey struct{}

// personKey is a private type for the authorized-person context key.
type personKey struct{}

// SetUserID stores the authenticated user's id in the context.
func SetUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

// UserIDFromContext retrieves the authenticated user's id. Returns the
// empty string if the request did not pass the bearer gate.
func UserIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(userIDKey{}).(string); ok {
		return v
	}
	return ""
}

// SetPerson stores the person fetched by the ownership check so downstream
// handlers do not re-fetch it.
func SetPerson(ctx context.Context, p *api.Person) context.Context {
	return context.WithValue(ctx, personKey{}, p)
}

// PersonFromContext retrieves the person fetched by the ownership check.
// Returns nil if the route has no ownership gate.
func PersonFromContext(ctx context.Context) *api.Person {
	if v, ok := ctx.Value(personKey{}).(*api.Person); ok {
		return v
	}
	return nil
}
