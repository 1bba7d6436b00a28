package auth

import "context"

type ctxKey string

const claimsKey ctxKey = "authClaims"

func WithClaims(ctx context.Context, c Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func FromContext(ctx context.Context) Claims {
	if v, ok := ctx.Value(claimsKey).(Claims); ok {
		return v
	}
	return Claims{}
}

// Subject returns the authenticated principal id, or "" outside the gate.
func Subject(ctx context.Context) string {
	return FromContext(ctx).Subject
}
