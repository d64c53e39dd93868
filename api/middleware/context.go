package middleware

import (
	"context"

	"github.com/kestrelgear/dealerdesk-backend/internal/orders"
)

type contextKey string

const ctxIdentity contextKey = "identity"

// WithIdentity injects the verified caller identity into the context.
func WithIdentity(ctx context.Context, identity orders.Identity) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxIdentity, identity)
}

// IdentityFromContext returns the caller identity seeded by the Auth
// middleware, or a zero identity when the request is unauthenticated.
func IdentityFromContext(ctx context.Context) orders.Identity {
	if ctx == nil {
		return orders.Identity{}
	}
	if v, ok := ctx.Value(ctxIdentity).(orders.Identity); ok {
		return v
	}
	return orders.Identity{}
}
