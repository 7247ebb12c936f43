package handler

import (
	"context"

	"github.com/yndnr/sealslot-go/internal/core/domain"
)

// HeaderClientToken carries the client token on protocol requests.
const HeaderClientToken = "X-Client-Token"

type contextKey struct{}

// WithClient returns a copy of ctx carrying the authenticated client.
func WithClient(ctx context.Context, id domain.ClientIdentity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// ClientFromContext returns the authenticated client stored by WithClient.
func ClientFromContext(ctx context.Context) (domain.ClientIdentity, bool) {
	id, ok := ctx.Value(contextKey{}).(domain.ClientIdentity)
	return id, ok
}
