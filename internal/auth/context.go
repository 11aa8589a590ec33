package auth

import (
	"context"
	"strings"
)

type ctxKey string

const providerKey ctxKey = "auth_provider"

// ContextWithProvider stores the authenticated provider in the context.
func ContextWithProvider(ctx context.Context, p *Provider) context.Context {
	if p == nil {
		return ctx
	}
	return context.WithValue(ctx, providerKey, p)
}

// ProviderFromContext extracts the authenticated provider from context.
func ProviderFromContext(ctx context.Context) (*Provider, bool) {
	p, ok := ctx.Value(providerKey).(*Provider)
	if !ok || p == nil {
		return nil, false
	}
	return p, true
}

// ProviderIDFromContext returns the authenticated provider's ID, if any.
func ProviderIDFromContext(ctx context.Context) (string, bool) {
	p, ok := ProviderFromContext(ctx)
	if !ok || strings.TrimSpace(p.ID) == "" {
		return "", false
	}
	return p.ID, true
}
