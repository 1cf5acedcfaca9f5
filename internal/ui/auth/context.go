package auth

import (
	"context"

	"github.com/dualcaster-deals/dualcaster/app/internal/ui/client"
)

// Common context keys - use a struct to prevent conflicts
type contextKey struct {
	name string
}

var tokenDetailsKey = contextKey{"token-details"}

func ContextWithTokenDetails(ctx context.Context, details *client.TokenDetails) context.Context {
	return context.WithValue(ctx, tokenDetailsKey, details)
}

func ContextTokenDetails(ctx context.Context) (*client.TokenDetails, bool) {
	details, ok := ctx.Value(tokenDetailsKey).(*client.TokenDetails)
	return details, ok
}
