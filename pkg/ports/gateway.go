package ports

import "context"

// Gateway sends a free-text query to the remote assistant.
// Any failure must wrap domain.ErrGatewayFailure.
type Gateway interface {
	Ask(ctx context.Context, query string) (string, error)
}

// GatewayFunc adapts a function to Gateway.
type GatewayFunc func(ctx context.Context, query string) (string, error)

// Ask calls f.
func (f GatewayFunc) Ask(ctx context.Context, query string) (string, error) {
	return f(ctx, query)
}
