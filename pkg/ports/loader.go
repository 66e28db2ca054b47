package ports

import (
	"context"

	"github.com/aretw0/cyberdesk/pkg/domain"
)

// DocumentLoader defines how the engine retrieves the decision tree.
// This allows the storage layer (file, memory) to be decoupled.
type DocumentLoader interface {
	// Load returns a validated document or an error wrapping domain.ErrMalformedDocument.
	Load(ctx context.Context) (*domain.Document, error)
}
