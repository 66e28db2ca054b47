package memory

import (
	"context"
	"fmt"

	"github.com/aretw0/cyberdesk/pkg/document"
	"github.com/aretw0/cyberdesk/pkg/domain"
	"github.com/aretw0/cyberdesk/pkg/ports"
)

// Loader implements ports.DocumentLoader over nodes held in memory.
type Loader struct {
	nodes []domain.Node
}

// NewLoader creates a loader serving the given nodes.
func NewLoader(nodes ...domain.Node) *Loader {
	return &Loader{nodes: nodes}
}

var _ ports.DocumentLoader = (*Loader)(nil)

// Load assembles and validates the document, deriving option intents.
func (l *Loader) Load(_ context.Context) (*domain.Document, error) {
	nodes := make([]domain.Node, 0, len(l.nodes))
	for _, n := range l.nodes {
		if n.ID == "" {
			return nil, fmt.Errorf("%w: node missing ID", domain.ErrMalformedDocument)
		}
		opts := make([]domain.Option, len(n.Options))
		for i, opt := range n.Options {
			opt.Intent = opt.ResolvedIntent()
			opts[i] = opt
		}
		n.Options = opts
		nodes = append(nodes, n)
	}

	doc := domain.NewDocument(nodes...)
	if err := document.Validate(doc); err != nil {
		return nil, err
	}
	return doc, nil
}
