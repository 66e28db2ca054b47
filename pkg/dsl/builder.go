package dsl

import (
	"context"
	"fmt"

	"github.com/aretw0/cyberdesk/pkg/adapters/memory"
	"github.com/aretw0/cyberdesk/pkg/domain"
)

// Builder manages the tree construction.
type Builder struct {
	order []string
	nodes map[string]*NodeBuilder
}

// New creates a new tree builder.
func New() *Builder {
	return &Builder{
		nodes: make(map[string]*NodeBuilder),
	}
}

// Add creates a new node in the tree.
// If the node already exists, it returns the existing builder.
func (b *Builder) Add(id string) *NodeBuilder {
	if nb, ok := b.nodes[id]; ok {
		return nb
	}
	nb := &NodeBuilder{
		node:    domain.Node{ID: id},
		builder: b,
	}
	b.nodes[id] = nb
	b.order = append(b.order, id)
	return nb
}

// Nodes returns the nodes added so far, in insertion order.
func (b *Builder) Nodes() []domain.Node {
	nodes := make([]domain.Node, 0, len(b.order))
	for _, id := range b.order {
		nodes = append(nodes, b.nodes[id].node)
	}
	return nodes
}

// Build validates the tree and returns it as an in-memory loader.
func (b *Builder) Build() (*memory.Loader, error) {
	loader := memory.NewLoader(b.Nodes()...)
	if _, err := loader.Load(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to build decision tree: %w", err)
	}
	return loader, nil
}
