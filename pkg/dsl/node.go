package dsl

import (
	"github.com/aretw0/cyberdesk/pkg/adapters/memory"
	"github.com/aretw0/cyberdesk/pkg/domain"
)

// NodeBuilder provides a fluent API for configuring a node.
type NodeBuilder struct {
	node    domain.Node
	builder *Builder
}

// Ask sets the prompt (or its translation key) of the node.
func (n *NodeBuilder) Ask(query string) *NodeBuilder {
	n.node.Query = query
	return n
}

// Option offers a choice that advances to next.
func (n *NodeBuilder) Option(label, value, next string) *NodeBuilder {
	n.node.Options = append(n.node.Options, domain.Option{
		Label:    label,
		Value:    value,
		NextStep: next,
		Intent:   domain.IntentFor(value, next),
	})
	return n
}

// Other offers the hand-off to the assistant.
func (n *NodeBuilder) Other() *NodeBuilder {
	return n.Option(domain.ValueOther, domain.ValueOther, "")
}

// NewCase offers starting over.
func (n *NodeBuilder) NewCase() *NodeBuilder {
	return n.Option(domain.ValueNewCase, domain.ValueNewCase, "")
}

// Checklist appends evidence items shown once the node is reached.
func (n *NodeBuilder) Checklist(items ...string) *NodeBuilder {
	n.node.Checklist = append(n.node.Checklist, items...)
	return n
}

// Template attaches literal text, e.g. a complaint form.
func (n *NodeBuilder) Template(text string) *NodeBuilder {
	n.node.TemplateContent = text
	return n
}

// Add starts the next node, allowing a single chain to describe the whole tree.
func (n *NodeBuilder) Add(id string) *NodeBuilder {
	return n.builder.Add(id)
}

// Build finishes the tree. See Builder.Build.
func (n *NodeBuilder) Build() (*memory.Loader, error) {
	return n.builder.Build()
}
