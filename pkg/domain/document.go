package domain

import "sort"

// Document is an immutable decision tree keyed by node ID.
type Document struct {
	Nodes map[string]Node `json:"nodes"`
}

// NewDocument builds a Document from nodes. It does not validate references.
func NewDocument(nodes ...Node) *Document {
	doc := &Document{Nodes: make(map[string]Node, len(nodes))}
	for _, n := range nodes {
		doc.Nodes[n.ID] = n
	}
	return doc
}

// Lookup returns the node registered under id.
func (d *Document) Lookup(id string) (Node, bool) {
	if d == nil {
		return Node{}, false
	}
	n, ok := d.Nodes[id]
	return n, ok
}

// IDs returns all node IDs in deterministic order.
func (d *Document) IDs() []string {
	ids := make([]string, 0, len(d.Nodes))
	for id := range d.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
