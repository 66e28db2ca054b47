package document

import (
	"fmt"

	"github.com/aretw0/cyberdesk/pkg/domain"
)

// Validate checks the structural invariants of an already built document, e.g. one
// assembled in memory. Documents returned by Parse are already valid.
func Validate(doc *domain.Document) error {
	if errs := validate(doc); len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

func validate(doc *domain.Document) []error {
	var errs []error

	for _, required := range []string{domain.StartNodeID, domain.AssistantNodeID} {
		if _, ok := doc.Lookup(required); !ok {
			errs = append(errs, &ValidationError{Reason: fmt.Sprintf("missing required node %q", required)})
		}
	}

	for _, id := range doc.IDs() {
		node := doc.Nodes[id]
		seen := make(map[string]bool, len(node.Options))
		for i, opt := range node.Options {
			field := fmt.Sprintf("options[%d]", i)
			if opt.Value == "" {
				errs = append(errs, &ValidationError{NodeID: id, Field: field, Reason: "option has no value"})
				continue
			}
			if seen[opt.Value] {
				errs = append(errs, &ValidationError{NodeID: id, Field: field, Reason: fmt.Sprintf("duplicate value %q", opt.Value)})
			}
			seen[opt.Value] = true

			if opt.NextStep != "" {
				if _, ok := doc.Lookup(opt.NextStep); !ok {
					errs = append(errs, &ValidationError{
						NodeID: id,
						Field:  field + ".nextStep",
						Reason: fmt.Sprintf("dangling reference to %q", opt.NextStep),
					})
				}
			}
		}
	}
	return errs
}

// Reachable crawls the document from the start node and returns every node ID reached,
// in visit order. The assistant node is always considered reachable through "Other".
func Reachable(doc *domain.Document) []string {
	visited := make(map[string]bool)
	var order []string
	queue := []string{domain.StartNodeID, domain.AssistantNodeID}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if visited[id] {
			continue
		}
		node, ok := doc.Lookup(id)
		if !ok {
			continue
		}
		visited[id] = true
		order = append(order, id)

		for _, opt := range node.Options {
			if opt.ResolvedIntent() == domain.IntentAdvance && !visited[opt.NextStep] {
				queue = append(queue, opt.NextStep)
			}
		}
	}
	return order
}

// Unreachable returns node IDs that cannot be reached from the start node.
func Unreachable(doc *domain.Document) []string {
	reached := make(map[string]bool)
	for _, id := range Reachable(doc) {
		reached[id] = true
	}
	var out []string
	for _, id := range doc.IDs() {
		if !reached[id] {
			out = append(out, id)
		}
	}
	return out
}
