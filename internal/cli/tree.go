package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/cyberdesk/internal/presentation/graph"
	"github.com/aretw0/cyberdesk/pkg/adapters/file"
	"github.com/aretw0/cyberdesk/pkg/document"
)

// ErrInvalidTree is returned by ValidateTree after the individual problems are printed.
var ErrInvalidTree = errors.New("decision tree is invalid")

// ValidateTree checks the tree at path, printing every problem and unreachable node to w.
func ValidateTree(ctx context.Context, path string, w io.Writer) error {
	doc, err := file.NewLoader(path).Load(ctx)
	if err != nil {
		problems := document.ValidationErrors(err)
		if len(problems) == 0 {
			return err
		}
		for _, p := range problems {
			fmt.Fprintf(w, "  ✗ %v\n", p)
		}
		return fmt.Errorf("%w: %d problem(s)", ErrInvalidTree, len(problems))
	}

	for _, id := range document.Unreachable(doc) {
		fmt.Fprintf(w, "  ! node %q is unreachable from start\n", id)
	}
	fmt.Fprintf(w, "Decision tree is valid (%d nodes).\n", len(doc.Nodes))
	return nil
}

// WriteGraph prints the tree at path as a Mermaid flowchart.
func WriteGraph(ctx context.Context, path string, w io.Writer) error {
	doc, err := file.NewLoader(path).Load(ctx)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, graph.GenerateMermaid(doc, nil))
	return err
}
