package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/cyberdesk/pkg/document"
	"github.com/aretw0/cyberdesk/pkg/domain"
)

// Overlay marks the officer's position on the rendered tree.
type Overlay struct {
	CurrentNode string
	AIMode      bool
}

// GenerateMermaid produces a Mermaid flowchart of the decision tree.
// Shapes:
//   - start: ((Circle))
//   - aiChatStart: [[Subroutine]]
//   - nodes with a checklist: [/Parallelogram/]
//   - everything else: [Rectangle]
//
// "Other" options draw a dotted edge to the assistant node. "New Case" options draw
// a dotted edge back to start. Nodes unreachable from start are styled as orphans.
func GenerateMermaid(doc *domain.Document, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, id := range doc.IDs() {
		node := doc.Nodes[id]
		safeID := sanitizeID(id)

		opener, closer := "[", "]"
		switch {
		case id == domain.StartNodeID:
			opener, closer = "((", "))"
		case id == domain.AssistantNodeID:
			opener, closer = "[[", "]]"
		case len(node.Checklist) > 0:
			opener, closer = "[/", "/]"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", safeID, opener, escape(id), closer)

		for _, opt := range node.Options {
			label := escape(opt.Label)
			switch opt.ResolvedIntent() {
			case domain.IntentAdvance:
				fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", safeID, label, sanitizeID(opt.NextStep))
			case domain.IntentHandoff:
				fmt.Fprintf(&sb, "    %s -. \"%s\" .-> %s\n", safeID, label, sanitizeID(domain.AssistantNodeID))
			case domain.IntentReset:
				fmt.Fprintf(&sb, "    %s -. \"%s\" .-> %s\n", safeID, label, sanitizeID(domain.StartNodeID))
			}
		}
	}

	if orphans := document.Unreachable(doc); len(orphans) > 0 {
		sb.WriteString("\n    classDef orphan stroke-dasharray:4 4,color:#888;\n")
		for _, id := range orphans {
			fmt.Fprintf(&sb, "    class %s orphan;\n", sanitizeID(id))
		}
	}

	if overlay != nil && overlay.CurrentNode != "" {
		sb.WriteString("\n    %% Position\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		fmt.Fprintf(&sb, "    class %s current;\n", sanitizeID(overlay.CurrentNode))
		if overlay.AIMode {
			fmt.Fprintf(&sb, "    class %s current;\n", sanitizeID(domain.AssistantNodeID))
		}
	}

	return sb.String()
}

func sanitizeID(id string) string {
	return strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_", " ", "_").Replace(id)
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
