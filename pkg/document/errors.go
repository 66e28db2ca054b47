package document

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/cyberdesk/pkg/domain"
)

// ValidationError represents a single structural defect of a document.
type ValidationError struct {
	NodeID string // Node holding the defect ("" for document-level defects)
	Field  string // Offending field, e.g. "options[2].nextStep"
	Reason string // Human-readable reason
}

func (e *ValidationError) Error() string {
	switch {
	case e.NodeID == "":
		return e.Reason
	case e.Field == "":
		return fmt.Sprintf("node %q: %s", e.NodeID, e.Reason)
	default:
		return fmt.Sprintf("node %q %s: %s", e.NodeID, e.Field, e.Reason)
	}
}

// AggregateError represents every defect found in a document.
// It matches domain.ErrMalformedDocument with errors.Is.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("%s: %s", domain.ErrMalformedDocument, e.Errors[0])
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %d errors:", domain.ErrMalformedDocument, len(e.Errors))
	for _, err := range e.Errors {
		sb.WriteString("\n- ")
		sb.WriteString(err.Error())
	}
	return sb.String()
}

// Is reports whether target is domain.ErrMalformedDocument.
func (e *AggregateError) Is(target error) bool {
	return target == domain.ErrMalformedDocument
}

// Unwrap exposes the individual defects to errors.As.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// ValidationErrors returns all validation errors if err wraps an AggregateError.
// Otherwise returns nil.
func ValidationErrors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}
