// Package tui renders conversation text for a colour terminal.
package tui

import (
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a markdown renderer for bot prompts and complaint templates.
// It falls back to returning the input unchanged if glamour cannot be initialized.
func NewRenderer(wordWrap int) func(string) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if wordWrap > 0 {
		opts = append(opts, glamour.WithWordWrap(wordWrap))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return func(s string) (string, error) { return s, nil }
	}
	return r.Render
}
