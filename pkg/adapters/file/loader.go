// Package file provides filesystem adapters: a decision tree loader and a note store.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/cyberdesk/pkg/document"
	"github.com/aretw0/cyberdesk/pkg/domain"
	"github.com/aretw0/cyberdesk/pkg/ports"
)

// Loader reads a decision tree from a .json, .yaml or .yml file.
type Loader struct {
	path string
}

// NewLoader creates a loader for path.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

var _ ports.DocumentLoader = (*Loader)(nil)

// Path returns the file the loader reads.
func (l *Loader) Path() string {
	return l.path
}

// Load reads and parses the file.
func (l *Loader) Load(_ context.Context) (*domain.Document, error) {
	switch ext := strings.ToLower(filepath.Ext(l.path)); ext {
	case ".json", ".yaml", ".yml":
	default:
		return nil, fmt.Errorf("unsupported decision tree format %q", ext)
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read decision tree: %w", err)
	}
	doc, err := document.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.path, err)
	}
	return doc, nil
}
