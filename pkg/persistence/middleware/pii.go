package middleware

import (
	"context"
	"fmt"
	"regexp"

	"github.com/aretw0/cyberdesk/pkg/ports"
)

// Mask replaces every PII match.
const Mask = "***"

// DefaultPIIPatterns match payment card numbers and 12-digit national ID numbers.
// Card numbers are listed first so their digits are not half-masked as an ID.
var DefaultPIIPatterns = []string{
	`\b\d{4}[ -]?\d{4}[ -]?\d{4}[ -]?\d{4}\b`,
	`\b\d{4}[ -]?\d{4}[ -]?\d{4}\b`,
}

type piiMiddleware struct {
	next     ports.NoteStore
	patterns []*regexp.Regexp
}

// NewPIIMiddleware masks text matching any of the patterns before it is saved.
// Loads are passed through.
func NewPIIMiddleware(patternStrings []string) (Middleware, error) {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid PII pattern %q: %w", p, err)
		}
		patterns[i] = re
	}
	return func(next ports.NoteStore) ports.NoteStore {
		return &piiMiddleware{next: next, patterns: patterns}
	}, nil
}

func (m *piiMiddleware) Save(ctx context.Context, key string, data []byte) error {
	masked := data
	for _, p := range m.patterns {
		masked = p.ReplaceAll(masked, []byte(Mask))
	}
	return m.next.Save(ctx, key, masked)
}

func (m *piiMiddleware) Load(ctx context.Context, key string) ([]byte, error) {
	return m.next.Load(ctx, key)
}
