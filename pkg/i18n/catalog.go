// Package i18n loads translation catalogs and turns them into domain.Translator functions.
//
// A catalog is a YAML (or JSON) mapping of language code to key/text pairs:
//
//	en:
//	  evidence_checklist_title: Evidence Checklist
//	hi:
//	  evidence_checklist_title: साक्ष्य चेकलिस्ट
package i18n

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/aretw0/cyberdesk/pkg/domain"
	"gopkg.in/yaml.v3"
)

// DefaultLanguage is consulted when a key is missing from the selected language.
const DefaultLanguage = "en"

// Catalog holds the texts of every language.
type Catalog struct {
	langs map[string]map[string]string
}

// Parse decodes a catalog.
func Parse(data []byte) (*Catalog, error) {
	langs := make(map[string]map[string]string)
	if err := yaml.Unmarshal(data, &langs); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return &Catalog{langs: langs}, nil
}

// Load decodes a catalog from r.
func Load(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Parse(data)
}

// LoadFile decodes the catalog at path.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Languages lists the language codes present, sorted.
func (c *Catalog) Languages() []string {
	out := make([]string, 0, len(c.langs))
	for lang := range c.langs {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}

// Lookup returns the text of key in lang without any fallback.
func (c *Catalog) Lookup(lang, key string) (string, bool) {
	text, ok := c.langs[lang][key]
	return text, ok
}

// Translator returns a translator for lang. Lookups fall back to DefaultLanguage,
// then to the fallback text supplied by the caller.
func (c *Catalog) Translator(lang string) domain.Translator {
	return func(key, fallback string) string {
		if text, ok := c.Lookup(lang, key); ok {
			return text
		}
		if text, ok := c.Lookup(DefaultLanguage, key); ok {
			return text
		}
		return fallback
	}
}
