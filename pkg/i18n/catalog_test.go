package i18n_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/cyberdesk/pkg/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogYAML = `
en:
  evidence_checklist_title: Evidence Checklist
  q_start: What type of crime?
hi:
  evidence_checklist_title: साक्ष्य चेकलिस्ट
`

func TestCatalog_Translator(t *testing.T) {
	catalog, err := i18n.Load(strings.NewReader(catalogYAML))
	require.NoError(t, err)
	assert.Equal(t, []string{"en", "hi"}, catalog.Languages())

	hi := catalog.Translator("hi")
	assert.Equal(t, "साक्ष्य चेकलिस्ट", hi.T("evidence_checklist_title", "x"))
	assert.Equal(t, "What type of crime?", hi.T("q_start", "x"), "falls back to English")
	assert.Equal(t, "raw", hi.T("unknown", "raw"), "falls back to caller text")

	fr := catalog.Translator("fr")
	assert.Equal(t, "Evidence Checklist", fr.T("evidence_checklist_title", "x"))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locales.yaml")
	require.NoError(t, os.WriteFile(path, []byte(catalogYAML), 0o644))

	catalog, err := i18n.LoadFile(path)
	require.NoError(t, err)
	text, ok := catalog.Lookup("en", "q_start")
	assert.True(t, ok)
	assert.Equal(t, "What type of crime?", text)

	_, err = i18n.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParse_Invalid(t *testing.T) {
	_, err := i18n.Parse([]byte("en: [not, a, map]"))
	assert.Error(t, err)
}
