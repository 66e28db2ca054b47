package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/cyberdesk/pkg/adapters/file"
	"github.com/aretw0/cyberdesk/pkg/domain"
	"github.com/aretw0/cyberdesk/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tree = `{
  "start": {"query": "Q1", "options": [{"label": "Other", "value": "Other"}]},
  "aiChatStart": {"query": "Ask", "options": []}
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoader_Contract(t *testing.T) {
	ports.RunDocumentLoaderContract(t, file.NewLoader(writeFile(t, "tree.json", tree)))
	ports.RunDocumentLoaderContract(t, file.NewLoader(writeFile(t, "tree.yml", tree)))
}

func TestLoader_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := file.NewLoader(writeFile(t, "tree.txt", tree)).Load(ctx)
	assert.ErrorContains(t, err, "unsupported")

	_, err = file.NewLoader(filepath.Join(t.TempDir(), "missing.json")).Load(ctx)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = file.NewLoader(writeFile(t, "bad.json", `{"start": {"query": "x"}}`)).Load(ctx)
	assert.ErrorIs(t, err, domain.ErrMalformedDocument)
}

func TestStore_Contract(t *testing.T) {
	ports.RunNoteStoreContract(t, file.NewStore(filepath.Join(t.TempDir(), "notes")))
}

func TestStore_RejectsPathKeys(t *testing.T) {
	store := file.NewStore(t.TempDir())
	ctx := context.Background()

	for _, key := range []string{"", "../escape", "a/b", ".."} {
		assert.Error(t, store.Save(ctx, key, []byte("x")), key)
	}
}
