package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/cyberdesk/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunNoteStoreContract runs a suite of tests to verify that a NoteStore implementation
// adheres to the defined interface contract.
func RunNoteStoreContract(t *testing.T, store NoteStore) {
	ctx := context.Background()
	key := "contract-notes-" + time.Now().Format("20060102150405.000000")

	t.Run("Load Missing", func(t *testing.T) {
		_, err := store.Load(ctx, key+"-missing")
		assert.ErrorIs(t, err, domain.ErrNoteNotFound)
	})

	t.Run("Save and Load", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, key, []byte("suspect used two phone numbers")))

		got, err := store.Load(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "suspect used two phone numbers", string(got))
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, key, []byte("first")))
		require.NoError(t, store.Save(ctx, key, []byte("second")))

		got, err := store.Load(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "second", string(got))
	})

	t.Run("Empty Blob", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, key, []byte{}))

		got, err := store.Load(ctx, key)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

// RunDocumentLoaderContract verifies that a loader returns a document holding the required nodes.
func RunDocumentLoaderContract(t *testing.T, loader DocumentLoader) {
	doc, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, doc)

	_, ok := doc.Lookup(domain.StartNodeID)
	assert.True(t, ok, "document must contain %q", domain.StartNodeID)
	_, ok = doc.Lookup(domain.AssistantNodeID)
	assert.True(t, ok, "document must contain %q", domain.AssistantNodeID)
}
