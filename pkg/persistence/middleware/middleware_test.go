package middleware_test

import (
	"context"
	"crypto/rand"
	"io"
	"testing"

	"github.com/aretw0/cyberdesk/pkg/adapters/memory"
	"github.com/aretw0/cyberdesk/pkg/domain"
	"github.com/aretw0/cyberdesk/pkg/persistence/middleware"
	"github.com/aretw0/cyberdesk/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateKey(t *testing.T) []byte {
	t.Helper()
	k := make([]byte, 32)
	_, err := io.ReadFull(rand.Reader, k)
	require.NoError(t, err)
	return k
}

func encrypted(t *testing.T, next ports.NoteStore, cfg middleware.EncryptionConfig) ports.NoteStore {
	t.Helper()
	mw, err := middleware.NewEncryptionMiddleware(cfg)
	require.NoError(t, err)
	return mw(next)
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	ctx := context.Background()
	underlying := memory.NewStore()
	secure := encrypted(t, underlying, middleware.EncryptionConfig{ActiveKey: generateKey(t)})

	require.NoError(t, secure.Save(ctx, domain.NotesKey, []byte("complainant lives at 12 MG Road")))

	raw, err := underlying.Load(ctx, domain.NotesKey)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "MG Road")

	plain, err := secure.Load(ctx, domain.NotesKey)
	require.NoError(t, err)
	assert.Equal(t, "complainant lives at 12 MG Road", string(plain))
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	ctx := context.Background()
	underlying := memory.NewStore()
	oldKey, newKey := generateKey(t), generateKey(t)

	require.NoError(t, encrypted(t, underlying, middleware.EncryptionConfig{ActiveKey: oldKey}).Save(ctx, "k", []byte("old note")))

	rotated := encrypted(t, underlying, middleware.EncryptionConfig{ActiveKey: newKey, FallbackKeys: [][]byte{oldKey}})
	plain, err := rotated.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "old note", string(plain))

	withoutFallback := encrypted(t, underlying, middleware.EncryptionConfig{ActiveKey: newKey})
	_, err = withoutFallback.Load(ctx, "k")
	assert.Error(t, err)
}

func TestEncryptionMiddleware_Errors(t *testing.T) {
	_, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("short")})
	assert.Error(t, err)

	ctx := context.Background()
	underlying := memory.NewStore()
	require.NoError(t, underlying.Save(ctx, "plain", []byte("not encrypted")))
	secure := encrypted(t, underlying, middleware.EncryptionConfig{ActiveKey: generateKey(t)})

	_, err = secure.Load(ctx, "plain")
	assert.ErrorIs(t, err, middleware.ErrNotEncrypted)

	_, err = secure.Load(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNoteNotFound)
}

func TestPIIMiddleware(t *testing.T) {
	ctx := context.Background()
	underlying := memory.NewStore()
	mw, err := middleware.NewPIIMiddleware(middleware.DefaultPIIPatterns)
	require.NoError(t, err)
	store := mw(underlying)

	require.NoError(t, store.Save(ctx, "k", []byte("card 4111 1111 1111 1111, ID 1234 5678 9012, call 98765")))

	got, err := underlying.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "card ***, ID ***, call 98765", string(got))

	_, err = middleware.NewPIIMiddleware([]string{"("})
	assert.Error(t, err)
}

func TestChain_MasksBeforeEncrypting(t *testing.T) {
	ctx := context.Background()
	underlying := memory.NewStore()
	key := generateKey(t)

	pii, err := middleware.NewPIIMiddleware(middleware.DefaultPIIPatterns)
	require.NoError(t, err)
	enc, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})
	require.NoError(t, err)

	store := middleware.Chain(underlying, pii, enc)
	require.NoError(t, store.Save(ctx, "k", []byte("ID 1234 5678 9012")))

	plain, err := store.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "ID ***", string(plain))
}
