package ports

import "context"

// NoteStore persists free-text blobs (the officer's case notes) by key.
type NoteStore interface {
	// Save replaces the blob stored under key.
	Save(ctx context.Context, key string, data []byte) error

	// Load retrieves the blob stored under key.
	// Returns domain.ErrNoteNotFound if nothing was saved yet.
	Load(ctx context.Context, key string) ([]byte, error)
}
