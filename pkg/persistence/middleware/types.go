// Package middleware wraps a ports.NoteStore with encryption at rest and PII masking.
package middleware

import "github.com/aretw0/cyberdesk/pkg/ports"

// Middleware allows wrapping a NoteStore to add behavior.
type Middleware func(ports.NoteStore) ports.NoteStore

// Chain applies mws so that the first one sees Save calls first.
func Chain(store ports.NoteStore, mws ...Middleware) ports.NoteStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
