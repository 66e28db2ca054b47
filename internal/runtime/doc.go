// Package runtime holds the pure transition functions of an intake conversation.
// Timing, serialization and the remote assistant live in pkg/session.
package runtime
