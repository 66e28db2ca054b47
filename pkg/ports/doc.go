/*
Package ports defines the driven ports (interfaces) for the cyberdesk engine.

These interfaces decouple the core logic from external implementations, allowing
the engine to work with various document sources, note backends and assistant gateways.

# Key Interfaces

  - DocumentLoader: Responsible for loading the decision tree (e.g., from a file or memory).
  - NoteStore: Persists the officer's free-text case notes.
  - Gateway: Sends a free-text query to the remote assistant.
*/
package ports
