/*
Package cyberdesk is a guided intake assistant for police officers registering cyber-crime complaints.

An intake follows a decision tree: each node asks a question, offers options and may
carry an evidence checklist or a complaint template. Two option values are reserved.
"Other" hands the case off to a remote AI assistant that answers free-text questions
from the operating manuals. "New Case" discards the current case and starts over.

# Architecture

The pure engine (internal/runtime) computes the next state from the current state and
a selection. A session.Conversation owns one live case: it serializes actions, paces
scripted replies and calls the assistant gateway off the caller's goroutine. Adapters
expose the conversation as a terminal loop (pkg/runner), an HTTP API with server-sent
events (pkg/adapters/http) and an MCP tool server (pkg/adapters/mcp).

# Usage

	desk, err := cyberdesk.New(ctx, "examples/intake/tree.yaml",
		cyberdesk.WithGateway(assistant.NewClient(assistant.DefaultEndpoint)),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer desk.Close()

	for _, opt := range desk.Options() {
		fmt.Println(opt.Label)
	}
	if err := desk.Select(ctx, "Other"); err != nil {
		log.Fatal(err)
	}
	_ = desk.Wait(ctx)
	_ = desk.Submit(ctx, "How do I preserve chat logs?")
*/
package cyberdesk
