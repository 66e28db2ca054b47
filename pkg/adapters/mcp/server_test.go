package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/aretw0/cyberdesk/internal/logging"
	"github.com/aretw0/cyberdesk/internal/runtime"
	"github.com/aretw0/cyberdesk/pkg/domain"
	"github.com/aretw0/cyberdesk/pkg/ports"
	"github.com/aretw0/cyberdesk/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *Server {
	t.Helper()
	doc := domain.NewDocument(
		domain.Node{ID: "start", Query: "Q1", Options: []domain.Option{
			{Label: "A", Value: "a", NextStep: "n2"},
			{Label: "Other", Value: "Other"},
		}},
		domain.Node{ID: "n2", Query: "Q2", Checklist: []string{"item1"}},
		domain.Node{ID: "aiChatStart", Query: "Ask me"},
	)
	engine, err := runtime.NewEngine(doc)
	require.NoError(t, err)
	gateway := ports.GatewayFunc(func(_ context.Context, q string) (string, error) { return "re: " + q, nil })
	conv, err := session.New(context.Background(), engine, session.WithPacing(0), session.WithGateway(gateway))
	require.NoError(t, err)
	t.Cleanup(conv.Close)

	return NewServer(conv, doc, "test", logging.NewNop())
}

func TestServer_SelectAndAsk(t *testing.T) {
	s := newServer(t)
	ctx := context.Background()

	resp, err := s.handleGetSession(ctx, mcp.CallToolRequest{}, nil)
	require.NoError(t, err)
	assert.Len(t, resp.View.Options, 2)

	resp, err = s.handleSelect(ctx, mcp.CallToolRequest{}, map[string]interface{}{"value": "a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"item1"}, resp.View.State.Checklist)

	_, err = s.handleSelect(ctx, mcp.CallToolRequest{}, map[string]interface{}{"value": "zzz"})
	assert.ErrorIs(t, err, domain.ErrInvalidOption)

	resp, err = s.handleNewCase(ctx, mcp.CallToolRequest{}, nil)
	require.NoError(t, err)
	assert.Len(t, resp.View.State.Transcript, 1)

	_, err = s.handleSelect(ctx, mcp.CallToolRequest{}, map[string]interface{}{"value": "Other"})
	require.NoError(t, err)

	resp, err = s.handleMessage(ctx, mcp.CallToolRequest{}, map[string]interface{}{"text": "hello"})
	require.NoError(t, err)
	last := resp.View.State.Transcript[len(resp.View.State.Transcript)-1]
	assert.Equal(t, "re: hello", last.Text)
}

func TestServer_MessageOutsideAssistantMode(t *testing.T) {
	s := newServer(t)
	_, err := s.handleMessage(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{"text": "hello"})
	assert.ErrorIs(t, err, domain.ErrNotFreeText)
}

func TestServer_GraphResource(t *testing.T) {
	s := newServer(t)
	text, err := s.graphJSON()
	require.NoError(t, err)

	var g GraphDocument
	require.NoError(t, json.Unmarshal([]byte(text), &g))
	assert.Contains(t, g.Nodes, "start")
	assert.Contains(t, g.Mermaid, "graph TD")
}

func TestServe_StdioUntilCancelled(t *testing.T) {
	s := newServer(t)
	inR, inW := io.Pipe()
	outR, outW := io.Pipe()
	t.Cleanup(func() {
		_ = inW.Close()
		_ = outR.Close()
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, inR, outW) }()

	go func() {
		_, _ = io.WriteString(inW, `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05","capabilities":{},"clientInfo":{"name":"test","version":"1"}}}`+"\n")
	}()

	line, err := bufio.NewReader(outR).ReadString('\n')
	require.NoError(t, err)
	assert.Contains(t, line, "cyberdesk-mcp")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
