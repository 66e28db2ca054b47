package runner_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/aretw0/cyberdesk/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONHandler_Flow(t *testing.T) {
	conv := newConversation(t, nil)
	var out bytes.Buffer
	handler := runner.NewJSONHandler(strings.NewReader("\"phishing\"\n"), &out)

	require.NoError(t, runner.New(runner.WithHandler(handler)).Run(context.Background(), conv))

	var events []runner.JSONEvent
	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		var e runner.JSONEvent
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &e))
		events = append(events, e)
	}

	require.Len(t, events, 2)
	assert.Equal(t, "render", events[0].Type)
	assert.Equal(t, "What type of crime?", events[0].Messages[0].Text)
	require.NotNil(t, events[1].View)
	assert.Equal(t, []string{"Email headers"}, events[1].View.State.Checklist)
	assert.Len(t, events[1].Messages, 2)
}
