package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/cyberdesk"
	"github.com/aretw0/cyberdesk/internal/logging"
	"github.com/aretw0/cyberdesk/pkg/domain"
	"github.com/aretw0/cyberdesk/pkg/runner"
	"github.com/aretw0/lifecycle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDesk(t *testing.T) *cyberdesk.Desk {
	t.Helper()
	desk, err := OpenDesk(context.Background(), testConfig(t), logging.NewNop(), domain.LifecycleHooks{})
	require.NoError(t, err)
	t.Cleanup(desk.Close)
	return desk
}

func runWithin(t *testing.T, fn func() error) error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- fn() }()
	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("interactive session did not finish")
		return nil
	}
}

func TestRunInteractive_QuitCommand(t *testing.T) {
	for _, cmd := range []string{"q", "quit", "exit"} {
		t.Run(cmd, func(t *testing.T) {
			desk := openTestDesk(t)
			var out bytes.Buffer
			handler := runner.NewTextHandler(nil, &out)
			in := strings.NewReader("1\n" + cmd + "\nNew Case\n")

			err := runWithin(t, func() error {
				return RunInteractive(context.Background(), desk, handler, in, ModeInteractive, logging.NewNop())
			})
			require.NoError(t, err)

			assert.Equal(t, "phishing", desk.Snapshot().CurrentNodeID)
			assert.Contains(t, out.String(), "You: Phishing")
			assert.NotContains(t, out.String(), "--- New Case ---")
		})
	}
}

func TestRunInteractive_EndOfInput(t *testing.T) {
	desk := openTestDesk(t)
	var out bytes.Buffer
	handler := runner.NewTextHandler(nil, &out)

	err := runWithin(t, func() error {
		return RunInteractive(context.Background(), desk, handler, strings.NewReader("1"), ModeInteractive, logging.NewNop())
	})
	require.NoError(t, err)
	assert.Equal(t, "phishing", desk.Snapshot().CurrentNodeID)
}

func TestRunInteractive_JSONTreatsQuitAsData(t *testing.T) {
	desk := openTestDesk(t)
	var out bytes.Buffer
	handler := runner.NewJSONHandler(nil, &out)

	err := runWithin(t, func() error {
		return RunInteractive(context.Background(), desk, handler, strings.NewReader("quit\n\"phishing\"\n"), ModeJSON, logging.NewNop())
	})
	require.NoError(t, err)
	assert.Equal(t, "phishing", desk.Snapshot().CurrentNodeID)

	var types []string
	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		var e runner.JSONEvent
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &e))
		types = append(types, e.Type)
	}
	assert.Equal(t, []string{"render", "error", "render"}, types)
}

func TestRunInteractive_QuitCancelsSignalContext(t *testing.T) {
	sigCtx := lifecycle.NewSignalContext(context.Background())
	defer sigCtx.Stop()
	defer sigCtx.Cancel()

	desk := openTestDesk(t)
	handler := runner.NewTextHandler(nil, io.Discard)

	err := runWithin(t, func() error {
		return RunInteractive(sigCtx, desk, handler, strings.NewReader("quit\n"), ModeInteractive, logging.NewNop())
	})
	assert.NoError(t, handleExecutionError(err))
	assert.Eventually(t, func() bool { return sigCtx.Err() != nil }, time.Second, 10*time.Millisecond)
}

func TestEOFMarker(t *testing.T) {
	data, err := io.ReadAll(&eofMarker{r: strings.NewReader("a\nb")})
	require.NoError(t, err)
	assert.Equal(t, "a\nb\n"+eofCommand+"\n", string(data))

	data, err = io.ReadAll(&eofMarker{r: strings.NewReader("a\n")})
	require.NoError(t, err)
	assert.Equal(t, "a\n"+eofCommand+"\n", string(data))
}
