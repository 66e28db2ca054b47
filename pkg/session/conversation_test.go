package session_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aretw0/cyberdesk/internal/runtime"
	"github.com/aretw0/cyberdesk/pkg/domain"
	"github.com/aretw0/cyberdesk/pkg/ports"
	"github.com/aretw0/cyberdesk/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T) *runtime.Engine {
	t.Helper()
	doc := domain.NewDocument(
		domain.Node{
			ID:    "start",
			Query: "Q1",
			Options: []domain.Option{
				{Label: "A", Value: "a", NextStep: "n2"},
				{Label: "Other", Value: "Other"},
			},
		},
		domain.Node{ID: "n2", Query: "Q2", Checklist: []string{"item1"}},
		domain.Node{ID: "aiChatStart", Query: "Ask me"},
	)
	engine, err := runtime.NewEngine(doc)
	require.NoError(t, err)
	return engine
}

func newConversation(t *testing.T, opts ...session.Option) *session.Conversation {
	t.Helper()
	c, err := session.New(context.Background(), newEngine(t), opts...)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func waitSettled(t *testing.T, c *session.Conversation) *domain.State {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, c.Wait(ctx))
	return c.Snapshot()
}

func texts(state *domain.State) []string {
	out := make([]string, 0, len(state.Transcript))
	for _, m := range state.Transcript {
		out = append(out, string(m.Sender)+":"+m.Text)
	}
	return out
}

func TestConversation_ScriptedAdvance(t *testing.T) {
	c := newConversation(t, session.WithPacing(0))
	ctx := context.Background()

	require.NoError(t, c.Select(ctx, "a"))

	state := c.Snapshot()
	assert.Equal(t, []string{"bot:Q1", "officer:A", "bot:Q2"}, texts(state))
	assert.Equal(t, []string{"item1"}, state.Checklist)
	assert.False(t, state.Pending)
}

func TestConversation_PacedReply(t *testing.T) {
	c := newConversation(t, session.WithPacing(20*time.Millisecond))
	ctx := context.Background()

	require.NoError(t, c.Select(ctx, "a"))

	interim := c.Snapshot()
	assert.True(t, interim.Pending)
	assert.Equal(t, []string{"bot:Q1", "officer:A"}, texts(interim))

	err := c.Select(ctx, "Other")
	assert.ErrorIs(t, err, domain.ErrTurnPending)

	final := waitSettled(t, c)
	assert.False(t, final.Pending)
	assert.Equal(t, []string{"bot:Q1", "officer:A", "bot:Q2"}, texts(final))
}

func TestConversation_InvalidOption(t *testing.T) {
	c := newConversation(t, session.WithPacing(0))
	before := c.Snapshot()

	err := c.Select(context.Background(), "zzz")
	assert.ErrorIs(t, err, domain.ErrInvalidOption)
	assert.Equal(t, before, c.Snapshot())
}

func TestConversation_ResetDuringPacedReply(t *testing.T) {
	c := newConversation(t, session.WithPacing(30*time.Millisecond))
	ctx := context.Background()

	require.NoError(t, c.Select(ctx, "a"))
	require.NoError(t, c.Reset(ctx))

	final := waitSettled(t, c)
	// Give the abandoned timer a chance to fire.
	time.Sleep(60 * time.Millisecond)

	state := c.Snapshot()
	assert.Equal(t, final, state)
	assert.Equal(t, []string{"bot:Q1"}, texts(state))
	assert.Equal(t, "start", state.CurrentNodeID)
	assert.Empty(t, state.Checklist)
}

func TestConversation_ResetIssuesNewCase(t *testing.T) {
	c := newConversation(t, session.WithPacing(0))
	first := c.Snapshot().CaseID

	require.NoError(t, c.Reset(context.Background()))
	assert.NotEqual(t, first, c.Snapshot().CaseID)
}

func TestConversation_AssistantRoundTrip(t *testing.T) {
	var queries []string
	gateway := ports.GatewayFunc(func(_ context.Context, query string) (string, error) {
		queries = append(queries, query)
		return "ok", nil
	})
	c := newConversation(t, session.WithPacing(0), session.WithGateway(gateway))
	ctx := context.Background()

	err := c.Submit(ctx, "too early")
	assert.ErrorIs(t, err, domain.ErrNotFreeText)

	require.NoError(t, c.Select(ctx, "Other"))
	assert.True(t, c.Snapshot().AIModeActive())
	assert.Empty(t, c.Options())

	require.NoError(t, c.Submit(ctx, "   "))
	assert.Len(t, c.Snapshot().Transcript, 3)

	require.NoError(t, c.Submit(ctx, "What now?"))
	state := waitSettled(t, c)

	assert.Equal(t, []string{"bot:Q1", "officer:Other", "bot:Ask me", "officer:What now?", "bot:ok"}, texts(state))
	assert.Equal(t, []string{"What now?"}, queries)
	assert.Empty(t, state.PendingInput)
	assert.True(t, state.AIModeActive())
}

func TestConversation_AssistantFailure(t *testing.T) {
	gateway := ports.GatewayFunc(func(context.Context, string) (string, error) {
		return "", errors.New("connection refused")
	})
	c := newConversation(t, session.WithPacing(0), session.WithGateway(gateway))
	ctx := context.Background()

	require.NoError(t, c.Select(ctx, "Other"))
	before := len(c.Snapshot().Transcript)
	require.NoError(t, c.Submit(ctx, "q"))

	state := waitSettled(t, c)
	require.Len(t, state.Transcript, before+2)
	assert.Equal(t, domain.ApologyMessage, state.Transcript[len(state.Transcript)-1].Text)
}

func TestConversation_NoGatewayApologizes(t *testing.T) {
	c := newConversation(t, session.WithPacing(0))
	ctx := context.Background()

	require.NoError(t, c.Select(ctx, "Other"))
	require.NoError(t, c.Submit(ctx, "q"))

	state := waitSettled(t, c)
	assert.Equal(t, domain.ApologyMessage, state.Transcript[len(state.Transcript)-1].Text)
}

func TestConversation_GatewayTimeout(t *testing.T) {
	gateway := ports.GatewayFunc(func(ctx context.Context, _ string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})
	c := newConversation(t,
		session.WithPacing(0),
		session.WithGateway(gateway),
		session.WithGatewayTimeout(20*time.Millisecond),
	)
	ctx := context.Background()

	require.NoError(t, c.Select(ctx, "Other"))
	require.NoError(t, c.Submit(ctx, "q"))

	state := waitSettled(t, c)
	assert.Equal(t, domain.ApologyMessage, state.Transcript[len(state.Transcript)-1].Text)
}

func TestConversation_OverlappingSubmitRejected(t *testing.T) {
	release := make(chan struct{})
	gateway := ports.GatewayFunc(func(context.Context, string) (string, error) {
		<-release
		return "done", nil
	})
	c := newConversation(t, session.WithPacing(0), session.WithGateway(gateway))
	ctx := context.Background()

	require.NoError(t, c.Select(ctx, "Other"))
	require.NoError(t, c.Submit(ctx, "first"))

	pending := c.Snapshot()
	assert.True(t, pending.Pending)
	assert.Equal(t, "first", pending.PendingInput)

	assert.ErrorIs(t, c.Submit(ctx, "second"), domain.ErrTurnPending)

	close(release)
	state := waitSettled(t, c)
	assert.Equal(t, "bot:done", texts(state)[len(state.Transcript)-1])
}

func TestConversation_ResetDiscardsLateAnswer(t *testing.T) {
	release := make(chan struct{})
	var answered atomic.Bool
	gateway := ports.GatewayFunc(func(context.Context, string) (string, error) {
		<-release
		answered.Store(true)
		return "late", nil
	})
	c := newConversation(t, session.WithPacing(0), session.WithGateway(gateway))
	ctx := context.Background()

	require.NoError(t, c.Select(ctx, "Other"))
	require.NoError(t, c.Submit(ctx, "q"))
	require.NoError(t, c.Reset(ctx))

	close(release)
	require.Eventually(t, answered.Load, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	state := c.Snapshot()
	assert.False(t, state.Pending)
	assert.False(t, state.AIModeActive())
	assert.Equal(t, []string{"bot:Q1"}, texts(state))
}

func TestConversation_Subscribe(t *testing.T) {
	c := newConversation(t, session.WithPacing(0))
	updates, cancel := c.Subscribe()
	defer cancel()

	require.NoError(t, c.Select(context.Background(), "a"))

	select {
	case state := <-updates:
		assert.Equal(t, "n2", state.CurrentNodeID)
	case <-time.After(time.Second):
		t.Fatal("no update received")
	}

	cancel()
	_, open := <-updates
	assert.False(t, open)
}

func TestConversation_SubscribeWithSnapshot(t *testing.T) {
	c := newConversation(t, session.WithPacing(0))
	view, updates, cancel := c.SubscribeWithSnapshot()
	defer cancel()

	assert.Equal(t, c.Snapshot(), view.State)
	assert.Len(t, view.Options, 2)

	require.NoError(t, c.Select(context.Background(), "a"))
	select {
	case state := <-updates:
		diff := domain.Diff(view.State, state)
		require.NotNil(t, diff)
		require.NotNil(t, diff.Transcript)
		assert.False(t, diff.Transcript.Replaced)
	case <-time.After(time.Second):
		t.Fatal("no update received")
	}
}

// Every update a subscriber sees must come after its snapshot, even while
// another goroutine keeps changing the case.
func TestConversation_SubscribeWithSnapshotUnderLoad(t *testing.T) {
	c := newConversation(t, session.WithPacing(0))
	ctx := context.Background()

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
			}
			_ = c.Select(ctx, "a")
			_ = c.Reset(ctx)
		}
	}()
	defer func() {
		close(done)
		wg.Wait()
	}()

	for i := 0; i < 200; i++ {
		view, updates, cancel := c.SubscribeWithSnapshot()
		select {
		case state := <-updates:
			assert.NotNil(t, domain.Diff(view.State, state), "update %d repeats its snapshot", i)
		case <-time.After(time.Second):
			t.Fatal("no update received")
		}
		cancel()
	}
}

func TestConversation_WaitHonoursContext(t *testing.T) {
	c := newConversation(t, session.WithPacing(time.Hour))
	require.NoError(t, c.Select(context.Background(), "a"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, c.Wait(ctx), context.DeadlineExceeded)
}

func TestConversation_View(t *testing.T) {
	c := newConversation(t, session.WithPacing(0))
	view := c.View()
	assert.Equal(t, "Evidence Checklist", view.ChecklistTitle)
	assert.NotEmpty(t, view.ChecklistEmpty)
	assert.Len(t, view.Options, 2)
}
