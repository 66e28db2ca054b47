package runtime_test

import (
	"context"
	"testing"

	"github.com/aretw0/cyberdesk/internal/runtime"
	"github.com/aretw0/cyberdesk/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_LifecycleHooks(t *testing.T) {
	var entered, handoffs, resets []string
	var replies []*domain.AssistantEvent

	hooks := domain.LifecycleHooks{
		OnNodeEnter: func(_ context.Context, e *domain.NodeEvent) {
			entered = append(entered, e.NodeID)
		},
		OnHandoff: func(_ context.Context, e *domain.NodeEvent) {
			handoffs = append(handoffs, e.NodeID)
		},
		OnCaseReset: func(_ context.Context, e *domain.NodeEvent) {
			resets = append(resets, e.CaseID)
		},
		OnAssistantReply: func(_ context.Context, e *domain.AssistantEvent) {
			replies = append(replies, e)
		},
	}

	ctx := context.Background()
	engine := newEngine(t, runtime.WithLifecycleHooks(hooks))

	state, err := engine.Start(ctx)
	require.NoError(t, err)
	step, err := engine.Select(ctx, state, "a")
	require.NoError(t, err)
	step, err = engine.Select(ctx, step.Final, "New Case")
	require.NoError(t, err)
	handoff, err := engine.Select(ctx, step.Final, "Other")
	require.NoError(t, err)
	asked, _, err := engine.Ask(handoff.Final, "q")
	require.NoError(t, err)
	engine.Answer(ctx, asked, "", domain.ErrGatewayFailure, 0)

	assert.Equal(t, []string{"start", "n2", "start"}, entered)
	assert.Equal(t, []string{"start"}, handoffs)
	assert.Equal(t, []string{"case-1"}, resets)
	require.Len(t, replies, 1)
	assert.True(t, replies[0].IsError)
	assert.Equal(t, domain.EventAssistantReply, replies[0].Type)
}
