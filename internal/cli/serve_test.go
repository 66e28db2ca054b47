package cli

import (
	"bufio"
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/aretw0/cyberdesk/internal/config"
	"github.com/aretw0/cyberdesk/internal/logging"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freeAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())
	return addr
}

func TestServe_ShutdownEndsEventStreams(t *testing.T) {
	cfg := testConfig(t)
	cfg.Addr = freeAddr(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := make(chan error, 1)
	go func() { errCh <- Serve(ctx, cfg, logging.NewNop()) }()

	var resp *http.Response
	require.Eventually(t, func() bool {
		r, err := http.Get("http://" + cfg.Addr + "/api/session/events")
		if err != nil {
			return false
		}
		resp = r
		return true
	}, 2*time.Second, 20*time.Millisecond)
	defer resp.Body.Close()

	line, err := bufio.NewReader(resp.Body).ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: snapshot\n", line)

	started := time.Now()
	cancel()
	select {
	case err := <-errCh:
		require.NoError(t, err)
		assert.Less(t, time.Since(started), shutdownTimeout/2)
	case <-time.After(shutdownTimeout):
		t.Fatal("Serve waited out the shutdown timeout with an event stream open")
	}
}

type failingEmbedder struct{}

func (failingEmbedder) CreateEmbeddings(context.Context, openai.EmbeddingRequestConverter) (openai.EmbeddingResponse, error) {
	return openai.EmbeddingResponse{}, assert.AnError
}

func TestOpenManuals(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	cfg.ManualsPath = writeFile(t, "sop.txt", "Intro page\fFreeze the UPI transaction through the bank.")
	cfg.Retrieval = config.RetrievalKeyword

	r, err := OpenManuals(ctx, cfg, nil, logging.NewNop())
	require.NoError(t, err)
	got, err := r.Retrieve(ctx, "freeze UPI", 3)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "sop.txt", got[0].Source)
	assert.Equal(t, 2, got[0].Page)

	cfg.Retrieval = config.RetrievalEmbedding
	_, err = OpenManuals(ctx, cfg, failingEmbedder{}, logging.NewNop())
	assert.ErrorIs(t, err, assert.AnError)

	cfg.Retrieval = "grep"
	_, err = OpenManuals(ctx, cfg, nil, logging.NewNop())
	assert.Error(t, err)

	cfg.Retrieval = config.RetrievalKeyword
	cfg.ManualsPath = cfg.ManualsPath + ".missing"
	_, err = OpenManuals(ctx, cfg, nil, logging.NewNop())
	assert.Error(t, err)
}
