package cli

import (
	"context"
	"os"

	"github.com/aretw0/cyberdesk"
	"github.com/aretw0/cyberdesk/internal/config"
	"github.com/aretw0/cyberdesk/pkg/adapters/mcp"
	"github.com/aretw0/cyberdesk/pkg/observability"
)

// RunMCP serves the conversation as MCP tools over stdio. Logs go to stderr.
func RunMCP(ctx context.Context, cfg config.Config) error {
	logger, err := NewLogger(cfg)
	if err != nil {
		return err
	}

	desk, err := OpenDesk(ctx, cfg, logger, observability.LogHooks(logger))
	if err != nil {
		return err
	}
	defer desk.Close()

	logger.Info("Starting CyberDesk MCP server (stdio)", "tree", cfg.TreePath)
	return mcp.NewServer(desk, desk.Document(), cyberdesk.Version, logger).Serve(ctx, os.Stdin, os.Stdout)
}
