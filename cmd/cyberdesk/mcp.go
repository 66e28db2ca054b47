package main

import (
	"github.com/aretw0/cyberdesk/internal/cli"
	"github.com/aretw0/lifecycle"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes the intake conversation as MCP tools over stdio, so an AI client can
drive a complaint intake. Logs are written to stderr.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		sigCtx := lifecycle.NewSignalContext(cmd.Context())
		defer sigCtx.Stop()
		defer sigCtx.Cancel()
		return cli.RunMCP(sigCtx, cfg)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().String("assistant-url", "", "Assistant endpoint (overrides CYBERDESK_ASSISTANT_URL)")
}
