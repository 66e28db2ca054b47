package main

import (
	"github.com/aretw0/cyberdesk/internal/cli"
	"github.com/aretw0/lifecycle"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the intake HTTP API",
	Long: `Serves the live intake conversation as a JSON API with server-sent events,
case notes storage and Prometheus metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger, err := cli.NewLogger(cfg)
		if err != nil {
			return err
		}

		sigCtx := lifecycle.NewSignalContext(cmd.Context())
		defer sigCtx.Stop()
		defer sigCtx.Cancel()
		return cli.Serve(sigCtx, cfg, logger)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address (overrides CYBERDESK_ADDR)")
	serveCmd.Flags().String("notes", "", "Case notes backend: memory, file, redis or postgres")
	serveCmd.Flags().String("assistant-url", "", "Assistant endpoint (overrides CYBERDESK_ASSISTANT_URL)")
	serveCmd.Flags().Duration("pacing", 0, "Delay before scripted replies (overrides CYBERDESK_PACING)")
}
