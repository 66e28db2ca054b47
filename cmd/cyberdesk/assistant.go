package main

import (
	"strings"

	"github.com/aretw0/cyberdesk/internal/cli"
	"github.com/aretw0/lifecycle"
	"github.com/spf13/cobra"
)

var assistantCmd = &cobra.Command{
	Use:   "assistant",
	Short: "Start the manuals-backed assistant backend",
	Long: `Serves POST /ask, answering officer questions strictly from the operating manuals
through an OpenAI-compatible chat model. Manuals are split into page-tagged
excerpts and only the most relevant ones are sent with each question.
Requires OPENAI_API_KEY.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("listen"); addr != "" {
			cfg.AssistantAddr = addr
		}
		if mode, _ := cmd.Flags().GetString("retrieval"); mode != "" {
			cfg.Retrieval = strings.ToLower(mode)
		}
		if k, _ := cmd.Flags().GetInt("top-k"); k > 0 {
			cfg.TopK = k
		}
		logger, err := cli.NewLogger(cfg)
		if err != nil {
			return err
		}

		sigCtx := lifecycle.NewSignalContext(cmd.Context())
		defer sigCtx.Stop()
		defer sigCtx.Cancel()
		return cli.ServeAssistant(sigCtx, cfg, logger)
	},
}

func init() {
	rootCmd.AddCommand(assistantCmd)
	assistantCmd.Flags().String("listen", "", "Listen address (overrides CYBERDESK_ASSISTANT_ADDR)")
	assistantCmd.Flags().String("manuals", "", "Manual file or directory of .pdf, .txt and .md manuals (overrides CYBERDESK_MANUALS)")
	assistantCmd.Flags().String("retrieval", "", "Excerpt retrieval: embedding or keyword (overrides CYBERDESK_RETRIEVAL)")
	assistantCmd.Flags().Int("top-k", 0, "Manual excerpts sent per question (overrides CYBERDESK_TOP_K)")
	assistantCmd.Flags().String("model", "", "Chat model (overrides OPENAI_MODEL_CHAT)")
}
