package main

import (
	"github.com/aretw0/cyberdesk/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an interactive intake in the terminal",
	Long: `Starts a complaint intake on stdin/stdout. Answer with an option number or label,
type "New Case" to start over, and "exit" to quit. After choosing "Other" every
line is sent to the assistant.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		jsonMode, _ := cmd.Flags().GetBool("json")
		plain, _ := cmd.Flags().GetBool("plain")
		return cli.RunSession(cfg, cli.RunOptions{JSON: jsonMode, Plain: plain})
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("json", false, "Run in JSON mode (NDJSON input/output)")
	runCmd.Flags().Bool("plain", false, "Disable the banner and markdown rendering")
	runCmd.Flags().String("assistant-url", "", "Assistant endpoint (overrides CYBERDESK_ASSISTANT_URL)")
	runCmd.Flags().Duration("pacing", 0, "Delay before scripted replies (overrides CYBERDESK_PACING)")

	// 'run' is the default when no command is given.
	rootCmd.RunE = runCmd.RunE
}
