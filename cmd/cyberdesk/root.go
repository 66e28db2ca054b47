package main

import (
	"fmt"
	"os"

	"github.com/aretw0/cyberdesk/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cyberdesk",
	Short: "CyberDesk guides officers through cyber-crime complaint intake",
	Long: `CyberDesk walks a police officer through a scripted decision tree for registering
cyber-crime complaints, shows the evidence to collect at each step, and hands
free-text questions to an assistant that answers from the operating manuals.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands). Defaults come from CYBERDESK_* variables.
	defaults := config.Load()
	rootCmd.PersistentFlags().String("tree", defaults.TreePath, "Decision tree file (.yaml, .yml or .json)")
	rootCmd.PersistentFlags().String("locales", defaults.LocalePath, "Translation catalog file")
	rootCmd.PersistentFlags().String("lang", defaults.Language, "Display language")
	rootCmd.PersistentFlags().String("log-level", defaults.LogLevel, "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-format", defaults.LogFormat, "Log format: text or json")
}

// loadConfig reads the environment and applies the flags set on cmd.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Load()
	flags := cmd.Flags()

	strFlags := map[string]*string{
		"tree":          &cfg.TreePath,
		"locales":       &cfg.LocalePath,
		"lang":          &cfg.Language,
		"log-level":     &cfg.LogLevel,
		"log-format":    &cfg.LogFormat,
		"addr":          &cfg.Addr,
		"notes":         &cfg.NotesBackend,
		"assistant-url": &cfg.AssistantURL,
		"manuals":       &cfg.ManualsPath,
		"model":         &cfg.OpenAIModel,
	}
	for name, dst := range strFlags {
		if flags.Lookup(name) == nil || !flags.Changed(name) {
			continue
		}
		v, err := flags.GetString(name)
		if err != nil {
			return cfg, err
		}
		*dst = v
	}

	if flags.Lookup("pacing") != nil && flags.Changed("pacing") {
		d, err := flags.GetDuration("pacing")
		if err != nil {
			return cfg, err
		}
		cfg.Pacing = d
	}

	return cfg, cfg.Validate()
}
