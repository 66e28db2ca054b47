package main

import (
	"os"

	"github.com/aretw0/cyberdesk/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [tree]",
	Short: "Check the decision tree for consistency",
	Long:  `Reports missing required nodes, dangling nextStep references, duplicate option values and nodes unreachable from start.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("tree")
		if len(args) > 0 {
			path = args[0]
		}
		return cli.ValidateTree(cmd.Context(), path, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
