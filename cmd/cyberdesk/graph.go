package main

import (
	"os"

	"github.com/aretw0/cyberdesk/internal/cli"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [tree]",
	Short: "Export the decision tree as a Mermaid diagram",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("tree")
		if len(args) > 0 {
			path = args[0]
		}
		return cli.WriteGraph(cmd.Context(), path, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
