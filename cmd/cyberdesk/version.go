package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/cyberdesk"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of cyberdesk",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("cyberdesk version %s\n", strings.TrimSpace(cyberdesk.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
