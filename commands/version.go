package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags.
var Version = "1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the mouseminder version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("mouseminder v%s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
