// cmd/coldplot/list.go
package coldplot

import (
	"github.com/spf13/cobra"
)

// listCmd groups the subcommands that list information about coldplot.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Group commands for listing information",
	Long:  `The 'list' command groups subcommands that list visualization types or commands. It performs no action on its own.`,
}

func init() {
	rootCmd.AddCommand(listCmd)
}
