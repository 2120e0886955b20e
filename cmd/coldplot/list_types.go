// cmd/coldplot/list_types.go
package coldplot

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mwiater/coldplot/internal/visualize"
)

// typesCmd implements 'list types', which prints every visualization type
// with the leaf directory naming scheme it expects.
var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the supported visualization types",
	Long:  `The 'types' subcommand lists every value accepted by --type, its description and the pattern its experiment directories must match.`,
	Run: func(cmd *cobra.Command, args []string) {
		listTypes(cmd.OutOrStdout())
	},
}

func init() {
	listCmd.AddCommand(typesCmd)
}

// listTypes writes each visualization type to w with its description and the
// directory name pattern of its runs.
func listTypes(w io.Writer) {
	nameStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	patternStyle := lipgloss.NewStyle().Faint(true)

	for _, v := range visualize.Types() {
		fmt.Fprintf(w, "%s\n  %s\n  %s\n", nameStyle.Render(v.Name()), v.Description(), patternStyle.Render(v.Layout().Pattern.String()))
	}
}
