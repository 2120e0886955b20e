// cmd/coldplot/list_commands.go
package coldplot

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// commandsCmd implements 'list commands', which prints the command tree in
// an indented, two-column layout.
var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List all commands and subcommands in two columns",
	Long:  `The 'commands' subcommand lists all commands and subcommands in a hierarchical, indented format, with the command path in the first column and its short description in the second column.`,
	Run: func(cmd *cobra.Command, args []string) {
		listAllCommands(cmd.OutOrStdout(), rootCmd)
	},
}

func init() {
	listCmd.AddCommand(commandsCmd)
}

var (
	headingStyle     = lipgloss.NewStyle().Bold(true)
	commandPathStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	descriptionStyle = lipgloss.NewStyle().Faint(true)
)

// listAllCommands writes every command path under root with its short
// description, padded into two columns.
func listAllCommands(w io.Writer, root *cobra.Command) {
	commandData := collectCommandData(root, "", "")

	width := 0
	for _, data := range commandData {
		width = max(width, len(data.path))
	}

	fmt.Fprintln(w, headingStyle.Render("Commands and Subcommands:"))
	for _, data := range commandData {
		padding := strings.Repeat(" ", width-len(data.path)+2)
		fmt.Fprintf(w, "  %s%s%s\n", commandPathStyle.Render(data.path), padding, descriptionStyle.Render(data.description))
	}
}

type commandInfo struct {
	path        string
	description string
}

// collectCommandData flattens the command tree into path/description pairs,
// indenting each level by two spaces.
func collectCommandData(cmd *cobra.Command, parentPath string, indent string) []commandInfo {
	fullPath := cmd.Name()
	if parentPath != "" {
		fullPath = parentPath + " " + cmd.Name()
	}

	all := []commandInfo{{path: indent + fullPath, description: cmd.Short}}
	for _, sub := range cmd.Commands() {
		all = append(all, collectCommandData(sub, fullPath, indent+"  ")...)
	}
	return all
}
