// internal/visualize/report.go
package visualize

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
)

// SummaryTable renders the per-run statistics of res for the terminal.
func SummaryTable(res Result) string {
	rows := make([][]string, 0, len(res.Runs))
	for _, r := range res.Runs {
		rows = append(rows, []string{
			r.Name,
			strconv.Itoa(r.Category),
			strconv.FormatFloat(r.X, 'g', -1, 64),
			strconv.Itoa(r.Count),
			ms(r.Median),
			ms(r.P95),
			ms(r.Mean),
			ms(r.StdDev),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("238"))).
		Headers("RUN", "CATEGORY", "X", "N", "MEDIAN", "P95", "MEAN", "STDDEV").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return cellStyle
			default:
				return numberStyle
			}
		})

	return titleStyle.Render(res.Title) + "\n" + t.Render() + "\n"
}

func ms(v float64) string {
	return fmt.Sprintf("%.1f", v)
}
