package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/thomas-vilte/relx/internal/models"
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("6")).
			Padding(0, 1)

	panelTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)

	tableKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)
)

// RenderPanel renders lines inside a rounded border, with an optional title
// line above the content.
func RenderPanel(title string, lines []string) string {
	content := strings.Join(lines, "\n")
	if title != "" {
		content = panelTitleStyle.Render(title) + "\n" + content
	}
	return panelStyle.Render(content)
}

func PrintPanel(w io.Writer, title string, lines []string) {
	_, _ = fmt.Fprintln(w, RenderPanel(title, lines))
}

// RenderInfoTable renders key/value rows with aligned, highlighted keys.
func RenderInfoTable(rows []models.InfoRow) string {
	width := 0
	for _, row := range rows {
		if len(row.Key) > width {
			width = len(row.Key)
		}
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		key := tableKeyStyle.Render(fmt.Sprintf("%-*s", width, row.Key))
		lines = append(lines, fmt.Sprintf("%s  %s", key, row.Value))
	}
	return strings.Join(lines, "\n")
}

func PrintInfoTable(w io.Writer, title string, rows []models.InfoRow) {
	_, _ = fmt.Fprintln(w, RenderPanel(title, []string{RenderInfoTable(rows)}))
}
