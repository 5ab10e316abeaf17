package console

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// reportsModel is the placeholder reports screen. The report endpoints
// exist on the client; chart rendering is deliberately out of scope.
type reportsModel struct{}

func (reportsModel) View(theme Theme) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground).Render("Reports")
	body := lipgloss.NewStyle().Foreground(theme.FaintText).Render(strings.Join([]string{
		"Report rendering is not available in the console yet.",
		"",
		"The API exposes ticket volume by category, SLA compliance and",
		"agent performance; use the spreadsheet export (e on the ticket",
		"list) for offline analysis in the meantime.",
	}, "\n"))
	return title + "\n\n" + body
}
