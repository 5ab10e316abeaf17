package console

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// configurationModel is the placeholder system-configuration screen.
// The route itself is admin-only; the guard redirects everyone else to
// the dashboard before this view ever renders.
type configurationModel struct{}

func (configurationModel) View(theme Theme) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground).Render("System Configuration")
	body := lipgloss.NewStyle().Foreground(theme.FaintText).Render(strings.Join([]string{
		"Category and SLA management is not editable from the console",
		"yet. The API endpoints are in place; edits go through the",
		"admin HTTP tooling for now.",
	}, "\n"))
	return title + "\n\n" + body
}
