package console

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lorrc/merchant-support-console/internal/apperrors"
)

// loginModel is the sign-in form: two inputs, enter submits, tab moves
// between fields.
type loginModel struct {
	deps Deps

	username textinput.Model
	password textinput.Model
	focused  int
	busy     bool
	errText  string
}

func newLoginModel(deps Deps) loginModel {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 64
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return loginModel{deps: deps, username: username, password: password}
}

func (m loginModel) focusCmd() tea.Cmd {
	return textinput.Blink
}

// capturingInput reports whether keystrokes belong to the form rather
// than global bindings. The login form always owns the keyboard.
func (m loginModel) capturingInput() bool {
	return true
}

func (m loginModel) submit() tea.Cmd {
	username := strings.TrimSpace(m.username.Value())
	password := m.password.Value()
	deps := m.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), deps.Config.API.RequestTimeout)
		defer cancel()
		return loginDoneMsg{err: deps.Auth.Login(ctx, username, password)}
	}
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loginDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.errText = apperrors.UserMessage(msg.err, "Login failed")
			m.password.SetValue("")
		}
		return m, nil

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			m.focused = 1 - m.focused
			if m.focused == 0 {
				m.username.Focus()
				m.password.Blur()
			} else {
				m.password.Focus()
				m.username.Blur()
			}
			return m, textinput.Blink
		case "enter":
			if m.focused == 0 {
				m.focused = 1
				m.username.Blur()
				m.password.Focus()
				return m, textinput.Blink
			}
			m.busy = true
			m.errText = ""
			return m, m.submit()
		}
	}

	var cmd tea.Cmd
	if m.focused == 0 {
		m.username, cmd = m.username.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m loginModel) View(theme Theme, width int) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground).Render("Merchant Support Console")
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.BorderColor).
		Padding(1, 3)

	lines := []string{
		title,
		"",
		"Username  " + m.username.View(),
		"Password  " + m.password.View(),
		"",
	}
	if m.busy {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.FaintText).Render("Signing in..."))
	} else if m.errText != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Error).Render(m.errText))
	} else {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.HelpText).Render("enter to sign in"))
	}

	form := box.Render(strings.Join(lines, "\n"))
	if width > lipgloss.Width(form) {
		form = lipgloss.NewStyle().MarginLeft((width - lipgloss.Width(form)) / 2).Render(form)
	}
	return "\n\n" + form
}
