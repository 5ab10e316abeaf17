package console

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lorrc/merchant-support-console/internal/api"
	"github.com/lorrc/merchant-support-console/internal/apperrors"
	"github.com/lorrc/merchant-support-console/internal/domain"
	"github.com/lorrc/merchant-support-console/internal/querycache"
)

// ticketsMode is the input mode of the tickets screen.
type ticketsMode int

const (
	modeList ticketsMode = iota
	modeSearch
	modeDetail
	modeNote
)

// ticketsModel is the filterable, pageable ticket table with
// multi-select bulk actions, spreadsheet export and a detail pane.
type ticketsModel struct {
	deps Deps

	page    int
	size    int
	filters domain.TicketFilters
	seq     int

	data    domain.Page[domain.Ticket]
	loaded  bool
	loading bool
	errText string

	cursor   int
	selected map[string]bool
	mode     ticketsMode
	busy     bool

	search textinput.Model
	note   textinput.Model

	detail    domain.Ticket
	listStale bool
}

func newTicketsModel(deps Deps) ticketsModel {
	search := textinput.New()
	search.Placeholder = "ticket number, merchant, title..."
	search.CharLimit = 80

	note := textinput.New()
	note.Placeholder = "note text"
	note.CharLimit = 500

	return ticketsModel{
		deps:     deps,
		size:     deps.Config.API.PageSize,
		selected: make(map[string]bool),
		search:   search,
		note:     note,
	}
}

func (m ticketsModel) capturingInput() bool {
	return m.mode == modeSearch || m.mode == modeNote
}

func (m ticketsModel) enter() (ticketsModel, tea.Cmd) {
	m.loading = true
	return m, m.fetch()
}

func (m ticketsModel) fetch() tea.Cmd {
	deps := m.deps
	page, size, filters, seq := m.page, m.size, m.filters, m.seq
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), deps.Config.API.RequestTimeout)
		defer cancel()
		key := querycache.KeyOf("tickets", page, size, filters)
		result, err := querycache.Query(deps.Cache, ctx, key, querycache.Options{TTL: 30 * time.Second, Retries: 1}, func(ctx context.Context) (domain.Page[domain.Ticket], error) {
			return deps.Client.Tickets(ctx, page, size, filters)
		})
		return ticketsPageMsg{page: result, err: err, seq: seq}
	}
}

// setFilters installs new filters. Any filter change moves back to the
// first page and starts a new fetch generation so a slow response for
// the old filters cannot overwrite the new list.
func (m ticketsModel) setFilters(filters domain.TicketFilters) (ticketsModel, tea.Cmd) {
	m.filters = filters
	m.page = 0
	m.cursor = 0
	m.seq++
	m.loading = true
	return m, m.fetch()
}

func (m ticketsModel) setPage(page int) (ticketsModel, tea.Cmd) {
	if page < 0 {
		page = 0
	}
	if m.loaded && m.data.TotalPages > 0 && page >= m.data.TotalPages {
		page = m.data.TotalPages - 1
	}
	if page == m.page {
		return m, nil
	}
	m.page = page
	m.cursor = 0
	m.seq++
	m.loading = true
	return m, m.fetch()
}

// refresh drops every cached ticket page and refetches the current one.
func (m ticketsModel) refresh() (ticketsModel, tea.Cmd) {
	m.deps.Cache.Invalidate("tickets")
	m.seq++
	m.loading = true
	return m, m.fetch()
}

func (m ticketsModel) selectedIDs() []string {
	ids := make([]string, 0, len(m.selected))
	for id, on := range m.selected {
		if on {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

func (m ticketsModel) bulk(status domain.TicketStatus) tea.Cmd {
	deps := m.deps
	ids := m.selectedIDs()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), deps.Config.API.RequestTimeout)
		defer cancel()
		_, err := querycache.Mutate(deps.Cache, ctx, func(ctx context.Context) (struct{}, error) {
			return struct{}{}, deps.Client.BulkUpdateStatus(ctx, ids, status)
		})
		return bulkDoneMsg{status: status, count: len(ids), err: err}
	}
}

func (m ticketsModel) export() tea.Cmd {
	deps := m.deps
	filters := m.filters
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), deps.Config.API.RequestTimeout)
		defer cancel()
		payload, err := deps.Client.ExportTickets(ctx, filters)
		if err != nil {
			return exportDoneMsg{err: err}
		}
		if err := os.MkdirAll(deps.Config.Export.Directory, 0o755); err != nil {
			return exportDoneMsg{err: err}
		}
		path := filepath.Join(deps.Config.Export.Directory, api.ExportFilename(time.Now()))
		if err := os.WriteFile(path, payload, 0o644); err != nil {
			return exportDoneMsg{err: err}
		}
		return exportDoneMsg{path: path}
	}
}

func (m ticketsModel) openDetail(id string) tea.Cmd {
	deps := m.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), deps.Config.API.RequestTimeout)
		defer cancel()
		ticket, err := deps.Client.TicketByID(ctx, id)
		return ticketDetailMsg{ticket: ticket, err: err}
	}
}

func (m ticketsModel) advanceStatus() tea.Cmd {
	deps := m.deps
	id := m.detail.ID
	next, ok := nextStatus(m.detail.Status)
	if !ok {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), deps.Config.API.RequestTimeout)
		defer cancel()
		ticket, err := querycache.Mutate(deps.Cache, ctx, func(ctx context.Context) (domain.Ticket, error) {
			return deps.Client.UpdateTicketStatus(ctx, id, next)
		})
		return ticketMutatedMsg{ticket: ticket, err: err}
	}
}

func (m ticketsModel) assignToMe() tea.Cmd {
	user := m.deps.Auth.User()
	if user == nil {
		return nil
	}
	deps := m.deps
	id, agentID := m.detail.ID, user.ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), deps.Config.API.RequestTimeout)
		defer cancel()
		ticket, err := querycache.Mutate(deps.Cache, ctx, func(ctx context.Context) (domain.Ticket, error) {
			return deps.Client.AssignTicket(ctx, id, agentID)
		})
		return ticketMutatedMsg{ticket: ticket, err: err}
	}
}

func (m ticketsModel) submitNote(content string) tea.Cmd {
	deps := m.deps
	id := m.detail.ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), deps.Config.API.RequestTimeout)
		defer cancel()
		_, err := querycache.Mutate(deps.Cache, ctx, func(ctx context.Context) (struct{}, error) {
			return struct{}{}, deps.Client.AddNote(ctx, id, content, true)
		})
		if err != nil {
			return ticketMutatedMsg{err: err}
		}
		// Re-read so the pane shows the appended note.
		ticket, err := deps.Client.TicketByID(ctx, id)
		return ticketMutatedMsg{ticket: ticket, refetch: true, err: err}
	}
}

// nextStatus is the forward transition of the lifecycle; CLOSED has no
// successor.
func nextStatus(status domain.TicketStatus) (domain.TicketStatus, bool) {
	for i, s := range domain.TicketStatuses {
		if s == status && i+1 < len(domain.TicketStatuses) {
			return domain.TicketStatuses[i+1], true
		}
	}
	return "", false
}

func (m ticketsModel) Update(msg tea.Msg) (ticketsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case ticketsPageMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.errText = apperrors.UserMessage(msg.err, "Failed to load tickets")
			return m, nil
		}
		m.errText = ""
		m.data = msg.page
		m.loaded = true
		if m.cursor >= len(m.data.Content) {
			m.cursor = 0
		}
		return m, nil

	case ticketDetailMsg:
		if msg.err != nil {
			m.deps.Notices.Error(apperrors.UserMessage(msg.err, "Failed to load ticket"))
			return m, nil
		}
		m.detail = msg.ticket
		m.mode = modeDetail
		return m, nil

	case ticketMutatedMsg:
		m.busy = false
		if msg.err != nil {
			m.deps.Notices.Error(apperrors.UserMessage(msg.err, "Update failed"))
			return m, nil
		}
		m.detail = msg.ticket
		m.listStale = true
		m.deps.Cache.Invalidate("tickets")
		m.deps.Cache.Invalidate("dashboard")
		m.deps.Notices.Success("Ticket updated")
		return m, nil

	case bulkDoneMsg:
		m.busy = false
		if msg.err != nil {
			// Selection survives a failed bulk update so the operator
			// can retry without re-picking rows.
			m.deps.Notices.Error(apperrors.UserMessage(msg.err, "Bulk update failed"))
			return m, nil
		}
		m.selected = make(map[string]bool)
		m.deps.Notices.Success(fmt.Sprintf("%d tickets marked %s", msg.count, msg.status))
		return m.refresh()

	case exportDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.deps.Notices.Error(apperrors.UserMessage(msg.err, "Export failed"))
			return m, nil
		}
		m.deps.Notices.Success("Exported to " + msg.path)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m ticketsModel) handleKey(msg tea.KeyMsg) (ticketsModel, tea.Cmd) {
	switch m.mode {
	case modeSearch:
		switch msg.String() {
		case "esc":
			m.mode = modeList
			m.search.Blur()
			return m, nil
		case "enter":
			m.mode = modeList
			m.search.Blur()
			filters := m.filters
			filters.Search = strings.TrimSpace(m.search.Value())
			return m.setFilters(filters)
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd

	case modeNote:
		switch msg.String() {
		case "esc":
			m.mode = modeDetail
			m.note.Blur()
			return m, nil
		case "enter":
			content := strings.TrimSpace(m.note.Value())
			if content == "" {
				return m, nil
			}
			m.mode = modeDetail
			m.note.Blur()
			m.note.SetValue("")
			m.busy = true
			return m, m.submitNote(content)
		}
		var cmd tea.Cmd
		m.note, cmd = m.note.Update(msg)
		return m, cmd

	case modeDetail:
		return m.handleDetailKey(msg)
	}
	return m.handleListKey(msg)
}

func (m ticketsModel) handleDetailKey(msg tea.KeyMsg) (ticketsModel, tea.Cmd) {
	keys := DefaultKeyMap
	switch {
	case key.Matches(msg, keys.Back):
		m.mode = modeList
		if m.listStale {
			m.listStale = false
			return m.refresh()
		}
		return m, nil
	case key.Matches(msg, keys.Advance):
		if m.busy {
			return m, nil
		}
		cmd := m.advanceStatus()
		if cmd != nil {
			m.busy = true
		}
		return m, cmd
	case key.Matches(msg, keys.AssignMe):
		if m.busy {
			return m, nil
		}
		cmd := m.assignToMe()
		if cmd != nil {
			m.busy = true
		}
		return m, cmd
	case key.Matches(msg, keys.AddNote):
		m.mode = modeNote
		m.note.Focus()
		return m, textinput.Blink
	}
	return m, nil
}

func (m ticketsModel) handleListKey(msg tea.KeyMsg) (ticketsModel, tea.Cmd) {
	keys := DefaultKeyMap
	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.data.Content)-1 {
			m.cursor++
		}
		return m, nil
	case key.Matches(msg, keys.PrevPage):
		return m.setPage(m.page - 1)
	case key.Matches(msg, keys.NextPage):
		return m.setPage(m.page + 1)
	case key.Matches(msg, keys.Select):
		if ticket, ok := m.current(); ok {
			m.selected[ticket.ID] = !m.selected[ticket.ID]
		}
		return m, nil
	case key.Matches(msg, keys.SelectAll):
		for _, ticket := range m.data.Content {
			m.selected[ticket.ID] = true
		}
		return m, nil
	case key.Matches(msg, keys.ClearSel):
		m.selected = make(map[string]bool)
		return m, nil
	case key.Matches(msg, keys.Open):
		if ticket, ok := m.current(); ok {
			return m, m.openDetail(ticket.ID)
		}
		return m, nil
	case key.Matches(msg, keys.Search):
		m.mode = modeSearch
		m.search.SetValue(m.filters.Search)
		m.search.Focus()
		return m, textinput.Blink
	case key.Matches(msg, keys.CycleState):
		filters := m.filters
		filters.Status = cycleFilter(filters.Status, domain.TicketStatuses)
		return m.setFilters(filters)
	case key.Matches(msg, keys.CycleCat):
		filters := m.filters
		filters.Category = cycleFilter(filters.Category, domain.TicketCategories)
		return m.setFilters(filters)
	case key.Matches(msg, keys.CyclePrio):
		filters := m.filters
		filters.Priority = cycleFilter(filters.Priority, domain.TicketPriorities)
		return m.setFilters(filters)
	case key.Matches(msg, keys.ClearFilt):
		return m.setFilters(domain.TicketFilters{})
	case key.Matches(msg, keys.BulkProgress):
		return m.startBulk(domain.StatusInProgress)
	case key.Matches(msg, keys.BulkResolve):
		return m.startBulk(domain.StatusResolved)
	case key.Matches(msg, keys.Export):
		if m.busy {
			return m, nil
		}
		m.busy = true
		return m, m.export()
	}
	return m, nil
}

func (m ticketsModel) startBulk(status domain.TicketStatus) (ticketsModel, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	if len(m.selectedIDs()) == 0 {
		m.deps.Notices.Error(apperrors.UserMessage(apperrors.ErrNoTicketsChosen, "No tickets selected"))
		return m, nil
	}
	m.busy = true
	return m, m.bulk(status)
}

func (m ticketsModel) current() (domain.Ticket, bool) {
	if m.cursor < 0 || m.cursor >= len(m.data.Content) {
		return domain.Ticket{}, false
	}
	return m.data.Content[m.cursor], true
}

// cycleFilter steps a single-value filter through: unset, each value
// in order, unset again.
func cycleFilter[T comparable](current []T, all []T) []T {
	if len(current) == 0 {
		return []T{all[0]}
	}
	for i, value := range all {
		if value == current[0] {
			if i+1 < len(all) {
				return []T{all[i+1]}
			}
			return nil
		}
	}
	return nil
}

func (m ticketsModel) View(theme Theme, width int) string {
	if m.mode == modeDetail || m.mode == modeNote {
		return m.detailView(theme)
	}

	var b strings.Builder
	b.WriteString(m.filterBar(theme))
	b.WriteString("\n")

	if m.mode == modeSearch {
		b.WriteString("Search: " + m.search.View() + "\n\n")
	}

	if !m.loaded && m.loading {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.FaintText).Render("Loading tickets..."))
		return b.String()
	}
	if m.errText != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render(m.errText) + "\n")
	}

	header := fmt.Sprintf("    %-14s %-22s %-14s %-12s %-7s %-6s %s",
		"TICKET", "MERCHANT", "CATEGORY", "STATUS", "PRIO", "SLA", "TITLE")
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground).Render(header))
	b.WriteString("\n")

	now := time.Now()
	for i, ticket := range m.data.Content {
		b.WriteString(m.row(theme, ticket, i, now))
		b.WriteString("\n")
	}
	if m.loaded && len(m.data.Content) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.FaintText).Render("No tickets match the current filters") + "\n")
	}

	footer := fmt.Sprintf("page %d/%d · %d tickets · %d selected",
		m.page+1, max(m.data.TotalPages, 1), m.data.TotalElements, len(m.selectedIDs()))
	if m.loading {
		footer += " · refreshing..."
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.HelpText).Render(footer))
	return b.String()
}

func (m ticketsModel) row(theme Theme, ticket domain.Ticket, index int, now time.Time) string {
	mark := "[ ]"
	if m.selected[ticket.ID] {
		mark = "[x]"
	}

	sla := fmt.Sprintf("%3.0f%%", ticket.SLAProgress(now))
	if ticket.SLABreached(now) {
		sla = "MISS"
	}

	status := lipgloss.NewStyle().Foreground(theme.StatusColor(ticket.Status)).Render(fmt.Sprintf("%-12s", ticket.Status))
	prio := lipgloss.NewStyle().Foreground(theme.PriorityColor(ticket.Priority)).Render(fmt.Sprintf("%-7s", ticket.Priority))

	line := fmt.Sprintf("%s %-14s %-22s %-14s %s %s %-6s %s",
		mark, ticket.TicketNumber, truncate(ticket.MerchantName, 22),
		ticket.Category, status, prio, sla, truncate(ticket.Title, 40))

	if index == m.cursor {
		return lipgloss.NewStyle().
			Background(theme.SelectedBackground).
			Foreground(theme.SelectedForeground).
			Render(line)
	}
	return line
}

func (m ticketsModel) filterBar(theme Theme) string {
	var parts []string
	if len(m.filters.Status) > 0 {
		parts = append(parts, "status="+string(m.filters.Status[0]))
	}
	if len(m.filters.Category) > 0 {
		parts = append(parts, "category="+string(m.filters.Category[0]))
	}
	if len(m.filters.Priority) > 0 {
		parts = append(parts, "priority="+string(m.filters.Priority[0]))
	}
	if m.filters.Search != "" {
		parts = append(parts, "search="+m.filters.Search)
	}
	if len(parts) == 0 {
		return lipgloss.NewStyle().Foreground(theme.FaintText).Render("filters: none (s/c/u cycle, / search, X clear)")
	}
	return lipgloss.NewStyle().Foreground(theme.NormalText).Render("filters: " + strings.Join(parts, "  "))
}

func (m ticketsModel) detailView(theme Theme) string {
	ticket := m.detail
	label := lipgloss.NewStyle().Foreground(theme.FaintText).Width(12).Render
	value := lipgloss.NewStyle().Foreground(theme.NormalText).Render

	var b strings.Builder
	title := fmt.Sprintf("%s · %s", ticket.TicketNumber, ticket.Title)
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground).Render(title))
	b.WriteString("\n\n")

	rows := [][2]string{
		{"Merchant", ticket.MerchantName},
		{"Category", string(ticket.Category)},
		{"Status", string(ticket.Status)},
		{"Priority", string(ticket.Priority)},
		{"Raised", ticket.DateRaised.Format("2006-01-02 15:04")},
		{"SLA due", ticket.SLADeadline.Format("2006-01-02 15:04")},
		{"Agent", ticket.AssignedAgentName},
	}
	for _, row := range rows {
		b.WriteString(label(row[0]) + value(row[1]) + "\n")
	}

	b.WriteString("\n" + label("Description") + "\n" + value(ticket.Description) + "\n")

	if len(ticket.Notes) > 0 {
		b.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render("Notes") + "\n")
		for _, note := range ticket.Notes {
			b.WriteString(fmt.Sprintf("  %s · %s\n    %s\n",
				note.CreatedAt.Format("2006-01-02 15:04"), note.AuthorName, note.Content))
		}
	}

	if m.mode == modeNote {
		b.WriteString("\nNote: " + m.note.View() + "\n")
	} else {
		help := "s advance status · m assign to me · n add note · esc back"
		if m.busy {
			help = "working..."
		}
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.HelpText).Render(help))
	}
	return b.String()
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	if limit <= 1 {
		return s[:limit]
	}
	return s[:limit-1] + "…"
}
