package mockapi

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/lorrc/merchant-support-console/internal/apperrors"
	"github.com/lorrc/merchant-support-console/internal/domain"
)

// account pairs a user with their bcrypt password hash.
type account struct {
	user         domain.User
	passwordHash []byte
}

// Store is the in-memory fixture data behind the mock API. It stands
// in for the production system's persistence so the console can be
// developed and tested without a real backend.
type Store struct {
	mu         sync.RWMutex
	accounts   map[string]account // keyed by username
	merchants  []domain.Merchant
	tickets    []domain.Ticket
	categories []domain.CategoryConfig
	slaConfigs []domain.SLAConfig
	now        func() time.Time
}

// NewStore creates an empty store. Call Seed to load fixtures.
func NewStore() *Store {
	return &Store{
		accounts: make(map[string]account),
		now:      time.Now,
	}
}

// AddUser registers an account with a bcrypt-hashed password.
func (s *Store) AddUser(user domain.User, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password for %s: %w", user.Username, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[user.Username] = account{user: user, passwordHash: hash}
	return nil
}

// Authenticate verifies credentials and returns the matching user.
func (s *Store) Authenticate(username, password string) (domain.User, error) {
	s.mu.RLock()
	acct, ok := s.accounts[username]
	s.mu.RUnlock()
	if !ok {
		// Don't reveal whether the username exists.
		return domain.User{}, apperrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(acct.passwordHash, []byte(password)); err != nil {
		return domain.User{}, apperrors.ErrInvalidCredentials
	}
	return acct.user, nil
}

// UserByID returns a user by ID.
func (s *Store) UserByID(id string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, acct := range s.accounts {
		if acct.user.ID == id {
			return acct.user, nil
		}
	}
	return domain.User{}, apperrors.ErrNotFound
}

// Tickets returns one page of tickets matching the filters, newest
// first. Page numbers are zero-based, matching the remote contract.
func (s *Store) Tickets(page, size int, filters domain.TicketFilters) domain.Page[domain.Ticket] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]domain.Ticket, 0, len(s.tickets))
	for _, ticket := range s.tickets {
		if s.matches(ticket, filters) {
			matched = append(matched, ticket)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].DateRaised.After(matched[j].DateRaised)
	})

	total := len(matched)
	if size < 1 {
		size = 10
	}
	totalPages := (total + size - 1) / size
	start := page * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	return domain.Page[domain.Ticket]{
		Content:       matched[start:end],
		TotalElements: int64(total),
		TotalPages:    totalPages,
		Size:          size,
		Number:        page,
	}
}

// FilteredTickets returns all tickets matching the filters, used by
// the spreadsheet export.
func (s *Store) FilteredTickets(filters domain.TicketFilters) []domain.Ticket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matched := make([]domain.Ticket, 0, len(s.tickets))
	for _, ticket := range s.tickets {
		if s.matches(ticket, filters) {
			matched = append(matched, ticket)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].DateRaised.After(matched[j].DateRaised)
	})
	return matched
}

func (s *Store) matches(ticket domain.Ticket, filters domain.TicketFilters) bool {
	if len(filters.Status) > 0 && !contains(filters.Status, ticket.Status) {
		return false
	}
	if len(filters.Category) > 0 && !contains(filters.Category, ticket.Category) {
		return false
	}
	if len(filters.Priority) > 0 && !contains(filters.Priority, ticket.Priority) {
		return false
	}
	if filters.AssignedAgentID != "" && ticket.AssignedAgentID != filters.AssignedAgentID {
		return false
	}
	if filters.DateFrom != "" {
		if from, err := time.Parse("2006-01-02", filters.DateFrom); err == nil && ticket.DateRaised.Before(from) {
			return false
		}
	}
	if filters.DateTo != "" {
		if to, err := time.Parse("2006-01-02", filters.DateTo); err == nil && ticket.DateRaised.After(to.AddDate(0, 0, 1)) {
			return false
		}
	}
	if filters.Search != "" {
		needle := strings.ToLower(filters.Search)
		haystack := strings.ToLower(ticket.Title + " " + ticket.Description + " " + ticket.TicketNumber + " " + ticket.MerchantName)
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}

func contains[T comparable](values []T, value T) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

// TicketByID returns a ticket by ID.
func (s *Store) TicketByID(id string) (domain.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ticket := range s.tickets {
		if ticket.ID == id {
			return ticket, nil
		}
	}
	return domain.Ticket{}, apperrors.ErrNotFound
}

// UpdateTicketStatus transitions a ticket and returns the updated copy.
func (s *Store) UpdateTicketStatus(id string, status domain.TicketStatus) (domain.Ticket, error) {
	if !contains(domain.TicketStatuses, status) {
		return domain.Ticket{}, apperrors.ErrInvalidStatus
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tickets {
		if s.tickets[i].ID != id {
			continue
		}
		now := s.now()
		s.tickets[i].Status = status
		s.tickets[i].LastUpdated = now
		if status == domain.StatusResolved || status == domain.StatusClosed {
			hours := now.Sub(s.tickets[i].DateRaised).Hours()
			s.tickets[i].ResolutionTime = &hours
		}
		return s.tickets[i], nil
	}
	return domain.Ticket{}, apperrors.ErrNotFound
}

// AssignTicket assigns a ticket to an agent.
func (s *Store) AssignTicket(id, agentID string) (domain.Ticket, error) {
	agent, err := s.UserByID(agentID)
	if err != nil {
		return domain.Ticket{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tickets {
		if s.tickets[i].ID != id {
			continue
		}
		s.tickets[i].AssignedAgentID = agent.ID
		s.tickets[i].AssignedAgentName = agent.FullName()
		s.tickets[i].LastUpdated = s.now()
		return s.tickets[i], nil
	}
	return domain.Ticket{}, apperrors.ErrNotFound
}

// AddNote appends a note to a ticket.
func (s *Store) AddNote(ticketID string, author domain.User, content string, isInternal bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tickets {
		if s.tickets[i].ID != ticketID {
			continue
		}
		now := s.now()
		s.tickets[i].Notes = append(s.tickets[i].Notes, domain.TicketNote{
			ID:         uuid.NewString(),
			TicketID:   ticketID,
			AuthorID:   author.ID,
			AuthorName: author.FullName(),
			Content:    content,
			IsInternal: isInternal,
			CreatedAt:  now,
		})
		s.tickets[i].LastUpdated = now
		return nil
	}
	return apperrors.ErrNotFound
}

// BulkUpdateStatus transitions several tickets. The whole batch is
// validated before any ticket changes.
func (s *Store) BulkUpdateStatus(ticketIDs []string, status domain.TicketStatus) error {
	if len(ticketIDs) == 0 {
		return apperrors.ErrNoTicketsChosen
	}
	if !contains(domain.TicketStatuses, status) {
		return apperrors.ErrInvalidStatus
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	indexes := make([]int, 0, len(ticketIDs))
	for _, id := range ticketIDs {
		found := -1
		for i := range s.tickets {
			if s.tickets[i].ID == id {
				found = i
				break
			}
		}
		if found < 0 {
			return apperrors.ErrNotFound
		}
		indexes = append(indexes, found)
	}

	now := s.now()
	for _, i := range indexes {
		s.tickets[i].Status = status
		s.tickets[i].LastUpdated = now
	}
	return nil
}

// Merchants returns one page of merchants.
func (s *Store) Merchants(page, size int) domain.Page[domain.Merchant] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := len(s.merchants)
	if size < 1 {
		size = 10
	}
	totalPages := (total + size - 1) / size
	start := page * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}
	return domain.Page[domain.Merchant]{
		Content:       s.merchants[start:end],
		TotalElements: int64(total),
		TotalPages:    totalPages,
		Size:          size,
		Number:        page,
	}
}

// MerchantByID returns a merchant by ID.
func (s *Store) MerchantByID(id string) (domain.Merchant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, merchant := range s.merchants {
		if merchant.ID == id {
			return merchant, nil
		}
	}
	return domain.Merchant{}, apperrors.ErrNotFound
}

// UpdateMerchant applies a partial edit to a merchant.
func (s *Store) UpdateMerchant(id string, name, email, phone, businessType string, status domain.MerchantStatus) (domain.Merchant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.merchants {
		if s.merchants[i].ID != id {
			continue
		}
		if name != "" {
			s.merchants[i].Name = name
		}
		if email != "" {
			s.merchants[i].Email = email
		}
		if phone != "" {
			s.merchants[i].Phone = phone
		}
		if businessType != "" {
			s.merchants[i].BusinessType = businessType
		}
		if status != "" {
			s.merchants[i].Status = status
		}
		return s.merchants[i], nil
	}
	return domain.Merchant{}, apperrors.ErrNotFound
}

// Categories returns all category definitions.
func (s *Store) Categories() []domain.CategoryConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.CategoryConfig, len(s.categories))
	copy(out, s.categories)
	return out
}

// CreateCategory adds a category definition.
func (s *Store) CreateCategory(name, description string, slaHours int, isActive bool) domain.CategoryConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	category := domain.CategoryConfig{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		SLAHours:    slaHours,
		IsActive:    isActive,
	}
	s.categories = append(s.categories, category)
	return category
}

// UpdateCategory edits a category definition.
func (s *Store) UpdateCategory(id, name, description string, slaHours int, isActive bool) (domain.CategoryConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.categories {
		if s.categories[i].ID != id {
			continue
		}
		s.categories[i].Name = name
		s.categories[i].Description = description
		s.categories[i].SLAHours = slaHours
		s.categories[i].IsActive = isActive
		return s.categories[i], nil
	}
	return domain.CategoryConfig{}, apperrors.ErrNotFound
}

// DeleteCategory removes a category definition.
func (s *Store) DeleteCategory(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.categories {
		if s.categories[i].ID == id {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

// SLAConfigs returns the per-category SLA targets.
func (s *Store) SLAConfigs() []domain.SLAConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.SLAConfig, len(s.slaConfigs))
	copy(out, s.slaConfigs)
	return out
}

// UpdateSLAConfig edits one SLA configuration.
func (s *Store) UpdateSLAConfig(id string, responseHours, resolutionHours int) (domain.SLAConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.slaConfigs {
		if s.slaConfigs[i].ID != id {
			continue
		}
		s.slaConfigs[i].ResponseTimeHours = responseHours
		s.slaConfigs[i].ResolutionTimeHours = resolutionHours
		return s.slaConfigs[i], nil
	}
	return domain.SLAConfig{}, apperrors.ErrNotFound
}

// DashboardStats computes the aggregate snapshot from current tickets.
func (s *Store) DashboardStats() domain.DashboardStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	stats := domain.DashboardStats{
		TotalTickets:         len(s.tickets),
		CustomerSatisfaction: 4.2, // fixture: no survey pipeline behind the mock
	}
	var resolved int
	var totalResolution float64
	for _, ticket := range s.tickets {
		switch ticket.Status {
		case domain.StatusOpen:
			stats.OpenTickets++
		case domain.StatusInProgress:
			stats.InProgressTickets++
		}
		if ticket.SLABreached(now) {
			stats.SLABreaches++
		}
		if ticket.ResolutionTime != nil {
			resolved++
			totalResolution += *ticket.ResolutionTime
		}
	}
	if resolved > 0 {
		stats.AvgResolutionTime = totalResolution / float64(resolved)
	}
	return stats
}

// VolumeByCategory computes the ticket-volume report over a window.
func (s *Store) VolumeByCategory(from, to string) []domain.CategoryVolume {
	tickets := s.FilteredTickets(domain.TicketFilters{DateFrom: from, DateTo: to})
	counts := make(map[domain.TicketCategory]int)
	for _, ticket := range tickets {
		counts[ticket.Category]++
	}
	volumes := make([]domain.CategoryVolume, 0, len(domain.TicketCategories))
	for _, category := range domain.TicketCategories {
		volumes = append(volumes, domain.CategoryVolume{Category: category, Count: counts[category]})
	}
	return volumes
}

// SLAComplianceReport computes SLA adherence over a window.
func (s *Store) SLAComplianceReport(from, to string) domain.SLACompliance {
	tickets := s.FilteredTickets(domain.TicketFilters{DateFrom: from, DateTo: to})
	now := s.now()
	report := domain.SLACompliance{TotalTickets: len(tickets)}
	for _, ticket := range tickets {
		if ticket.SLABreached(now) {
			report.Breached++
		} else {
			report.WithinSLA++
		}
	}
	if report.TotalTickets > 0 {
		report.ComplianceRate = float64(report.WithinSLA) / float64(report.TotalTickets) * 100
	}
	return report
}

// AgentPerformanceReport computes per-agent resolution stats over a window.
func (s *Store) AgentPerformanceReport(from, to string) []domain.AgentPerformance {
	tickets := s.FilteredTickets(domain.TicketFilters{DateFrom: from, DateTo: to})
	type bucket struct {
		name     string
		resolved int
		total    float64
	}
	buckets := make(map[string]*bucket)
	for _, ticket := range tickets {
		if ticket.AssignedAgentID == "" || ticket.ResolutionTime == nil {
			continue
		}
		b, ok := buckets[ticket.AssignedAgentID]
		if !ok {
			b = &bucket{name: ticket.AssignedAgentName}
			buckets[ticket.AssignedAgentID] = b
		}
		b.resolved++
		b.total += *ticket.ResolutionTime
	}

	rows := make([]domain.AgentPerformance, 0, len(buckets))
	for agentID, b := range buckets {
		rows = append(rows, domain.AgentPerformance{
			AgentID:           agentID,
			AgentName:         b.name,
			TicketsResolved:   b.resolved,
			AvgResolutionTime: b.total / float64(b.resolved),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].TicketsResolved > rows[j].TicketsResolved })
	return rows
}
