package mockapi

import (
	"fmt"
	"time"

	"github.com/lorrc/merchant-support-console/internal/domain"
)

// Seed loads the development fixtures: the two scenario users, a
// handful of merchants, a spread of tickets across every status and
// category, and the category/SLA configuration the admin screens read.
func (s *Store) Seed() error {
	admin := domain.User{
		ID:        "5f1c2a40-9a6e-4b8f-8a57-0f1fb1f2b001",
		Username:  "admin",
		Email:     "admin@example.com",
		Role:      domain.RoleAdmin,
		FirstName: "Asha",
		LastName:  "Kapoor",
	}
	agent := domain.User{
		ID:        "5f1c2a40-9a6e-4b8f-8a57-0f1fb1f2b002",
		Username:  "agent",
		Email:     "agent@example.com",
		Role:      domain.RoleSupportAgent,
		FirstName: "Tomás",
		LastName:  "Rivera",
	}
	if err := s.AddUser(admin, "admin123"); err != nil {
		return err
	}
	if err := s.AddUser(agent, "agent123"); err != nil {
		return err
	}

	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.merchants = []domain.Merchant{
		{ID: "m-001", Name: "Blue Lotus Cafe", Email: "owner@bluelotus.example", Phone: "+1-555-0101", BusinessType: "Food & Beverage", RegistrationDate: now.AddDate(-2, 0, 0), Status: domain.MerchantActive},
		{ID: "m-002", Name: "Northside Electronics", Email: "support@northside.example", Phone: "+1-555-0102", BusinessType: "Retail", RegistrationDate: now.AddDate(-1, -3, 0), Status: domain.MerchantActive},
		{ID: "m-003", Name: "Harbor Fitness", Email: "hello@harborfit.example", Phone: "+1-555-0103", BusinessType: "Services", RegistrationDate: now.AddDate(0, -8, 0), Status: domain.MerchantSuspended},
		{ID: "m-004", Name: "Cedar & Pine Books", Email: "shop@cedarpine.example", Phone: "+1-555-0104", BusinessType: "Retail", RegistrationDate: now.AddDate(0, -2, 0), Status: domain.MerchantInactive},
	}

	fixtures := []struct {
		category domain.TicketCategory
		merchant int
		status   domain.TicketStatus
		priority domain.TicketPriority
		title    string
		ageHours int
		slaHours int
	}{
		{domain.CategoryDeviceIssue, 0, domain.StatusOpen, domain.PriorityUrgent, "Card reader not powering on", 6, 24},
		{domain.CategoryDeviceIssue, 1, domain.StatusInProgress, domain.PriorityNormal, "Terminal firmware stuck mid-update", 30, 24},
		{domain.CategoryPaymentIssue, 1, domain.StatusOpen, domain.PriorityUrgent, "Settlement missing for weekend batch", 3, 12},
		{domain.CategoryPaymentIssue, 2, domain.StatusResolved, domain.PriorityNormal, "Duplicate charge on customer receipt", 80, 12},
		{domain.CategoryAdManagement, 0, domain.StatusInProgress, domain.PriorityNormal, "Campaign banner shows stale pricing", 20, 48},
		{domain.CategoryBilling, 3, domain.StatusClosed, domain.PriorityNormal, "Subscription invoiced twice", 200, 48},
		{domain.CategoryBilling, 2, domain.StatusOpen, domain.PriorityNormal, "Fee schedule question", 50, 48},
		{domain.CategoryOther, 0, domain.StatusOpen, domain.PriorityNormal, "Request to update store contact details", 10, 72},
	}

	for i, fixture := range fixtures {
		raised := now.Add(-time.Duration(fixture.ageHours) * time.Hour)
		ticket := domain.Ticket{
			ID:           fmt.Sprintf("t-%03d", i+1),
			TicketNumber: fmt.Sprintf("TCK-2026-%04d", i+1),
			MerchantID:   s.merchants[fixture.merchant].ID,
			MerchantName: s.merchants[fixture.merchant].Name,
			Category:     fixture.category,
			Status:       fixture.status,
			Priority:     fixture.priority,
			Title:        fixture.title,
			Description:  "Reported by the merchant through the support line.",
			DateRaised:   raised,
			LastUpdated:  raised,
			SLADeadline:  raised.Add(time.Duration(fixture.slaHours) * time.Hour),
			Attachments:  []domain.Attachment{},
			Notes:        []domain.TicketNote{},
		}
		if fixture.status == domain.StatusInProgress || fixture.status == domain.StatusResolved || fixture.status == domain.StatusClosed {
			ticket.AssignedAgentID = "5f1c2a40-9a6e-4b8f-8a57-0f1fb1f2b002"
			ticket.AssignedAgentName = "Tomás Rivera"
		}
		if fixture.status == domain.StatusResolved || fixture.status == domain.StatusClosed {
			hours := float64(fixture.ageHours) * 0.6
			ticket.ResolutionTime = &hours
			ticket.LastUpdated = raised.Add(time.Duration(hours) * time.Hour)
		}
		s.tickets = append(s.tickets, ticket)
	}

	s.categories = []domain.CategoryConfig{
		{ID: "c-001", Name: "Device Issue", Description: "Hardware faults on payment terminals", SLAHours: 24, IsActive: true},
		{ID: "c-002", Name: "Payment Issue", Description: "Settlement, refunds, missing funds", SLAHours: 12, IsActive: true},
		{ID: "c-003", Name: "Ad Management", Description: "In-app campaign and banner requests", SLAHours: 48, IsActive: true},
		{ID: "c-004", Name: "Billing", Description: "Fees, invoices and subscriptions", SLAHours: 48, IsActive: true},
		{ID: "c-005", Name: "Other", Description: "Anything that fits nowhere else", SLAHours: 72, IsActive: true},
	}

	s.slaConfigs = []domain.SLAConfig{
		{ID: "s-001", Category: domain.CategoryDeviceIssue, ResponseTimeHours: 2, ResolutionTimeHours: 24},
		{ID: "s-002", Category: domain.CategoryPaymentIssue, ResponseTimeHours: 1, ResolutionTimeHours: 12},
		{ID: "s-003", Category: domain.CategoryAdManagement, ResponseTimeHours: 8, ResolutionTimeHours: 48},
		{ID: "s-004", Category: domain.CategoryBilling, ResponseTimeHours: 8, ResolutionTimeHours: 48},
		{ID: "s-005", Category: domain.CategoryOther, ResponseTimeHours: 24, ResolutionTimeHours: 72},
	}

	return nil
}
