package domain

import "time"

// TicketStatus represents the lifecycle state of a ticket.
type TicketStatus string

const (
	StatusOpen       TicketStatus = "OPEN"
	StatusInProgress TicketStatus = "IN_PROGRESS"
	StatusResolved   TicketStatus = "RESOLVED"
	StatusClosed     TicketStatus = "CLOSED"
)

// TicketStatuses lists all statuses in lifecycle order.
var TicketStatuses = []TicketStatus{StatusOpen, StatusInProgress, StatusResolved, StatusClosed}

// TicketCategory classifies the merchant complaint.
type TicketCategory string

const (
	CategoryDeviceIssue  TicketCategory = "DEVICE_ISSUE"
	CategoryPaymentIssue TicketCategory = "PAYMENT_ISSUE"
	CategoryAdManagement TicketCategory = "AD_MANAGEMENT"
	CategoryBilling      TicketCategory = "BILLING"
	CategoryOther        TicketCategory = "OTHER"
)

// TicketCategories lists all known categories.
var TicketCategories = []TicketCategory{
	CategoryDeviceIssue,
	CategoryPaymentIssue,
	CategoryAdManagement,
	CategoryBilling,
	CategoryOther,
}

// TicketPriority represents the urgency of a ticket.
type TicketPriority string

const (
	PriorityNormal TicketPriority = "NORMAL"
	PriorityUrgent TicketPriority = "URGENT"
)

// TicketPriorities lists all known priorities.
var TicketPriorities = []TicketPriority{PriorityNormal, PriorityUrgent}

// Ticket is a read-mostly copy of a server-owned merchant complaint.
// The client never reconciles tickets locally; mutations go through the
// API and the affected queries are re-fetched.
type Ticket struct {
	ID                string         `json:"id"`
	TicketNumber      string         `json:"ticketNumber"`
	MerchantID        string         `json:"merchantId"`
	MerchantName      string         `json:"merchantName"`
	Category          TicketCategory `json:"category"`
	Status            TicketStatus   `json:"status"`
	Priority          TicketPriority `json:"priority"`
	Title             string         `json:"title"`
	Description       string         `json:"description"`
	DateRaised        time.Time      `json:"dateRaised"`
	LastUpdated       time.Time      `json:"lastUpdated"`
	AssignedAgentID   string         `json:"assignedAgentId,omitempty"`
	AssignedAgentName string         `json:"assignedAgentName,omitempty"`
	SLADeadline       time.Time      `json:"slaDeadline"`
	Attachments       []Attachment   `json:"attachments"`
	Notes             []TicketNote   `json:"notes"`
	ResolutionTime    *float64       `json:"resolutionTime,omitempty"`
}

// TicketNote is a comment attached to a ticket, internal or
// merchant-visible.
type TicketNote struct {
	ID         string    `json:"id"`
	TicketID   string    `json:"ticketId"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName"`
	Content    string    `json:"content"`
	IsInternal bool      `json:"isInternal"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Attachment is a file uploaded against a ticket.
type Attachment struct {
	ID         string    `json:"id"`
	FileName   string    `json:"fileName"`
	FileURL    string    `json:"fileUrl"`
	FileType   string    `json:"fileType"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// SLAProgress returns how far through its SLA window the ticket is as a
// percentage, clamped to [0, 100]. The window runs from the time the
// ticket was raised to its SLA deadline.
func (t Ticket) SLAProgress(now time.Time) float64 {
	total := t.SLADeadline.Sub(t.DateRaised)
	if total <= 0 {
		return 100
	}
	elapsed := now.Sub(t.DateRaised)
	progress := float64(elapsed) / float64(total) * 100
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}

// SLABreached reports whether the ticket is past its deadline without
// being resolved or closed.
func (t Ticket) SLABreached(now time.Time) bool {
	if t.Status == StatusResolved || t.Status == StatusClosed {
		return false
	}
	return now.After(t.SLADeadline)
}
