package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/lorrc/merchant-support-console/internal/domain"
)

type updateStatusRequest struct {
	Status domain.TicketStatus `json:"status"`
}

type assignRequest struct {
	AgentID string `json:"agentId"`
}

type addNoteRequest struct {
	Content    string `json:"content"`
	IsInternal bool   `json:"isInternal"`
}

type bulkStatusRequest struct {
	TicketIDs []string            `json:"ticketIds"`
	Status    domain.TicketStatus `json:"status"`
}

// Tickets fetches one page of the ticket list. Filters are flattened
// into query parameters; multi-value filters are comma-joined.
func (c *Client) Tickets(ctx context.Context, page, size int, filters domain.TicketFilters) (domain.Page[domain.Ticket], error) {
	query := filterValues(filters)
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))
	return request[domain.Page[domain.Ticket]](c, ctx, http.MethodGet, "/tickets", query, nil)
}

// TicketByID fetches a single ticket.
func (c *Client) TicketByID(ctx context.Context, id string) (domain.Ticket, error) {
	return request[domain.Ticket](c, ctx, http.MethodGet, "/tickets/"+id, nil, nil)
}

// UpdateTicketStatus transitions a ticket and returns the updated copy.
func (c *Client) UpdateTicketStatus(ctx context.Context, id string, status domain.TicketStatus) (domain.Ticket, error) {
	return request[domain.Ticket](c, ctx, http.MethodPatch, "/tickets/"+id+"/status", nil, updateStatusRequest{Status: status})
}

// AssignTicket assigns a ticket to an agent and returns the updated copy.
func (c *Client) AssignTicket(ctx context.Context, id, agentID string) (domain.Ticket, error) {
	return request[domain.Ticket](c, ctx, http.MethodPatch, "/tickets/"+id+"/assign", nil, assignRequest{AgentID: agentID})
}

// AddNote appends a note to a ticket.
func (c *Client) AddNote(ctx context.Context, ticketID, content string, isInternal bool) error {
	_, err := c.do(ctx, http.MethodPost, "/tickets/"+ticketID+"/notes", nil, addNoteRequest{
		Content:    content,
		IsInternal: isInternal,
	})
	return err
}

// BulkUpdateStatus transitions several tickets at once.
func (c *Client) BulkUpdateStatus(ctx context.Context, ticketIDs []string, status domain.TicketStatus) error {
	_, err := c.do(ctx, http.MethodPatch, "/tickets/bulk-status", nil, bulkStatusRequest{
		TicketIDs: ticketIDs,
		Status:    status,
	})
	return err
}

// filterValues flattens ticket filters into query parameters the way
// the server expects: one key per filter, multi-value filters joined
// with commas.
func filterValues(filters domain.TicketFilters) url.Values {
	query := url.Values{}
	if len(filters.Status) > 0 {
		query.Set("status", joinValues(filters.Status))
	}
	if len(filters.Category) > 0 {
		query.Set("category", joinValues(filters.Category))
	}
	if len(filters.Priority) > 0 {
		query.Set("priority", joinValues(filters.Priority))
	}
	if filters.AssignedAgentID != "" {
		query.Set("assignedAgentId", filters.AssignedAgentID)
	}
	if filters.DateFrom != "" {
		query.Set("dateFrom", filters.DateFrom)
	}
	if filters.DateTo != "" {
		query.Set("dateTo", filters.DateTo)
	}
	if filters.Search != "" {
		query.Set("search", filters.Search)
	}
	return query
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, value := range values {
		parts[i] = string(value)
	}
	return strings.Join(parts, ",")
}
