package mockapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/lorrc/merchant-support-console/internal/apperrors"
	"github.com/lorrc/merchant-support-console/internal/domain"
	"github.com/lorrc/merchant-support-console/internal/mockapi/middleware"
)

const maxPageSize = 100

// UpdateStatusRequest defines the JSON body for PATCH /tickets/{id}/status.
type UpdateStatusRequest struct {
	Status domain.TicketStatus `json:"status"`
}

// AssignRequest defines the JSON body for PATCH /tickets/{id}/assign.
type AssignRequest struct {
	AgentID string `json:"agentId"`
}

// AddNoteRequest defines the JSON body for POST /tickets/{id}/notes.
type AddNoteRequest struct {
	Content    string `json:"content"`
	IsInternal bool   `json:"isInternal"`
}

// BulkStatusRequest defines the JSON body for PATCH /tickets/bulk-status.
type BulkStatusRequest struct {
	TicketIDs []string            `json:"ticketIds"`
	Status    domain.TicketStatus `json:"status"`
}

// HandleListTickets handles GET /tickets with pagination and filters.
func (s *Server) HandleListTickets(w http.ResponseWriter, r *http.Request) {
	page, size := parsePaging(r)
	filters := parseFilters(r)
	WriteData(w, s.store.Tickets(page, size, filters))
}

// HandleGetTicket handles GET /tickets/{ticketID}.
func (s *Server) HandleGetTicket(w http.ResponseWriter, r *http.Request) {
	ticket, err := s.store.TicketByID(chi.URLParam(r, "ticketID"))
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteData(w, ticket)
}

// HandleUpdateStatus handles PATCH /tickets/{ticketID}/status.
func (s *Server) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := DecodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	ticket, err := s.store.UpdateTicketStatus(chi.URLParam(r, "ticketID"), req.Status)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteData(w, ticket)
}

// HandleAssign handles PATCH /tickets/{ticketID}/assign.
func (s *Server) HandleAssign(w http.ResponseWriter, r *http.Request) {
	var req AssignRequest
	if err := DecodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if req.AgentID == "" {
		WriteError(w, apperrors.ErrBadRequest)
		return
	}
	ticket, err := s.store.AssignTicket(chi.URLParam(r, "ticketID"), req.AgentID)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteData(w, ticket)
}

// HandleAddNote handles POST /tickets/{ticketID}/notes.
func (s *Server) HandleAddNote(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		WriteError(w, apperrors.ErrUnauthorized)
		return
	}
	author, err := s.store.UserByID(claims.UserID)
	if err != nil {
		WriteError(w, apperrors.ErrUnauthorized)
		return
	}

	var req AddNoteRequest
	if err := DecodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		WriteError(w, apperrors.ErrBadRequest)
		return
	}

	if err := s.store.AddNote(chi.URLParam(r, "ticketID"), author, req.Content, req.IsInternal); err != nil {
		WriteError(w, err)
		return
	}
	WriteMessage(w, "Note added")
}

// HandleBulkStatus handles PATCH /tickets/bulk-status.
func (s *Server) HandleBulkStatus(w http.ResponseWriter, r *http.Request) {
	var req BulkStatusRequest
	if err := DecodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if err := s.store.BulkUpdateStatus(req.TicketIDs, req.Status); err != nil {
		WriteError(w, err)
		return
	}
	WriteMessage(w, "Tickets updated")
}

// parsePaging extracts zero-based page and size from the query.
func parsePaging(r *http.Request) (page, size int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page < 0 {
		page = 0
	}
	size, err := strconv.Atoi(r.URL.Query().Get("size"))
	if err != nil || size < 1 {
		size = 10
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size
}

// parseFilters extracts ticket filters from flattened query params;
// multi-value filters arrive comma-joined.
func parseFilters(r *http.Request) domain.TicketFilters {
	query := r.URL.Query()
	return domain.TicketFilters{
		Status:          splitParam[domain.TicketStatus](query.Get("status")),
		Category:        splitParam[domain.TicketCategory](query.Get("category")),
		Priority:        splitParam[domain.TicketPriority](query.Get("priority")),
		AssignedAgentID: query.Get("assignedAgentId"),
		DateFrom:        query.Get("dateFrom"),
		DateTo:          query.Get("dateTo"),
		Search:          query.Get("search"),
	}
}

func splitParam[T ~string](raw string) []T {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	values := make([]T, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, T(trimmed))
		}
	}
	return values
}
