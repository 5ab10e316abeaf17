package domain

// TicketFilters are the transient query parameters for the ticket list.
// They are rebuilt per screen load and never persisted; the server does
// the actual filtering.
type TicketFilters struct {
	Status          []TicketStatus
	Category        []TicketCategory
	Priority        []TicketPriority
	AssignedAgentID string
	DateFrom        string // YYYY-MM-DD
	DateTo          string // YYYY-MM-DD
	Search          string
}

// IsZero reports whether no filter is set.
func (f TicketFilters) IsZero() bool {
	return len(f.Status) == 0 &&
		len(f.Category) == 0 &&
		len(f.Priority) == 0 &&
		f.AssignedAgentID == "" &&
		f.DateFrom == "" &&
		f.DateTo == "" &&
		f.Search == ""
}

// Page is the server's pagination envelope for list endpoints.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Size          int   `json:"size"`
	Number        int   `json:"number"`
}
