package domain

// CategoryVolume is one row of the ticket-volume-by-category report.
type CategoryVolume struct {
	Category TicketCategory `json:"category"`
	Count    int            `json:"count"`
}

// SLACompliance summarizes SLA adherence over a reporting window.
type SLACompliance struct {
	TotalTickets   int     `json:"totalTickets"`
	WithinSLA      int     `json:"withinSla"`
	Breached       int     `json:"breached"`
	ComplianceRate float64 `json:"complianceRate"`
}

// AgentPerformance is one row of the per-agent performance report.
type AgentPerformance struct {
	AgentID           string  `json:"agentId"`
	AgentName         string  `json:"agentName"`
	TicketsResolved   int     `json:"ticketsResolved"`
	AvgResolutionTime float64 `json:"avgResolutionTime"`
}
