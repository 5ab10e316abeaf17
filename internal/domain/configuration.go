package domain

// CategoryConfig is an admin-managed ticket category definition.
type CategoryConfig struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	SLAHours    int    `json:"slaHours"`
	IsActive    bool   `json:"isActive"`
}

// SLAConfig holds the per-category response and resolution targets.
type SLAConfig struct {
	ID                  string         `json:"id"`
	Category            TicketCategory `json:"category"`
	ResponseTimeHours   int            `json:"responseTimeHours"`
	ResolutionTimeHours int            `json:"resolutionTimeHours"`
}
