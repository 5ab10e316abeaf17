package domain

// DashboardStats is the aggregate snapshot shown on the dashboard.
// Computed server-side; the console renders it as-is.
type DashboardStats struct {
	OpenTickets          int     `json:"openTickets"`
	InProgressTickets    int     `json:"inProgressTickets"`
	SLABreaches          int     `json:"slaBreaches"`
	TotalTickets         int     `json:"totalTickets"`
	AvgResolutionTime    float64 `json:"avgResolutionTime"`
	CustomerSatisfaction float64 `json:"customerSatisfaction"`
}
