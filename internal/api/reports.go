package api

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/lorrc/merchant-support-console/internal/domain"
)

// TicketVolumeByCategory fetches the per-category ticket counts for a
// reporting window. Dates are YYYY-MM-DD.
func (c *Client) TicketVolumeByCategory(ctx context.Context, dateFrom, dateTo string) ([]domain.CategoryVolume, error) {
	return request[[]domain.CategoryVolume](c, ctx, http.MethodGet, "/reports/ticket-volume", rangeValues(dateFrom, dateTo), nil)
}

// SLACompliance fetches the SLA adherence summary for a window.
func (c *Client) SLACompliance(ctx context.Context, dateFrom, dateTo string) (domain.SLACompliance, error) {
	return request[domain.SLACompliance](c, ctx, http.MethodGet, "/reports/sla-compliance", rangeValues(dateFrom, dateTo), nil)
}

// AgentPerformance fetches the per-agent performance rows for a window.
func (c *Client) AgentPerformance(ctx context.Context, dateFrom, dateTo string) ([]domain.AgentPerformance, error) {
	return request[[]domain.AgentPerformance](c, ctx, http.MethodGet, "/reports/agent-performance", rangeValues(dateFrom, dateTo), nil)
}

// ExportTickets downloads the spreadsheet export for the filtered
// ticket set. The response is raw xlsx bytes, not an envelope.
func (c *Client) ExportTickets(ctx context.Context, filters domain.TicketFilters) ([]byte, error) {
	return c.doBinary(ctx, http.MethodGet, "/reports/export/tickets", filterValues(filters))
}

// ExportFilename returns the download name for a ticket export made
// at the given time: tickets-YYYY-MM-DD.xlsx.
func ExportFilename(now time.Time) string {
	return "tickets-" + now.Format("2006-01-02") + ".xlsx"
}

func rangeValues(dateFrom, dateTo string) url.Values {
	query := url.Values{}
	query.Set("from", dateFrom)
	query.Set("to", dateTo)
	return query
}
