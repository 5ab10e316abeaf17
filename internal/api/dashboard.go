package api

import (
	"context"
	"net/http"

	"github.com/lorrc/merchant-support-console/internal/domain"
)

// DashboardStats fetches the aggregate dashboard snapshot. The
// dashboard screen polls this on a 30 second interval.
func (c *Client) DashboardStats(ctx context.Context) (domain.DashboardStats, error) {
	return request[domain.DashboardStats](c, ctx, http.MethodGet, "/dashboard/stats", nil, nil)
}
