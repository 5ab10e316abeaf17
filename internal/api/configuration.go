package api

import (
	"context"
	"net/http"

	"github.com/lorrc/merchant-support-console/internal/domain"
)

// CategoryInput is the body for creating or updating a category.
type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	SLAHours    int    `json:"slaHours"`
	IsActive    bool   `json:"isActive"`
}

// SLAConfigInput is the body for updating an SLA configuration.
type SLAConfigInput struct {
	ResponseTimeHours   int `json:"responseTimeHours"`
	ResolutionTimeHours int `json:"resolutionTimeHours"`
}

// Categories fetches all ticket category definitions.
func (c *Client) Categories(ctx context.Context) ([]domain.CategoryConfig, error) {
	return request[[]domain.CategoryConfig](c, ctx, http.MethodGet, "/config/categories", nil, nil)
}

// CreateCategory adds a category definition.
func (c *Client) CreateCategory(ctx context.Context, input CategoryInput) (domain.CategoryConfig, error) {
	return request[domain.CategoryConfig](c, ctx, http.MethodPost, "/config/categories", nil, input)
}

// UpdateCategory edits a category definition.
func (c *Client) UpdateCategory(ctx context.Context, id string, input CategoryInput) (domain.CategoryConfig, error) {
	return request[domain.CategoryConfig](c, ctx, http.MethodPut, "/config/categories/"+id, nil, input)
}

// DeleteCategory removes a category definition.
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/config/categories/"+id, nil, nil)
	return err
}

// SLAConfigs fetches the per-category SLA targets.
func (c *Client) SLAConfigs(ctx context.Context) ([]domain.SLAConfig, error) {
	return request[[]domain.SLAConfig](c, ctx, http.MethodGet, "/config/sla", nil, nil)
}

// UpdateSLAConfig edits one SLA configuration.
func (c *Client) UpdateSLAConfig(ctx context.Context, id string, input SLAConfigInput) (domain.SLAConfig, error) {
	return request[domain.SLAConfig](c, ctx, http.MethodPut, "/config/sla/"+id, nil, input)
}
