package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/lorrc/merchant-support-console/internal/domain"
)

// MerchantUpdate is a partial merchant edit; zero-value fields are
// left unchanged by the server.
type MerchantUpdate struct {
	Name         string                `json:"name,omitempty"`
	Email        string                `json:"email,omitempty"`
	Phone        string                `json:"phone,omitempty"`
	BusinessType string                `json:"businessType,omitempty"`
	Status       domain.MerchantStatus `json:"status,omitempty"`
}

// Merchants fetches one page of the merchant list.
func (c *Client) Merchants(ctx context.Context, page, size int) (domain.Page[domain.Merchant], error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))
	return request[domain.Page[domain.Merchant]](c, ctx, http.MethodGet, "/merchants", query, nil)
}

// MerchantByID fetches a single merchant.
func (c *Client) MerchantByID(ctx context.Context, id string) (domain.Merchant, error) {
	return request[domain.Merchant](c, ctx, http.MethodGet, "/merchants/"+id, nil, nil)
}

// UpdateMerchant applies a partial edit and returns the updated merchant.
func (c *Client) UpdateMerchant(ctx context.Context, id string, update MerchantUpdate) (domain.Merchant, error) {
	return request[domain.Merchant](c, ctx, http.MethodPut, "/merchants/"+id, nil, update)
}
