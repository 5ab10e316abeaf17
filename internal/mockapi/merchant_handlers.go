package mockapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lorrc/merchant-support-console/internal/domain"
)

// UpdateMerchantRequest defines the JSON body for PUT /merchants/{id}.
// Empty fields are left unchanged.
type UpdateMerchantRequest struct {
	Name         string                `json:"name"`
	Email        string                `json:"email"`
	Phone        string                `json:"phone"`
	BusinessType string                `json:"businessType"`
	Status       domain.MerchantStatus `json:"status"`
}

// HandleListMerchants handles GET /merchants.
func (s *Server) HandleListMerchants(w http.ResponseWriter, r *http.Request) {
	page, size := parsePaging(r)
	WriteData(w, s.store.Merchants(page, size))
}

// HandleGetMerchant handles GET /merchants/{merchantID}.
func (s *Server) HandleGetMerchant(w http.ResponseWriter, r *http.Request) {
	merchant, err := s.store.MerchantByID(chi.URLParam(r, "merchantID"))
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteData(w, merchant)
}

// HandleUpdateMerchant handles PUT /merchants/{merchantID}.
func (s *Server) HandleUpdateMerchant(w http.ResponseWriter, r *http.Request) {
	var req UpdateMerchantRequest
	if err := DecodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	merchant, err := s.store.UpdateMerchant(chi.URLParam(r, "merchantID"), req.Name, req.Email, req.Phone, req.BusinessType, req.Status)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteData(w, merchant)
}
