package mockapi

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/lorrc/merchant-support-console/internal/apperrors"
)

// CategoryRequest defines the JSON body for category create/update.
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	SLAHours    int    `json:"slaHours"`
	IsActive    bool   `json:"isActive"`
}

// SLAConfigRequest defines the JSON body for PUT /config/sla/{id}.
type SLAConfigRequest struct {
	ResponseTimeHours   int `json:"responseTimeHours"`
	ResolutionTimeHours int `json:"resolutionTimeHours"`
}

func (r *CategoryRequest) validate() error {
	if strings.TrimSpace(r.Name) == "" || r.SLAHours < 1 {
		return apperrors.ErrBadRequest
	}
	return nil
}

// HandleListCategories handles GET /config/categories.
func (s *Server) HandleListCategories(w http.ResponseWriter, r *http.Request) {
	WriteData(w, s.store.Categories())
}

// HandleCreateCategory handles POST /config/categories.
func (s *Server) HandleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := DecodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if err := req.validate(); err != nil {
		WriteError(w, err)
		return
	}
	WriteData(w, s.store.CreateCategory(req.Name, req.Description, req.SLAHours, req.IsActive))
}

// HandleUpdateCategory handles PUT /config/categories/{categoryID}.
func (s *Server) HandleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := DecodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if err := req.validate(); err != nil {
		WriteError(w, err)
		return
	}
	category, err := s.store.UpdateCategory(chi.URLParam(r, "categoryID"), req.Name, req.Description, req.SLAHours, req.IsActive)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteData(w, category)
}

// HandleDeleteCategory handles DELETE /config/categories/{categoryID}.
func (s *Server) HandleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteCategory(chi.URLParam(r, "categoryID")); err != nil {
		WriteError(w, err)
		return
	}
	WriteMessage(w, "Category deleted")
}

// HandleListSLAConfigs handles GET /config/sla.
func (s *Server) HandleListSLAConfigs(w http.ResponseWriter, r *http.Request) {
	WriteData(w, s.store.SLAConfigs())
}

// HandleUpdateSLAConfig handles PUT /config/sla/{slaID}.
func (s *Server) HandleUpdateSLAConfig(w http.ResponseWriter, r *http.Request) {
	var req SLAConfigRequest
	if err := DecodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if req.ResponseTimeHours < 1 || req.ResolutionTimeHours < 1 {
		WriteError(w, apperrors.ErrBadRequest)
		return
	}
	slaConfig, err := s.store.UpdateSLAConfig(chi.URLParam(r, "slaID"), req.ResponseTimeHours, req.ResolutionTimeHours)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteData(w, slaConfig)
}
