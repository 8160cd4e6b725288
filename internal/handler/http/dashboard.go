package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nalaaircon/nala-backend/internal/domain/dashboard"
	"github.com/nalaaircon/nala-backend/internal/handler/http/response"
)

type DashboardHandler interface {
	// ListModules returns the modules of the home screen
	ListModules(w http.ResponseWriter, r *http.Request)
	// Overview returns every module summary at once
	Overview(w http.ResponseWriter, r *http.Request)
	// Summary returns the summary of one module
	Summary(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// ListModules handles GET /modules
func (h *dashboardHandlerImpl) ListModules(w http.ResponseWriter, r *http.Request) {
	modules := dashboard.Modules()
	response.List(w, modules, len(modules))
}

// Overview handles GET /modules/overview
func (h *dashboardHandlerImpl) Overview(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.Overview(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Summary handles GET /modules/{module}/summary
func (h *dashboardHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	module, err := dashboard.ParseModule(chi.URLParam(r, "module"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.dashboardService.Summary(r.Context(), module)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
