package handler

import (
	"net/http"

	"github.com/peopledesk/hrms-backend/internal/hrms/service"
	"github.com/peopledesk/hrms-backend/pkg/httputil"
	"github.com/peopledesk/hrms-backend/pkg/logger"
)

// DashboardHandler handles the dashboard aggregate endpoint
type DashboardHandler struct {
	service *service.DashboardService
	logger  *logger.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(svc *service.DashboardService, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: svc,
		logger:  log,
	}
}

// Stats returns headline counts and the recent-activity feed
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	overview, err := h.service.Overview(r.Context())
	if err != nil {
		httputil.ErrorLogged(w, r, h.logger, err)
		return
	}

	httputil.JSON(w, http.StatusOK, overview)
}
