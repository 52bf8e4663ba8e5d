package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/teamtrack/backend/internal/services"
	"github.com/teamtrack/backend/pkg/response"
	"gorm.io/gorm"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: services.NewDashboardService(db),
	}
}

// Stats returns every dashboard aggregation in one payload
// GET /dashboard/stats
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboardService.GetStats()
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, stats)
}
