package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/teamtrack/backend/internal/services"
	"github.com/teamtrack/backend/pkg/response"
	"gorm.io/gorm"
)

type AuditLogHandler struct {
	auditService *services.AuditLogService
}

func NewAuditLogHandler(db *gorm.DB) *AuditLogHandler {
	return &AuditLogHandler{
		auditService: services.NewAuditLogService(db),
	}
}

// List returns paginated audit entries, newest first
// GET /system-logs?page=N&size=M
func (h *AuditLogHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "50"))

	result, err := h.auditService.List(page, size)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
