package services

import (
	"github.com/teamtrack/backend/internal/models"
	"gorm.io/gorm"
)

type AuditLogService struct {
	db *gorm.DB
}

func NewAuditLogService(db *gorm.DB) *AuditLogService {
	return &AuditLogService{db: db}
}

// AuditLogPage is one page of audit entries plus the total row count.
type AuditLogPage struct {
	Logs  []models.AuditLog `json:"logs"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Size  int               `json:"size"`
}

// List returns audit entries newest first, paginated.
func (s *AuditLogService) List(page, size int) (*AuditLogPage, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 200 {
		size = 50
	}

	var total int64
	if err := s.db.Model(&models.AuditLog{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var logs []models.AuditLog
	err := s.db.Order("created_at DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}

	return &AuditLogPage{Logs: logs, Total: total, Page: page, Size: size}, nil
}
