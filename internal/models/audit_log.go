package models

import "time"

// AuditLog records a mutating HTTP request: who did what, against which
// path, and how it ended. Written by the audit middleware after the handler
// completes; failures to write are logged and otherwise ignored.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    *uint     `gorm:"index" json:"user_id"`
	Actor     string    `gorm:"size:255" json:"actor"` // email of the acting user, empty for anonymous
	Method    string    `gorm:"size:10" json:"method"`
	Path      string    `gorm:"size:500;index" json:"path"`
	Status    int       `gorm:"index" json:"status"`
	IP        string    `gorm:"size:50" json:"ip"`
	UserAgent string    `gorm:"size:500" json:"user_agent"`
	Detail    string    `gorm:"type:text" json:"detail"` // masked request body snippet
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (AuditLog) TableName() string { return "audit_logs" }
