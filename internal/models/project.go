package models

import "time"

// Project statuses.
const (
	ProjectActive    = "Active"
	ProjectCompleted = "Completed"
	ProjectOnHold    = "On Hold"
)

// Project represents a team project. CreatedBy is the owning user; ownership
// is a plain foreign-key value re-read from storage on every mutating
// request, never cached.
type Project struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"size:200;not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	Status      string     `gorm:"size:50;default:Active" json:"status"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	CreatedBy   uint       `gorm:"index;not null" json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Project) TableName() string { return "projects" }

// IsValidProjectStatus reports whether status is one of the enumerated
// project statuses.
func IsValidProjectStatus(status string) bool {
	switch status {
	case ProjectActive, ProjectCompleted, ProjectOnHold:
		return true
	}
	return false
}
