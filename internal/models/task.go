package models

import "time"

// Task statuses.
const (
	TaskToDo       = "To Do"
	TaskInProgress = "In Progress"
	TaskDone       = "Done"
)

// Task priorities.
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

// Task belongs to exactly one project and is removed with it. AssignedTo is
// the only user reference allowed to dangle to null.
type Task struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:300;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Status      string     `gorm:"size:50;default:To Do" json:"status"`
	Priority    string     `gorm:"size:50;default:Medium" json:"priority"`
	ProjectID   uint       `gorm:"index;not null" json:"project_id"`
	Project     *Project   `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"project,omitempty"`
	AssignedTo  *uint      `gorm:"index" json:"assigned_to"`
	CreatedBy   uint       `gorm:"index;not null" json:"created_by"`
	DueDate     *time.Time `json:"due_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `gorm:"index" json:"updated_at"`
}

func (Task) TableName() string { return "tasks" }

// IsValidTaskStatus reports whether status is one of the enumerated task
// statuses.
func IsValidTaskStatus(status string) bool {
	switch status {
	case TaskToDo, TaskInProgress, TaskDone:
		return true
	}
	return false
}

// IsValidTaskPriority reports whether priority is one of the enumerated task
// priorities.
func IsValidTaskPriority(priority string) bool {
	switch priority {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}
