package models

import "time"

// DefaultMemberRole is assigned when a member is added without an explicit
// project-scoped role.
const DefaultMemberRole = "Member"

// ProjectMember links a user to a project with a free-form project-scoped
// role. (project_id, user_id) is unique; re-adding an existing member
// overwrites the role in place (upsert).
type ProjectMember struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID uint      `gorm:"uniqueIndex:idx_project_user;not null" json:"project_id"`
	Project   *Project  `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"project,omitempty"`
	UserID    uint      `gorm:"uniqueIndex:idx_project_user;not null" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Role      string    `gorm:"size:100;default:Member" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ProjectMember) TableName() string { return "project_members" }
