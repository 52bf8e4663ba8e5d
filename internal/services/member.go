package services

import (
	"errors"
	"time"

	"github.com/teamtrack/backend/internal/models"
	"github.com/teamtrack/backend/internal/policy"
	"github.com/teamtrack/backend/pkg/response"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MemberService struct {
	db *gorm.DB
}

func NewMemberService(db *gorm.DB) *MemberService {
	return &MemberService{db: db}
}

// Add upserts a membership: re-adding an existing (project, user) pair
// overwrites the role in place. The ON CONFLICT clause keeps concurrent
// adds from racing into duplicate rows.
func (s *MemberService) Add(projectID uint, actor policy.Actor, userID uint, role string) (*models.ProjectMember, error) {
	project, err := s.loadProject(projectID)
	if err != nil {
		return nil, err
	}
	if !policy.CanEditProject(actor, project.CreatedBy) {
		return nil, response.NewForbidden("insufficient permissions")
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, err
	}

	if role == "" {
		role = models.DefaultMemberRole
	}

	member := models.ProjectMember{
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
	}
	err = s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "project_id"}, {Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"role":       role,
			"updated_at": time.Now(),
		}),
	}).Create(&member).Error
	if err != nil {
		return nil, err
	}

	// Reload so the caller sees the surviving row, not the insert attempt.
	if err := s.db.Where("project_id = ? AND user_id = ?", projectID, userID).First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// Remove deletes a membership row. Gated by the same policy as project
// edits.
func (s *MemberService) Remove(projectID uint, actor policy.Actor, userID uint) error {
	project, err := s.loadProject(projectID)
	if err != nil {
		return err
	}
	if !policy.CanEditProject(actor, project.CreatedBy) {
		return response.NewForbidden("insufficient permissions")
	}

	return s.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&models.ProjectMember{}).Error
}

func (s *MemberService) loadProject(id uint) (*models.Project, error) {
	var project models.Project
	if err := s.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
		}
		return nil, err
	}
	return &project, nil
}
