package services

import (
	"errors"
	"time"

	"github.com/teamtrack/backend/internal/models"
	"github.com/teamtrack/backend/internal/policy"
	"github.com/teamtrack/backend/pkg/response"
	"gorm.io/gorm"
)

type ProjectService struct {
	db *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

// ProjectRow is a project joined with its owner's name for listings.
type ProjectRow struct {
	models.Project
	CreatedByName string `json:"created_by_name"`
}

// MemberRow is a membership joined with the member's account fields.
type MemberRow struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	UserRole    string `json:"user_role"`
	ProjectRole string `json:"project_role"`
}

// ProjectDetail is the GET /projects/:id payload: the project plus members.
type ProjectDetail struct {
	ProjectRow
	Members []MemberRow `json:"members"`
}

type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}

// UpdateProjectRequest carries a partial update; nil fields are untouched.
type UpdateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	StartDate   *string `json:"startDate"`
	EndDate     *string `json:"endDate"`
}

// List returns all projects, newest first. Reads are deliberately
// unfiltered by membership.
func (s *ProjectService) List() ([]ProjectRow, error) {
	var rows []ProjectRow
	err := s.db.Model(&models.Project{}).
		Select("projects.*, u.name AS created_by_name").
		Joins("LEFT JOIN users u ON projects.created_by = u.id").
		Order("projects.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Get returns one project with its member list.
func (s *ProjectService) Get(id uint) (*ProjectDetail, error) {
	var row ProjectRow
	err := s.db.Model(&models.Project{}).
		Select("projects.*, u.name AS created_by_name").
		Joins("LEFT JOIN users u ON projects.created_by = u.id").
		Where("projects.id = ?", id).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, response.NewNotFound("project not found")
	}

	members := make([]MemberRow, 0)
	err = s.db.Table("project_members pm").
		Select("u.id, u.name, u.email, u.role AS user_role, pm.role AS project_role").
		Joins("JOIN users u ON pm.user_id = u.id").
		Where("pm.project_id = ?", id).
		Scan(&members).Error
	if err != nil {
		return nil, err
	}

	return &ProjectDetail{ProjectRow: row, Members: members}, nil
}

// Create persists a project owned by the calling user.
func (s *ProjectService) Create(req *CreateProjectRequest, userID uint) (*models.Project, error) {
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, response.NewValidation("invalid startDate")
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return nil, response.NewValidation("invalid endDate")
	}

	project := models.Project{
		Name:        req.Name,
		Description: req.Description,
		Status:      models.ProjectActive,
		StartDate:   startDate,
		EndDate:     endDate,
		CreatedBy:   userID,
	}
	if err := s.db.Create(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// Update applies a partial update. The owner id is re-read from storage and
// checked against the edit policy on every call.
func (s *ProjectService) Update(id uint, actor policy.Actor, req *UpdateProjectRequest) (*models.Project, error) {
	var project models.Project
	if err := s.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
		}
		return nil, err
	}

	if !policy.CanEditProject(actor, project.CreatedBy) {
		return nil, response.NewForbidden("insufficient permissions")
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Status != nil {
		if !models.IsValidProjectStatus(*req.Status) {
			return nil, response.NewValidation("invalid status")
		}
		updates["status"] = *req.Status
	}
	if req.StartDate != nil {
		d, err := parseDate(*req.StartDate)
		if err != nil {
			return nil, response.NewValidation("invalid startDate")
		}
		updates["start_date"] = d
	}
	if req.EndDate != nil {
		d, err := parseDate(*req.EndDate)
		if err != nil {
			return nil, response.NewValidation("invalid endDate")
		}
		updates["end_date"] = d
	}

	if len(updates) > 0 {
		if err := s.db.Model(&project).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	if err := s.db.First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// Delete removes a project together with its tasks and memberships.
// Stricter than edit: Manager alone is not sufficient.
func (s *ProjectService) Delete(id uint, actor policy.Actor) error {
	var project models.Project
	if err := s.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFound("project not found")
		}
		return err
	}

	if !policy.CanDeleteProject(actor, project.CreatedBy) {
		return response.NewForbidden("only project owner or admin can delete projects")
	}

	// Explicit cascade so behavior does not depend on per-driver FK
	// enforcement (sqlite ships with foreign keys off).
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, id).Error
	})
}

// parseDate accepts the date-only form used by the UI and falls back to
// RFC 3339. Empty input yields nil.
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if d, err := time.Parse("2006-01-02", s); err == nil {
		return &d, nil
	}
	d, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
