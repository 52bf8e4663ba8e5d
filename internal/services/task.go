package services

import (
	"errors"

	"github.com/teamtrack/backend/internal/models"
	"github.com/teamtrack/backend/internal/policy"
	"github.com/teamtrack/backend/pkg/response"
	"gorm.io/gorm"
)

type TaskService struct {
	db *gorm.DB
}

func NewTaskService(db *gorm.DB) *TaskService {
	return &TaskService{db: db}
}

// TaskRow is a task joined with assignee, creator, and project names.
type TaskRow struct {
	models.Task
	AssignedToName *string `json:"assigned_to_name"`
	CreatedByName  string  `json:"created_by_name"`
	ProjectName    string  `json:"project_name"`
}

type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	ProjectID   uint   `json:"projectId" binding:"required"`
	AssignedTo  *uint  `json:"assignedTo"`
	DueDate     string `json:"dueDate"`
}

// UpdateTaskRequest carries a partial update; nil fields are untouched.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	AssignedTo  *uint   `json:"assignedTo"`
	DueDate     *string `json:"dueDate"`
}

const taskJoins = "LEFT JOIN users u1 ON tasks.assigned_to = u1.id " +
	"LEFT JOIN users u2 ON tasks.created_by = u2.id " +
	"LEFT JOIN projects p ON tasks.project_id = p.id"

// List returns tasks, newest first, optionally filtered to one project.
func (s *TaskService) List(projectID *uint) ([]TaskRow, error) {
	query := s.db.Model(&models.Task{}).
		Select("tasks.*, u1.name AS assigned_to_name, u2.name AS created_by_name, p.name AS project_name").
		Joins(taskJoins)

	if projectID != nil {
		query = query.Where("tasks.project_id = ?", *projectID)
	}

	var rows []TaskRow
	if err := query.Order("tasks.created_at DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Get returns one joined task row.
func (s *TaskService) Get(id uint) (*TaskRow, error) {
	var row TaskRow
	err := s.db.Model(&models.Task{}).
		Select("tasks.*, u1.name AS assigned_to_name, u2.name AS created_by_name, p.name AS project_name").
		Joins(taskJoins).
		Where("tasks.id = ?", id).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, response.NewNotFound("task not found")
	}
	return &row, nil
}

// Create persists a task against an existing project. Priority defaults to
// Medium.
func (s *TaskService) Create(req *CreateTaskRequest, userID uint) (*models.Task, error) {
	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !models.IsValidTaskPriority(priority) {
		return nil, response.NewValidation("invalid priority")
	}

	var project models.Project
	if err := s.db.First(&project, req.ProjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
		}
		return nil, err
	}

	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		return nil, response.NewValidation("invalid dueDate")
	}

	task := models.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      models.TaskToDo,
		Priority:    priority,
		ProjectID:   req.ProjectID,
		AssignedTo:  req.AssignedTo,
		CreatedBy:   userID,
		DueDate:     dueDate,
	}
	if err := s.db.Create(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// Update applies a partial update to a task. Any authenticated user may
// edit; only deletion is ownership-gated.
func (s *TaskService) Update(id uint, req *UpdateTaskRequest) (*models.Task, error) {
	var task models.Task
	if err := s.db.First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("task not found")
		}
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Status != nil {
		if !models.IsValidTaskStatus(*req.Status) {
			return nil, response.NewValidation("invalid status")
		}
		updates["status"] = *req.Status
	}
	if req.Priority != nil {
		if !models.IsValidTaskPriority(*req.Priority) {
			return nil, response.NewValidation("invalid priority")
		}
		updates["priority"] = *req.Priority
	}
	if req.AssignedTo != nil {
		updates["assigned_to"] = *req.AssignedTo
	}
	if req.DueDate != nil {
		d, err := parseDate(*req.DueDate)
		if err != nil {
			return nil, response.NewValidation("invalid dueDate")
		}
		updates["due_date"] = d
	}

	if len(updates) > 0 {
		if err := s.db.Model(&task).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	if err := s.db.First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateStatus is the status-only shortcut used by the board UI.
func (s *TaskService) UpdateStatus(id uint, status string) (*models.Task, error) {
	if !models.IsValidTaskStatus(status) {
		return nil, response.NewValidation("invalid status")
	}

	var task models.Task
	if err := s.db.First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("task not found")
		}
		return nil, err
	}

	if err := s.db.Model(&task).Update("status", status).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// Delete removes a task. Allowed for the task creator, the owning
// project's owner, and Admin/Manager; the ownership ids are re-read from
// storage here, never trusted from the client.
func (s *TaskService) Delete(id uint, actor policy.Actor) error {
	var task models.Task
	if err := s.db.First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFound("task not found")
		}
		return err
	}

	var project models.Project
	if err := s.db.First(&project, task.ProjectID).Error; err != nil {
		return err
	}

	if !policy.CanDeleteTask(actor, task.CreatedBy, project.CreatedBy) {
		return response.NewForbidden("insufficient permissions")
	}

	return s.db.Delete(&models.Task{}, id).Error
}
