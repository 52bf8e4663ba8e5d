package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/teamtrack/backend/internal/middleware"
	"github.com/teamtrack/backend/internal/services"
	"github.com/teamtrack/backend/pkg/response"
	"gorm.io/gorm"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(db *gorm.DB) *TaskHandler {
	return &TaskHandler{
		taskService: services.NewTaskService(db),
	}
}

// List returns tasks, optionally scoped to one project
// GET /tasks?projectId=N
func (h *TaskHandler) List(c *gin.Context) {
	var projectID *uint
	if raw := c.Query("projectId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			response.BadRequest(c, "invalid projectId")
			return
		}
		pid := uint(id)
		projectID = &pid
	}

	tasks, err := h.taskService.List(projectID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, tasks)
}

// GetByID returns one task with joined names
// GET /tasks/:id
func (h *TaskHandler) GetByID(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.BadRequest(c, "invalid task id")
		return
	}

	task, err := h.taskService.Get(id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, task)
}

// Create creates a task under an existing project
// POST /tasks
func (h *TaskHandler) Create(c *gin.Context) {
	var req services.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	task, err := h.taskService.Create(&req, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, task)
}

// Update applies a partial update
// PATCH /tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.BadRequest(c, "invalid task id")
		return
	}

	var req services.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	task, err := h.taskService.Update(id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, task)
}

type updateStatusRequest struct {
	ID     uint   `json:"id" binding:"required"`
	Status string `json:"status" binding:"required"`
}

// UpdateStatus moves a task between board columns
// PATCH /tasks
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	task, err := h.taskService.UpdateStatus(req.ID, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, task)
}

// Delete removes a task
// DELETE /tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.BadRequest(c, "invalid task id")
		return
	}

	if err := h.taskService.Delete(id, middleware.GetActor(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, "task deleted")
}
