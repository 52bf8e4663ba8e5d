package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/teamtrack/backend/internal/config"
	"github.com/teamtrack/backend/internal/services"
	"github.com/teamtrack/backend/pkg/response"
)

type AIHandler struct {
	aiService *services.AIService
}

func NewAIHandler(cfg *config.AIConfig) *AIHandler {
	return &AIHandler{
		aiService: services.NewAIService(cfg),
	}
}

// GenerateStories drafts user stories from a project description
// POST /ai/generate-stories
func (h *AIHandler) GenerateStories(c *gin.Context) {
	var req services.GenerateStoriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	stories, err := h.aiService.GenerateStories(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"userStories": stories})
}

// GenerateTasks drafts implementation tasks for one user story
// POST /ai/generate-tasks
func (h *AIHandler) GenerateTasks(c *gin.Context) {
	var req services.GenerateTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	tasks, err := h.aiService.GenerateTasks(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"tasks": tasks})
}
