package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/teamtrack/backend/internal/middleware"
	"github.com/teamtrack/backend/internal/services"
	"github.com/teamtrack/backend/pkg/response"
	"gorm.io/gorm"
)

type ProjectMemberHandler struct {
	memberService *services.MemberService
}

func NewProjectMemberHandler(db *gorm.DB) *ProjectMemberHandler {
	return &ProjectMemberHandler{
		memberService: services.NewMemberService(db),
	}
}

type addMemberRequest struct {
	UserID uint   `json:"userId" binding:"required"`
	Role   string `json:"role"`
}

// Add adds or re-roles a member on a project
// POST /projects/:id/members
func (h *ProjectMemberHandler) Add(c *gin.Context) {
	projectID, err := parseID(c, "id")
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	var req addMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	member, err := h.memberService.Add(projectID, middleware.GetActor(c), req.UserID, req.Role)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, member)
}

type removeMemberRequest struct {
	UserID uint `json:"userId" binding:"required"`
}

// Remove removes a member from a project
// DELETE /projects/:id/members
func (h *ProjectMemberHandler) Remove(c *gin.Context) {
	projectID, err := parseID(c, "id")
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	var req removeMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.memberService.Remove(projectID, middleware.GetActor(c), req.UserID); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, "member removed")
}
