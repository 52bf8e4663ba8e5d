package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/teamtrack/backend/internal/config"
	"github.com/teamtrack/backend/internal/middleware"
	"github.com/teamtrack/backend/internal/services"
	"github.com/teamtrack/backend/pkg/response"
	"gorm.io/gorm"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(db *gorm.DB, jwtCfg *config.JWTConfig) *AuthHandler {
	return &AuthHandler{
		authService: services.NewAuthService(db, jwtCfg),
	}
}

// Register creates an account and returns it with a fresh token
// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.authService.Register(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// Login authenticates and returns the user with a fresh token
// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.authService.Login(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Me returns the authenticated user's account
// GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authService.GetUserByID(middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, user)
}

// Logout acknowledges a logout. Tokens are stateless, so the client simply
// discards its copy; there is no server-side session to tear down.
// POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	response.Message(c, "logged out")
}
