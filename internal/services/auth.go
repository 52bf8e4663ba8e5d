package services

import (
	"errors"

	"github.com/teamtrack/backend/internal/config"
	"github.com/teamtrack/backend/internal/models"
	"github.com/teamtrack/backend/internal/utils"
	"github.com/teamtrack/backend/pkg/response"
	"gorm.io/gorm"
)

type AuthService struct {
	db     *gorm.DB
	jwtCfg *config.JWTConfig
}

func NewAuthService(db *gorm.DB, jwtCfg *config.JWTConfig) *AuthService {
	return &AuthService{db: db, jwtCfg: jwtCfg}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResult is returned by both registration and login; registration
// doubles as login.
type AuthResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// Register creates a user and immediately issues a token. Duplicate emails
// fail with a conflict condition.
func (s *AuthService) Register(req *RegisterRequest) (*AuthResult, error) {
	role := req.Role
	if role == "" {
		role = models.RoleDeveloper
	}
	if !models.IsValidUserRole(role) {
		return nil, response.NewValidation("invalid role")
	}

	var existing models.User
	err := s.db.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return nil, response.NewConflict("user already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:    req.Email,
		Name:     req.Name,
		Password: hash,
		Role:     role,
	}
	if err := s.db.Create(&user).Error; err != nil {
		// The unique index is the authority; the pre-check above only
		// narrows the window.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, response.NewConflict("user already exists")
		}
		return nil, err
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role, s.jwtCfg.ExpireHour)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: &user, Token: token}, nil
}

// Login authenticates by email and password. Unknown email and wrong
// password are deliberately indistinguishable to the caller.
func (s *AuthService) Login(req *LoginRequest) (*AuthResult, error) {
	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewUnauthorized("invalid credentials")
		}
		return nil, err
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		return nil, response.NewUnauthorized("invalid credentials")
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role, s.jwtCfg.ExpireHour)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: &user, Token: token}, nil
}

// GetUserByID returns a user by id.
func (s *AuthService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}
