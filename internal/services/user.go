package services

import (
	"errors"

	"github.com/teamtrack/backend/internal/models"
	"github.com/teamtrack/backend/internal/policy"
	"github.com/teamtrack/backend/pkg/response"
	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// List returns all users, newest first. Password hashes never serialize.
func (s *UserService) List() ([]models.User, error) {
	var users []models.User
	if err := s.db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Get returns one user by id.
func (s *UserService) Get(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}

// UpdateRole changes a user's role. Admin only.
func (s *UserService) UpdateRole(id uint, actor policy.Actor, role string) (*models.User, error) {
	if !policy.CanManageUsers(actor) {
		return nil, response.NewForbidden("only admins can update user roles")
	}
	if !models.IsValidUserRole(role) {
		return nil, response.NewValidation("invalid role")
	}

	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, err
	}

	if err := s.db.Model(&user).Update("role", role).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete removes a user. Admin only, and never the caller's own account:
// that rule holds even for admins, so the last admin cannot lock everyone
// out by accident.
func (s *UserService) Delete(id uint, actor policy.Actor) error {
	if !policy.CanManageUsers(actor) {
		return response.NewForbidden("only admins can delete users")
	}
	if policy.IsSelf(actor, id) {
		return response.NewValidation("cannot delete your own account")
	}

	result := s.db.Delete(&models.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return response.NewNotFound("user not found")
	}
	return nil
}
