package services

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/karashiro/task-assignment-api/internal/auth"
	"github.com/karashiro/task-assignment-api/internal/models"
	"github.com/karashiro/task-assignment-api/internal/repository"
)

var ErrUserNotFound = errors.New("user not found")

// UserService handles admin-only management of employee accounts.
type UserService struct {
	userRepo repository.UserRepository
	taskRepo repository.TaskRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository, taskRepo repository.TaskRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		taskRepo: taskRepo,
	}
}

// ListEmployees returns every user with the EMPLOYEE role. Admin only.
func (s *UserService) ListEmployees(actor *auth.Claims) ([]models.User, error) {
	if actor.Role != models.RoleAdmin {
		return nil, ErrAdminOnly
	}

	users, err := s.userRepo.ListByRole(models.RoleEmployee)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	return users, nil
}

// UpdateEmployeeInput represents a partial update of an employee account.
type UpdateEmployeeInput struct {
	Username *string
	Password *string
}

// UpdateEmployee updates username and/or password of an account. A supplied
// password is re-hashed before persisting. Admin only.
func (s *UserService) UpdateEmployee(actor *auth.Claims, userID uint64, input UpdateEmployeeInput) (*models.User, error) {
	if actor.Role != models.RoleAdmin {
		return nil, ErrAdminOnly
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if input.Username != nil {
		username := strings.TrimSpace(*input.Username)
		if username == "" {
			return nil, ErrUsernameRequired
		}
		if username != user.Username {
			if existing, err := s.userRepo.FindByUsername(username); err == nil && existing.ID != user.ID {
				return nil, ErrUsernameTaken
			} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("failed to check username: %w", err)
			}
			user.Username = username
		}
	}

	if input.Password != nil && *input.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, ErrFailedToHashPassword
		}
		user.PasswordHash = string(hashedPassword)
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// DeleteEmployee removes an account together with every task assigned to it.
// Tasks are deleted first so a failure between the two steps can leave a
// still-existing user but never orphaned tasks. Admin only.
func (s *UserService) DeleteEmployee(actor *auth.Claims, userID uint64) error {
	if actor.Role != models.RoleAdmin {
		return ErrAdminOnly
	}

	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.taskRepo.DeleteByAssignee(userID); err != nil {
		return fmt.Errorf("failed to delete tasks of user %d: %w", userID, err)
	}

	if err := s.userRepo.Delete(userID); err != nil {
		return fmt.Errorf("failed to delete user %d: %w", userID, err)
	}

	return nil
}
