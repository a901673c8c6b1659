package repository

import (
	"time"

	"github.com/karashiro/task-assignment-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// ListByRole lists all users with the given role
	ListByRole(role models.Role) ([]models.User, error)

	// Update persists changes to an existing user
	Update(user *models.User) error

	// Delete removes a user
	Delete(id uint64) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	DateFrom        *time.Time
	DateTo          *time.Time
	AssignedToID    *uint64
	PreloadAssignee bool
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID
	FindByID(id uint64) (*models.Task, error)

	// List retrieves tasks matching the filter
	List(filter TaskFilter) ([]models.Task, error)

	// Update persists changes to an existing task
	Update(task *models.Task) error

	// DeleteByAssignee removes every task assigned to the given user
	DeleteByAssignee(userID uint64) error
}
