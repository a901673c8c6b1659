package dto

import (
	"time"

	"github.com/karashiro/task-assignment-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uint64      `json:"id"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID           uint64            `json:"id"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	AssignedToID uint64            `json:"assignedToId"`
	TaskDate     time.Time         `json:"taskDate"`
	Status       models.TaskStatus `json:"status"`
	Submission   string            `json:"submission"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
	AssignedTo   *UserDTO          `json:"assignedTo,omitempty"`
}

// LoginResponse is the payload returned on successful authentication
type LoginResponse struct {
	Token    string      `json:"token"`
	Role     models.Role `json:"role"`
	Username string      `json:"username"`
	ID       uint64      `json:"id"`
}

// MessageResponse wraps a human-readable confirmation
type MessageResponse struct {
	Message string `json:"message"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
	}
}

// ToUserDTOs converts a slice of users
func ToUserDTOs(users []models.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, user := range users {
		dtos[i] = ToUserDTO(user)
	}
	return dtos
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:           task.ID,
		Title:        task.Title,
		Description:  task.Description,
		AssignedToID: task.AssignedToID,
		TaskDate:     task.TaskDate,
		Status:       task.Status,
		Submission:   task.Submission,
		CreatedAt:    task.CreatedAt,
		UpdatedAt:    task.UpdatedAt,
	}

	// Include assignee if preloaded
	if task.AssignedTo.ID != 0 {
		assignee := ToUserDTO(task.AssignedTo)
		dto.AssignedTo = &assignee
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}
