package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/karashiro/task-assignment-api/internal/auth"
	"github.com/karashiro/task-assignment-api/internal/models"
	"github.com/karashiro/task-assignment-api/internal/repository"
	"github.com/karashiro/task-assignment-api/internal/utils"
)

var (
	ErrAdminOnly        = errors.New("admin only")
	ErrTaskNotFound     = errors.New("task not found")
	ErrNotTaskOwner     = errors.New("not authorized to modify this task")
	ErrTitleRequired    = errors.New("title is required")
	ErrAssigneeRequired = errors.New("assignedToId is required")
	ErrAssigneeNotFound = errors.New("assigned user does not exist")
)

// TaskService enforces who may create, list and update which tasks.
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title        string
	Description  string
	AssignedToID uint64
	TaskDate     *time.Time
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	Date       *time.Time
	EmployeeID *uint64
}

// UpdateTaskInput represents input for updating a task
type UpdateTaskInput struct {
	Status     *models.TaskStatus
	Submission *string
}

// Create creates a task assigned to an existing user. Admin only. The task
// date defaults to today when omitted; status always starts as PENDING.
func (s *TaskService) Create(actor *auth.Claims, input CreateTaskInput) (*models.Task, error) {
	if actor.Role != models.RoleAdmin {
		return nil, ErrAdminOnly
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}
	if input.AssignedToID == 0 {
		return nil, ErrAssigneeRequired
	}

	if _, err := s.userRepo.FindByID(input.AssignedToID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssigneeNotFound
		}
		return nil, fmt.Errorf("failed to verify assignee: %w", err)
	}

	taskDate := time.Now()
	if input.TaskDate != nil {
		taskDate = *input.TaskDate
	}

	task := &models.Task{
		Title:        input.Title,
		Description:  input.Description,
		AssignedToID: input.AssignedToID,
		TaskDate:     taskDate,
		Status:       models.TaskStatusPending,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// List returns tasks scoped by the caller's role. Admins see every matching
// task joined with its assignee and may filter by employee; employees are
// always restricted to their own tasks regardless of requested filters.
func (s *TaskService) List(actor *auth.Claims, input ListTasksInput) ([]models.Task, error) {
	filter := repository.TaskFilter{}

	if input.Date != nil {
		start, end := utils.DayBounds(*input.Date)
		filter.DateFrom = &start
		filter.DateTo = &end
	}

	if actor.Role == models.RoleAdmin {
		filter.PreloadAssignee = true
		if input.EmployeeID != nil {
			filter.AssignedToID = input.EmployeeID
		}
	} else {
		actorID := actor.UserID
		filter.AssignedToID = &actorID
	}

	tasks, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

// Update applies a partial update of status and submission. Permitted for
// admins and for the assigned employee. Status values are stored as supplied;
// the PENDING to COMPLETED direction is not enforced here.
func (s *TaskService) Update(actor *auth.Claims, taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if actor.Role != models.RoleAdmin && actor.UserID != task.AssignedToID {
		return nil, ErrNotTaskOwner
	}

	if input.Status != nil {
		task.Status = *input.Status
	}
	if input.Submission != nil {
		task.Submission = *input.Submission
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}
