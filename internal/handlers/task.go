package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/karashiro/task-assignment-api/internal/dto"
	apierrors "github.com/karashiro/task-assignment-api/internal/errors"
	"github.com/karashiro/task-assignment-api/internal/middleware"
	"github.com/karashiro/task-assignment-api/internal/models"
	"github.com/karashiro/task-assignment-api/internal/services"
	"github.com/karashiro/task-assignment-api/internal/utils"
)

// TaskHandler coordinates task lifecycle HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
	userService *services.UserService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService, userService *services.UserService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		userService: userService,
	}
}

// CreateTask creates a task assigned to an employee. Admin only.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	actor, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateTaskRequest struct {
		Title        string `json:"title" binding:"required"`
		Description  string `json:"description"`
		AssignedToID uint64 `json:"assignedToId" binding:"required"`
		TaskDate     string `json:"taskDate"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var taskDate *time.Time
	if req.TaskDate != "" {
		parsed, err := utils.ParseDate(req.TaskDate)
		if err != nil {
			apierrors.BadRequest(c, "taskDate must be formatted as YYYY-MM-DD")
			return
		}
		taskDate = &parsed
	}

	task, err := h.taskService.Create(actor, services.CreateTaskInput{
		Title:        req.Title,
		Description:  req.Description,
		AssignedToID: req.AssignedToID,
		TaskDate:     taskDate,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// ListTasks returns tasks scoped by the caller's role. Admins may filter by
// calendar date and employee; employees only ever see their own tasks.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	actor, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	input := services.ListTasksInput{}

	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := utils.ParseDate(dateStr)
		if err != nil {
			apierrors.BadRequest(c, "date must be formatted as YYYY-MM-DD")
			return
		}
		input.Date = &parsed
	}

	if employeeStr := c.Query("employee_id"); employeeStr != "" {
		employeeID, err := strconv.ParseUint(employeeStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid employee_id")
			return
		}
		input.EmployeeID = &employeeID
	}

	tasks, err := h.taskService.List(actor, input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// UpdateTask applies a partial status/submission update. Permitted for the
// assigned employee and for admins.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	actor, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	type UpdateTaskRequest struct {
		Status     *models.TaskStatus `json:"status"`
		Submission *string            `json:"submission"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.Update(actor, taskID, services.UpdateTaskInput{
		Status:     req.Status,
		Submission: req.Submission,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// ListEmployees returns all employee accounts. Admin only. Mounted under
// /api/tasks/users to match the public surface.
func (h *TaskHandler) ListEmployees(c *gin.Context) {
	actor, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	users, err := h.userService.ListEmployees(actor)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTOs(users))
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAdminOnly):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrNotTaskOwner):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrAssigneeRequired),
		errors.Is(err, services.ErrAssigneeNotFound):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
