package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/karashiro/task-assignment-api/internal/dto"
	apierrors "github.com/karashiro/task-assignment-api/internal/errors"
	"github.com/karashiro/task-assignment-api/internal/middleware"
	"github.com/karashiro/task-assignment-api/internal/services"
)

// UserHandler coordinates admin-only user management handlers.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// UpdateUser applies a partial username/password update to an account.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	actor, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	type UpdateUserRequest struct {
		Username *string `json:"username"`
		Password *string `json:"password"`
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateEmployee(actor, userID, services.UpdateEmployeeInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// DeleteUser removes an account and every task assigned to it.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	actor, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.userService.DeleteEmployee(actor, userID); err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "User deleted successfully"})
}

func respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAdminOnly):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrUsernameTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrUsernameRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
