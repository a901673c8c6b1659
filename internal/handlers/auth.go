package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/karashiro/task-assignment-api/internal/dto"
	apierrors "github.com/karashiro/task-assignment-api/internal/errors"
	"github.com/karashiro/task-assignment-api/internal/models"
	"github.com/karashiro/task-assignment-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register creates a new user account.
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
		Role     string `json:"role" binding:"omitempty,oneof=ADMIN EMPLOYEE"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	_, err := h.authService.Register(services.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Role:     models.Role(req.Role),
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "User created"})
}

// Login verifies credentials and returns a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.authService.Login(services.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:    result.Token,
		Role:     result.User.Role,
		Username: result.User.Username,
		ID:       result.User.ID,
	})
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUsernameTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrUsernameRequired),
		errors.Is(err, services.ErrPasswordRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		// Bad credentials are a 400 on this surface, and the message never
		// distinguishes unknown usernames from wrong passwords.
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
