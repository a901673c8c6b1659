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

var (
	ErrUsernameTaken        = errors.New("user already exists")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrUsernameRequired     = errors.New("username is required")
	ErrPasswordRequired     = errors.New("password is required")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// AuthService handles registration and credential verification.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenService
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenService) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Username string
	Password string
	Role     models.Role
}

// Register creates a new user. The role defaults to EMPLOYEE when unset.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if input.Password == "" {
		return nil, ErrPasswordRequired
	}

	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	role := input.Role
	if role == "" {
		role = models.RoleEmployee
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hashedPassword),
		Role:         role,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Username string
	Password string
}

// LoginResult carries the issued token and the authenticated user.
type LoginResult struct {
	Token string
	User  *models.User
}

// Login verifies credentials and issues a signed token bound to the user's
// id and role. Unknown usernames and bad passwords are reported identically
// to avoid username enumeration.
func (s *AuthService) Login(input LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.FindByUsername(input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &LoginResult{Token: token, User: user}, nil
}
