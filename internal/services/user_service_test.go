package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/karashiro/task-assignment-api/internal/models"
	"github.com/karashiro/task-assignment-api/internal/repository"
)

func TestUserService_ListEmployees(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db), repository.NewTaskRepository(db))

	admin := createUser(t, db, "admin", models.RoleAdmin)
	createUser(t, db, "worker1", models.RoleEmployee)
	createUser(t, db, "worker2", models.RoleEmployee)

	employees, err := svc.ListEmployees(claimsFor(admin))
	require.NoError(t, err)
	require.Len(t, employees, 2)
	for _, employee := range employees {
		require.Equal(t, models.RoleEmployee, employee.Role)
	}
}

func TestUserService_ListEmployees_EmployeeForbidden(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db), repository.NewTaskRepository(db))

	employee := createUser(t, db, "worker", models.RoleEmployee)

	_, err := svc.ListEmployees(claimsFor(employee))
	require.ErrorIs(t, err, ErrAdminOnly)
}

func TestUserService_UpdateEmployee(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db), repository.NewTaskRepository(db))

	admin := createUser(t, db, "admin", models.RoleAdmin)
	employee := createUser(t, db, "worker", models.RoleEmployee)

	username := "renamed"
	password := "newsecret"
	updated, err := svc.UpdateEmployee(claimsFor(admin), employee.ID, UpdateEmployeeInput{
		Username: &username,
		Password: &password,
	})
	require.NoError(t, err)
	require.Equal(t, "renamed", updated.Username)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("newsecret")))
}

func TestUserService_UpdateEmployee_DuplicateUsername(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db), repository.NewTaskRepository(db))

	admin := createUser(t, db, "admin", models.RoleAdmin)
	createUser(t, db, "taken", models.RoleEmployee)
	employee := createUser(t, db, "worker", models.RoleEmployee)

	username := "taken"
	_, err := svc.UpdateEmployee(claimsFor(admin), employee.ID, UpdateEmployeeInput{Username: &username})
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestUserService_UpdateEmployee_NotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db), repository.NewTaskRepository(db))

	admin := createUser(t, db, "admin", models.RoleAdmin)

	username := "ghost"
	_, err := svc.UpdateEmployee(claimsFor(admin), 9999, UpdateEmployeeInput{Username: &username})
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_DeleteEmployee_CascadesTasks(t *testing.T) {
	db := setupTestDB(t)
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	svc := NewUserService(userRepo, taskRepo)

	admin := createUser(t, db, "admin", models.RoleAdmin)
	employee := createUser(t, db, "worker", models.RoleEmployee)
	other := createUser(t, db, "other", models.RoleEmployee)

	createTask(t, db, "One", employee.ID, time.Now())
	createTask(t, db, "Two", employee.ID, time.Now())
	keep := createTask(t, db, "Keep", other.ID, time.Now())

	require.NoError(t, svc.DeleteEmployee(claimsFor(admin), employee.ID))

	var taskCount int64
	require.NoError(t, db.Model(&models.Task{}).Where("assigned_to_id = ?", employee.ID).Count(&taskCount).Error)
	require.Zero(t, taskCount)

	var userCount int64
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", employee.ID).Count(&userCount).Error)
	require.Zero(t, userCount)

	// Unrelated tasks survive.
	var kept models.Task
	require.NoError(t, db.First(&kept, keep.ID).Error)
}

func TestUserService_DeleteEmployee_NotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db), repository.NewTaskRepository(db))

	admin := createUser(t, db, "admin", models.RoleAdmin)

	err := svc.DeleteEmployee(claimsFor(admin), 9999)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_DeleteEmployee_EmployeeForbidden(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db), repository.NewTaskRepository(db))

	employee := createUser(t, db, "worker", models.RoleEmployee)

	err := svc.DeleteEmployee(claimsFor(employee), employee.ID)
	require.ErrorIs(t, err, ErrAdminOnly)
}
