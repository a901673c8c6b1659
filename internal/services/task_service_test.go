package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/karashiro/task-assignment-api/internal/auth"
	"github.com/karashiro/task-assignment-api/internal/models"
	"github.com/karashiro/task-assignment-api/internal/repository"
)

func createUser(t *testing.T, db *gorm.DB, username string, role models.Role) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		PasswordHash: "hashedpassword",
		Role:         role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTask(t *testing.T, db *gorm.DB, title string, assigneeID uint64, taskDate time.Time) *models.Task {
	t.Helper()

	task := &models.Task{
		Title:        title,
		Description:  "Test Description",
		AssignedToID: assigneeID,
		TaskDate:     taskDate,
		Status:       models.TaskStatusPending,
	}
	require.NoError(t, db.Create(task).Error)
	return task
}

func claimsFor(user *models.User) *auth.Claims {
	return &auth.Claims{UserID: user.ID, Role: user.Role}
}

func newTaskService(db *gorm.DB) *TaskService {
	return NewTaskService(repository.NewTaskRepository(db), repository.NewUserRepository(db))
}

func TestTaskService_Create(t *testing.T) {
	db := setupTestDB(t)
	svc := newTaskService(db)

	admin := createUser(t, db, "admin", models.RoleAdmin)
	employee := createUser(t, db, "worker", models.RoleEmployee)

	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local)
	task, err := svc.Create(claimsFor(admin), CreateTaskInput{
		Title:        "Report",
		Description:  "Quarterly report",
		AssignedToID: employee.ID,
		TaskDate:     &date,
	})
	require.NoError(t, err)
	require.Equal(t, models.TaskStatusPending, task.Status)
	require.Equal(t, employee.ID, task.AssignedToID)
	require.True(t, task.TaskDate.Equal(date))
}

func TestTaskService_Create_DefaultsToToday(t *testing.T) {
	db := setupTestDB(t)
	svc := newTaskService(db)

	admin := createUser(t, db, "admin", models.RoleAdmin)
	employee := createUser(t, db, "worker", models.RoleEmployee)

	task, err := svc.Create(claimsFor(admin), CreateTaskInput{
		Title:        "Daily checklist",
		AssignedToID: employee.ID,
	})
	require.NoError(t, err)
	require.WithinDuration(t, time.Now(), task.TaskDate, time.Minute)
}

func TestTaskService_Create_EmployeeForbidden(t *testing.T) {
	db := setupTestDB(t)
	svc := newTaskService(db)

	employee := createUser(t, db, "worker", models.RoleEmployee)

	_, err := svc.Create(claimsFor(employee), CreateTaskInput{
		Title:        "Report",
		AssignedToID: employee.ID,
	})
	require.ErrorIs(t, err, ErrAdminOnly)
}

func TestTaskService_Create_UnknownAssignee(t *testing.T) {
	db := setupTestDB(t)
	svc := newTaskService(db)

	admin := createUser(t, db, "admin", models.RoleAdmin)

	_, err := svc.Create(claimsFor(admin), CreateTaskInput{
		Title:        "Report",
		AssignedToID: 9999,
	})
	require.ErrorIs(t, err, ErrAssigneeNotFound)
}

func TestTaskService_List_EmployeeScoping(t *testing.T) {
	db := setupTestDB(t)
	svc := newTaskService(db)

	employee7 := createUser(t, db, "worker7", models.RoleEmployee)
	employee8 := createUser(t, db, "worker8", models.RoleEmployee)

	date := time.Date(2024, 5, 1, 10, 0, 0, 0, time.Local)
	createTask(t, db, "Mine", employee7.ID, date)
	createTask(t, db, "Theirs", employee8.ID, date)

	// An employee never sees another employee's tasks, even when explicitly
	// requesting them.
	otherID := employee8.ID
	tasks, err := svc.List(claimsFor(employee7), ListTasksInput{EmployeeID: &otherID})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.Equal(t, employee7.ID, tasks[0].AssignedToID)
	require.Equal(t, "Mine", tasks[0].Title)
}

func TestTaskService_List_AdminEmployeeFilter(t *testing.T) {
	db := setupTestDB(t)
	svc := newTaskService(db)

	admin := createUser(t, db, "admin", models.RoleAdmin)
	employee7 := createUser(t, db, "worker7", models.RoleEmployee)
	employee8 := createUser(t, db, "worker8", models.RoleEmployee)

	date := time.Date(2024, 5, 1, 10, 0, 0, 0, time.Local)
	createTask(t, db, "Seven", employee7.ID, date)
	createTask(t, db, "Eight", employee8.ID, date)

	all, err := svc.List(claimsFor(admin), ListTasksInput{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	// Admin listing joins the assignee.
	require.Equal(t, "worker7", all[0].AssignedTo.Username)

	filterID := employee8.ID
	filtered, err := svc.List(claimsFor(admin), ListTasksInput{EmployeeID: &filterID})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	require.Equal(t, employee8.ID, filtered[0].AssignedToID)
}

func TestTaskService_List_DateFilter(t *testing.T) {
	db := setupTestDB(t)
	svc := newTaskService(db)

	admin := createUser(t, db, "admin", models.RoleAdmin)
	employee := createUser(t, db, "worker", models.RoleEmployee)

	createTask(t, db, "First", employee.ID, time.Date(2024, 5, 1, 9, 0, 0, 0, time.Local))
	createTask(t, db, "LateFirst", employee.ID, time.Date(2024, 5, 1, 23, 30, 0, 0, time.Local))
	createTask(t, db, "Second", employee.ID, time.Date(2024, 5, 2, 0, 0, 0, 0, time.Local))

	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local)
	tasks, err := svc.List(claimsFor(admin), ListTasksInput{Date: &date})
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	for _, task := range tasks {
		require.NotEqual(t, "Second", task.Title)
	}
}

func TestTaskService_Update_OwnerCompletes(t *testing.T) {
	db := setupTestDB(t)
	svc := newTaskService(db)

	employee := createUser(t, db, "worker7", models.RoleEmployee)
	task := createTask(t, db, "Report", employee.ID, time.Now())

	status := models.TaskStatusCompleted
	submission := "done"
	updated, err := svc.Update(claimsFor(employee), task.ID, UpdateTaskInput{
		Status:     &status,
		Submission: &submission,
	})
	require.NoError(t, err)
	require.Equal(t, models.TaskStatusCompleted, updated.Status)
	require.Equal(t, "done", updated.Submission)
}

func TestTaskService_Update_ForeignEmployeeForbidden(t *testing.T) {
	db := setupTestDB(t)
	svc := newTaskService(db)

	employee7 := createUser(t, db, "worker7", models.RoleEmployee)
	employee8 := createUser(t, db, "worker8", models.RoleEmployee)
	task := createTask(t, db, "Report", employee7.ID, time.Now())

	status := models.TaskStatusCompleted
	_, err := svc.Update(claimsFor(employee8), task.ID, UpdateTaskInput{Status: &status})
	require.ErrorIs(t, err, ErrNotTaskOwner)

	// The task is unchanged.
	var reloaded models.Task
	require.NoError(t, db.First(&reloaded, task.ID).Error)
	require.Equal(t, models.TaskStatusPending, reloaded.Status)
	require.Empty(t, reloaded.Submission)
}

func TestTaskService_Update_AdminAllowed(t *testing.T) {
	db := setupTestDB(t)
	svc := newTaskService(db)

	admin := createUser(t, db, "admin", models.RoleAdmin)
	employee := createUser(t, db, "worker", models.RoleEmployee)
	task := createTask(t, db, "Report", employee.ID, time.Now())

	status := models.TaskStatusCompleted
	updated, err := svc.Update(claimsFor(admin), task.ID, UpdateTaskInput{Status: &status})
	require.NoError(t, err)
	require.Equal(t, models.TaskStatusCompleted, updated.Status)
}

func TestTaskService_Update_NotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := newTaskService(db)

	admin := createUser(t, db, "admin", models.RoleAdmin)

	status := models.TaskStatusCompleted
	_, err := svc.Update(claimsFor(admin), 9999, UpdateTaskInput{Status: &status})
	require.ErrorIs(t, err, ErrTaskNotFound)
}
