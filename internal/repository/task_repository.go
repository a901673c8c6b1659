package repository

import (
	"github.com/karashiro/task-assignment-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves tasks matching the filter
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{})

	if filter.DateFrom != nil {
		query = query.Where("task_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("task_date <= ?", *filter.DateTo)
	}
	if filter.AssignedToID != nil {
		query = query.Where("assigned_to_id = ?", *filter.AssignedToID)
	}
	if filter.PreloadAssignee {
		query = query.Preload("AssignedTo")
	}

	if err := query.Order("task_date ASC, id ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}

	return tasks, nil
}

// Update persists changes to an existing task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// DeleteByAssignee removes every task assigned to the given user
func (r *GormTaskRepository) DeleteByAssignee(userID uint64) error {
	return r.db.Where("assigned_to_id = ?", userID).Delete(&models.Task{}).Error
}
