package models

import "time"

type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "PENDING"
	TaskStatusCompleted TaskStatus = "COMPLETED"
)

type Task struct {
	ID           uint64     `gorm:"primarykey" json:"id"`
	Title        string     `gorm:"not null" json:"title"`
	Description  string     `gorm:"type:text" json:"description"`
	AssignedToID uint64     `gorm:"not null;index" json:"assignedToId"`
	TaskDate     time.Time  `gorm:"not null;index" json:"taskDate"`
	Status       TaskStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	Submission   string     `gorm:"type:text" json:"submission"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`

	// Relations
	AssignedTo User `gorm:"foreignKey:AssignedToID" json:"assignedTo,omitempty"`
}
