package models

import "github.com/google/uuid"

type Project struct {
	Base
	Name      string    `gorm:"not null" json:"name"`
	IsActive  bool      `gorm:"default:false" json:"is_active"`
	IsDefault bool      `gorm:"default:false" json:"is_default"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"-"`

	User  *User  `gorm:"foreignKey:UserID" json:"-"`
	Tasks []Task `gorm:"foreignKey:ProjectID" json:"-"`
}

func (Project) TableName() string {
	return "projects"
}

type TaskStatus string

const (
	TaskStatusNew  TaskStatus = "new"
	TaskStatusDone TaskStatus = "done"
)

func (s TaskStatus) Valid() bool {
	return s == TaskStatusNew || s == TaskStatusDone
}

type Task struct {
	Base
	Name        string     `gorm:"not null" json:"name"`
	Description string     `json:"description"`
	Status      TaskStatus `gorm:"not null;default:'new'" json:"status"`
	UserID      uuid.UUID  `gorm:"type:uuid;index;not null" json:"-"`
	ProjectID   uuid.UUID  `gorm:"type:uuid;index;not null" json:"project_id"`

	User    *User    `gorm:"foreignKey:UserID" json:"-"`
	Project *Project `gorm:"foreignKey:ProjectID" json:"-"`
}

func (Task) TableName() string {
	return "tasks"
}
