package models

import (
	"github.com/google/uuid"
)

// Task belongs to exactly one team. AssignedToID may point at a user who has
// since left the team; such stale assignments are kept as they are.
type Task struct {
	BaseModel
	TeamID       uuid.UUID  `json:"team_id" gorm:"type:uuid;not null;index"`
	Title        string     `json:"title" gorm:"not null;size:200"`
	Description  string     `json:"description" gorm:"type:text"`
	Status       TaskStatus `json:"status" gorm:"type:varchar(20);not null;default:'todo'"`
	CreatedByID  uuid.UUID  `json:"created_by_id" gorm:"type:uuid;not null;index"`
	AssignedToID *uuid.UUID `json:"assigned_to_id" gorm:"type:uuid;index"`

	// Relationships
	CreatedBy  *User `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`
	AssignedTo *User `json:"assigned_to" gorm:"foreignKey:AssignedToID"`
}

// TableName returns the table name for Task
func (Task) TableName() string {
	return "tasks"
}
