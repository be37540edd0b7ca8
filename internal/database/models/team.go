package models

import (
	"github.com/google/uuid"
)

// Team is a collaborative unit. CreatedByID is set once at creation and never changes.
type Team struct {
	BaseModel
	Name        string    `json:"name" gorm:"not null;size:100" validate:"required,min=3,max=100"`
	Description string    `json:"description" gorm:"size:500" validate:"max=500"`
	CreatedByID uuid.UUID `json:"created_by_id" gorm:"type:uuid;not null;index"`

	// Relationships
	CreatedBy *User        `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`
	Members   []TeamMember `json:"members,omitempty" gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE"`
	Tasks     []Task       `json:"-" gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Team
func (Team) TableName() string {
	return "teams"
}

// TeamMember is the (user, team, role) membership row.
// The composite unique index turns a concurrent double invite into a duplicate key error.
type TeamMember struct {
	BaseModel
	TeamID uuid.UUID `json:"team_id" gorm:"type:uuid;not null;uniqueIndex:idx_team_members_team_user"`
	UserID uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_team_members_team_user;index"`
	Role   TeamRole  `json:"role" gorm:"type:varchar(20);not null;default:'member'"`

	// Relationships
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// TableName returns the table name for TeamMember
func (TeamMember) TableName() string {
	return "team_members"
}
