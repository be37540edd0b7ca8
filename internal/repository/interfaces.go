package repository

import (
	"team-task-backend/internal/database/models"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/repository_mocks.go -package=mocks

// UserRepositoryInterface defines the interface for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByUsernameOrEmail(identifier string) (*models.User, error)
}

// TeamRepositoryInterface defines the interface for team repository operations
type TeamRepositoryInterface interface {
	CreateWithOwner(team *models.Team, owner *models.TeamMember) error
	GetByID(id uuid.UUID) (*models.Team, error)
	GetWithMembers(id uuid.UUID) (*models.Team, error)
	GetByUserID(userID uuid.UUID) ([]models.Team, error)
}

// TeamMemberRepositoryInterface defines the interface for membership repository operations
type TeamMemberRepositoryInterface interface {
	Create(member *models.TeamMember) error
	GetByID(id uuid.UUID) (*models.TeamMember, error)
	GetByTeamAndUser(teamID, userID uuid.UUID) (*models.TeamMember, error)
	GetByTeamID(teamID uuid.UUID) ([]models.TeamMember, error)
	Delete(id uuid.UUID) error
}

// TaskRepositoryInterface defines the interface for task repository operations
type TaskRepositoryInterface interface {
	Create(task *models.Task) error
	GetByID(id uuid.UUID) (*models.Task, error)
	GetByTeamID(teamID uuid.UUID) ([]models.Task, error)
	Update(task *models.Task) error
	Delete(id uuid.UUID) error
}
