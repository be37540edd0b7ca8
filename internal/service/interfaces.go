package service

import (
	"team-task-backend/internal/database/models"
	"team-task-backend/internal/permission"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/service_mocks.go -package=mocks

// TokenIssuer signs access tokens for authenticated users
type TokenIssuer interface {
	GenerateJWT(user *models.User) (string, error)
	ExpiresIn() int64
}

// PasswordHasher hashes and verifies passwords
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// MembershipReader answers role queries against the team membership registry
type MembershipReader interface {
	RoleOf(userID, teamID uuid.UUID) (models.TeamRole, error)
}

// AuthServiceInterface defines the interface for registration and login
type AuthServiceInterface interface {
	Register(req *RegisterRequest) (*AuthResponse, error)
	Login(req *LoginRequest) (*AuthResponse, error)
}

// UserServiceInterface defines the interface for user service
type UserServiceInterface interface {
	GetProfile(userID uuid.UUID) (*UserResponse, error)
}

// TeamServiceInterface defines the interface for team service
type TeamServiceInterface interface {
	CreateTeam(creatorID uuid.UUID, req *CreateTeamRequest) (*TeamResponse, error)
	GetUserTeams(userID uuid.UUID) ([]TeamResponse, error)
	GetTeam(teamID uuid.UUID) (*TeamResponse, error)
	InviteMember(teamID uuid.UUID, req *InviteMemberRequest) (*TeamMemberResponse, error)
	RemoveMember(teamID, membershipID uuid.UUID) error
	RoleOf(userID, teamID uuid.UUID) (models.TeamRole, error)
	IsMember(userID, teamID uuid.UUID) (bool, error)
	IsAdmin(userID, teamID uuid.UUID) (bool, error)
}

// TaskServiceInterface defines the interface for task service
type TaskServiceInterface interface {
	CreateTask(teamID, creatorID uuid.UUID, req *CreateTaskRequest) (*TaskResponse, error)
	GetTask(teamID, taskID uuid.UUID) (*TaskResponse, error)
	ListTasks(teamID uuid.UUID) ([]TaskResponse, error)
	UpdateTask(teamID, taskID uuid.UUID, req *UpdateTaskRequest) (*TaskResponse, error)
	DeleteTask(teamID, taskID uuid.UUID) error
}

// AccessServiceInterface evaluates access-control decisions against stored facts
type AccessServiceInterface interface {
	AuthorizeTeam(callerID, teamID uuid.UUID, action permission.Action) error
	AuthorizeTask(callerID, teamID, taskID uuid.UUID, action permission.Action) error
	AuthorizeMemberRemoval(callerID, teamID, membershipID uuid.UUID) error
}
