package testutils

import (
	"time"

	"team-task-backend/internal/database/models"

	"github.com/google/uuid"
)

// UserFactory provides methods to create test User data
type UserFactory struct{}

// NewUserFactory creates a new UserFactory
func NewUserFactory() *UserFactory {
	return &UserFactory{}
}

// Create creates a test User with a unique username and email
func (f *UserFactory) Create() *models.User {
	id := uuid.New()
	suffix := id.String()[:8]

	return &models.User{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Username:     "user_" + suffix,
		Email:        "user_" + suffix + "@test.com",
		PasswordHash: "$2a$04$invalidhashusedonlyfortests",
	}
}

// WithUsername sets a custom username; the email follows it
func (f *UserFactory) WithUsername(username string) *models.User {
	user := f.Create()
	user.Username = username
	user.Email = username + "@test.com"
	return user
}

// WithEmail sets a custom email for the user
func (f *UserFactory) WithEmail(email string) *models.User {
	user := f.Create()
	user.Email = email
	return user
}

// TeamFactory provides methods to create test Team data
type TeamFactory struct{}

// NewTeamFactory creates a new TeamFactory
func NewTeamFactory() *TeamFactory {
	return &TeamFactory{}
}

// Create creates a test Team with default values and a random creator
func (f *TeamFactory) Create() *models.Team {
	return &models.Team{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name:        "Test Team",
		Description: "A test team for testing purposes",
		CreatedByID: uuid.New(),
	}
}

// WithCreator sets the creating user of the team
func (f *TeamFactory) WithCreator(creatorID uuid.UUID) *models.Team {
	team := f.Create()
	team.CreatedByID = creatorID
	return team
}

// TeamMemberFactory provides methods to create test TeamMember data
type TeamMemberFactory struct{}

// NewTeamMemberFactory creates a new TeamMemberFactory
func NewTeamMemberFactory() *TeamMemberFactory {
	return &TeamMemberFactory{}
}

// Create creates a test membership with the member role
func (f *TeamMemberFactory) Create(teamID, userID uuid.UUID) *models.TeamMember {
	return &models.TeamMember{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		TeamID: teamID,
		UserID: userID,
		Role:   models.TeamRoleMember,
	}
}

// Admin creates a test membership with the admin role
func (f *TeamMemberFactory) Admin(teamID, userID uuid.UUID) *models.TeamMember {
	member := f.Create(teamID, userID)
	member.Role = models.TeamRoleAdmin
	return member
}

// TaskFactory provides methods to create test Task data
type TaskFactory struct{}

// NewTaskFactory creates a new TaskFactory
func NewTaskFactory() *TaskFactory {
	return &TaskFactory{}
}

// Create creates a test Task in the given team
func (f *TaskFactory) Create(teamID, creatorID uuid.UUID) *models.Task {
	return &models.Task{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		TeamID:      teamID,
		Title:       "Test Task",
		Description: "A test task for testing purposes",
		Status:      models.TaskStatusTodo,
		CreatedByID: creatorID,
	}
}

// AssignedTo creates a test Task assigned to assigneeID
func (f *TaskFactory) AssignedTo(teamID, creatorID, assigneeID uuid.UUID) *models.Task {
	task := f.Create(teamID, creatorID)
	task.AssignedToID = &assigneeID
	return task
}

// FactorySet provides access to all factories
type FactorySet struct {
	User       *UserFactory
	Team       *TeamFactory
	TeamMember *TeamMemberFactory
	Task       *TaskFactory
}

// NewFactorySet creates a new FactorySet with all factories initialized
func NewFactorySet() *FactorySet {
	return &FactorySet{
		User:       NewUserFactory(),
		Team:       NewTeamFactory(),
		TeamMember: NewTeamMemberFactory(),
		Task:       NewTaskFactory(),
	}
}

// CreateTeamWithCreator builds a creator, a team owned by them and the creator's admin membership.
// Nothing is persisted.
func (fs *FactorySet) CreateTeamWithCreator() (*models.User, *models.Team, *models.TeamMember) {
	creator := fs.User.Create()
	team := fs.Team.WithCreator(creator.ID)
	owner := fs.TeamMember.Admin(team.ID, creator.ID)
	return creator, team, owner
}
