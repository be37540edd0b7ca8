package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"team-task-backend/internal/auth"
	"team-task-backend/internal/config"
	"team-task-backend/internal/database"
	"team-task-backend/internal/database/models"
	"team-task-backend/internal/permission"
	"team-task-backend/internal/repository"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Simple structures that directly match the YAML files
type UserData struct {
	Username string `yaml:"username"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

type TeamMemberData struct {
	Username string `yaml:"username"`
	Role     string `yaml:"role"`
}

type TeamData struct {
	Name        string           `yaml:"name"`
	Description string           `yaml:"description"`
	CreatedBy   string           `yaml:"created_by"`
	Members     []TeamMemberData `yaml:"members,omitempty"`
}

type TaskData struct {
	Team        string `yaml:"team"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Status      string `yaml:"status"`
	CreatedBy   string `yaml:"created_by"`
	AssignedTo  string `yaml:"assigned_to,omitempty"`
}

// File structures
type UsersFile struct {
	Users []UserData `yaml:"users"`
}

type TeamsFile struct {
	Teams []TeamData `yaml:"teams"`
}

type TasksFile struct {
	Tasks []TaskData `yaml:"tasks"`
}

// seeder creates seed records through the same repositories the server uses
type seeder struct {
	users   repository.UserRepositoryInterface
	teams   repository.TeamRepositoryInterface
	members repository.TeamMemberRepositoryInterface
	tasks   repository.TaskRepositoryInterface
	hasher  *auth.PasswordHasher
}

func newSeeder(db *gorm.DB, bcryptCost int) *seeder {
	return &seeder{
		users:   repository.NewUserRepository(db),
		teams:   repository.NewTeamRepository(db),
		members: repository.NewTeamMemberRepository(db),
		tasks:   repository.NewTaskRepository(db),
		hasher:  auth.NewPasswordHasher(bcryptCost),
	}
}

func main() {
	log.Println("Loading initial data from YAML files...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database with retry (for dockerized Postgres startup)
	db, err := connectWithRetry(cfg.DatabaseURL, 60, time.Second)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := loadDataFromYAMLFiles(newSeeder(db, cfg.BcryptCost), cfg.SeedDataDir); err != nil {
		log.Fatalf("Failed to load data from YAML files: %v", err)
	}

	log.Println("Initial data loaded successfully")
}

// connectWithRetry attempts to initialize the DB with retries to wait for Postgres readiness.
func connectWithRetry(dsn string, maxAttempts int, delay time.Duration) (*gorm.DB, error) {
	// Suppress SQL and "record not found" noise during loading
	opts := &database.Options{
		LogLevel: logger.Silent,
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		db, err := database.Initialize(dsn, opts)
		if err == nil {
			return db, nil
		}
		// Only log every 10 attempts to reduce noise
		if attempt%10 == 0 || attempt == maxAttempts {
			log.Printf("Database not ready (%d/%d): %v", attempt, maxAttempts, err)
		}
		time.Sleep(delay)
	}
	return nil, fmt.Errorf("database not ready after %d attempts", maxAttempts)
}

func loadDataFromYAMLFiles(s *seeder, dataDir string) error {
	var users UsersFile
	if err := loadYAMLFiles(dataDir, "users", func(data []byte) error {
		var file UsersFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return err
		}
		users.Users = append(users.Users, file.Users...)
		return nil
	}); err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}

	var teams TeamsFile
	if err := loadYAMLFiles(dataDir, "teams", func(data []byte) error {
		var file TeamsFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return err
		}
		teams.Teams = append(teams.Teams, file.Teams...)
		return nil
	}); err != nil {
		return fmt.Errorf("failed to load teams: %w", err)
	}

	var tasks TasksFile
	if err := loadYAMLFiles(dataDir, "tasks", func(data []byte) error {
		var file TasksFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return err
		}
		tasks.Tasks = append(tasks.Tasks, file.Tasks...)
		return nil
	}); err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}

	// Create users first
	userMap := make(map[string]*models.User)
	userCreated := 0
	for _, userData := range users.Users {
		user, created, err := s.createUser(userData)
		if err != nil {
			return fmt.Errorf("failed to create user %s: %w", userData.Username, err)
		}
		userMap[user.Username] = user
		if created {
			userCreated++
		}
	}
	log.Printf("Users: %d created, %d total", userCreated, len(users.Users))

	// Create teams with their creator as admin, then the listed members
	teamMap := make(map[string]*models.Team)
	teamCreated, memberCreated := 0, 0
	for _, teamData := range teams.Teams {
		team, created, err := s.createTeam(teamData, userMap)
		if err != nil {
			return fmt.Errorf("failed to create team %s: %w", teamData.Name, err)
		}
		teamMap[team.Name] = team
		if created {
			teamCreated++
		}

		for _, memberData := range teamData.Members {
			created, err := s.addMember(team, memberData, userMap)
			if err != nil {
				return fmt.Errorf("failed to add %s to team %s: %w", memberData.Username, teamData.Name, err)
			}
			if created {
				memberCreated++
			}
		}
	}
	log.Printf("Teams: %d created, %d total; memberships: %d created", teamCreated, len(teams.Teams), memberCreated)

	// Create tasks
	taskCreated := 0
	for _, taskData := range tasks.Tasks {
		created, err := s.createTask(taskData, teamMap, userMap)
		if err != nil {
			log.Printf("Warning: failed to create task %q: %v", taskData.Title, err)
			continue // Continue with other tasks
		}
		if created {
			taskCreated++
		}
	}
	log.Printf("Tasks: %d created, %d total", taskCreated, len(tasks.Tasks))

	return nil
}

// loadYAMLFiles calls decode for every .yaml file under dataDir whose path mentions kind
func loadYAMLFiles(dataDir, kind string, decode func(data []byte) error) error {
	return filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && strings.HasSuffix(path, ".yaml") && strings.Contains(filepath.Base(path), kind) {
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			if err := decode(data); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
		}
		return nil
	})
}

func (s *seeder) createUser(userData UserData) (*models.User, bool, error) {
	user, err := s.users.GetByUsername(userData.Username)
	if err == nil {
		return user, false, nil // created = false (existing)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to query user: %w", err)
	}

	digest, err := s.hasher.Hash(userData.Password)
	if err != nil {
		return nil, false, err
	}

	user = &models.User{
		Username:     userData.Username,
		Email:        strings.ToLower(userData.Email),
		PasswordHash: digest,
	}
	if err := s.users.Create(user); err != nil {
		return nil, false, fmt.Errorf("failed to create user: %w", err)
	}
	return user, true, nil
}

func (s *seeder) createTeam(teamData TeamData, userMap map[string]*models.User) (*models.Team, bool, error) {
	creator := userMap[teamData.CreatedBy]
	if creator == nil {
		return nil, false, fmt.Errorf("creator %s not found", teamData.CreatedBy)
	}

	// A team is identified by its name among the teams its creator belongs to
	existing, err := s.teams.GetByUserID(creator.ID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to query teams: %w", err)
	}
	for i := range existing {
		if existing[i].Name == teamData.Name && existing[i].CreatedByID == creator.ID {
			return &existing[i], false, nil
		}
	}

	team := &models.Team{
		Name:        teamData.Name,
		Description: teamData.Description,
		CreatedByID: creator.ID,
	}
	owner := &models.TeamMember{UserID: creator.ID, Role: models.TeamRoleAdmin}
	if err := s.teams.CreateWithOwner(team, owner); err != nil {
		return nil, false, fmt.Errorf("failed to create team: %w", err)
	}
	return team, true, nil
}

func (s *seeder) addMember(team *models.Team, memberData TeamMemberData, userMap map[string]*models.User) (bool, error) {
	user := userMap[memberData.Username]
	if user == nil {
		return false, fmt.Errorf("user %s not found", memberData.Username)
	}

	role := models.TeamRoleMember
	if memberData.Role != "" {
		role = models.TeamRole(memberData.Role)
	}
	if !role.IsValid() {
		return false, fmt.Errorf("invalid role %q", memberData.Role)
	}

	if _, err := s.members.GetByTeamAndUser(team.ID, user.ID); err == nil {
		return false, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("failed to query membership: %w", err)
	}

	if err := s.members.Create(&models.TeamMember{TeamID: team.ID, UserID: user.ID, Role: role}); err != nil {
		return false, fmt.Errorf("failed to create membership: %w", err)
	}
	return true, nil
}

func (s *seeder) createTask(taskData TaskData, teamMap map[string]*models.Team, userMap map[string]*models.User) (bool, error) {
	team := teamMap[taskData.Team]
	if team == nil {
		return false, fmt.Errorf("team %s not found", taskData.Team)
	}
	creator := userMap[taskData.CreatedBy]
	if creator == nil {
		return false, fmt.Errorf("creator %s not found", taskData.CreatedBy)
	}

	status := models.TaskStatusTodo
	if taskData.Status != "" {
		status = models.TaskStatus(taskData.Status)
	}
	if !status.IsValid() {
		return false, fmt.Errorf("invalid status %q", taskData.Status)
	}

	existing, err := s.tasks.GetByTeamID(team.ID)
	if err != nil {
		return false, fmt.Errorf("failed to query tasks: %w", err)
	}
	for _, task := range existing {
		if task.Title == taskData.Title {
			return false, nil
		}
	}

	task := &models.Task{
		TeamID:      team.ID,
		Title:       taskData.Title,
		Description: taskData.Description,
		Status:      status,
		CreatedByID: creator.ID,
	}

	if taskData.AssignedTo != "" {
		assignee := userMap[taskData.AssignedTo]
		if assignee == nil {
			return false, fmt.Errorf("assignee %s not found", taskData.AssignedTo)
		}
		_, err := s.members.GetByTeamAndUser(team.ID, assignee.ID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return false, fmt.Errorf("failed to query membership: %w", err)
		}
		if err := permission.Decide(permission.ActionAssignTask, permission.Facts{AssigneeIsMember: err == nil}).Err(); err != nil {
			return false, err
		}
		task.AssignedToID = &assignee.ID
	}

	if err := s.tasks.Create(task); err != nil {
		return false, fmt.Errorf("failed to create task: %w", err)
	}
	return true, nil
}
