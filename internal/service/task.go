package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"team-task-backend/internal/database/models"
	apperrors "team-task-backend/internal/errors"
	"team-task-backend/internal/logger"
	"team-task-backend/internal/permission"
	"team-task-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskService is the task registry. It validates data but does not authorize callers;
// handlers consult the access service before invoking a mutation.
type TaskService struct {
	repo       repository.TaskRepositoryInterface
	teamRepo   repository.TeamRepositoryInterface
	memberRepo repository.TeamMemberRepositoryInterface
	userRepo   repository.UserRepositoryInterface
	validator  *validator.Validate
}

// NewTaskService creates a new task service
func NewTaskService(repo repository.TaskRepositoryInterface, teamRepo repository.TeamRepositoryInterface, memberRepo repository.TeamMemberRepositoryInterface, userRepo repository.UserRepositoryInterface, validator *validator.Validate) *TaskService {
	return &TaskService{
		repo:       repo,
		teamRepo:   teamRepo,
		memberRepo: memberRepo,
		userRepo:   userRepo,
		validator:  validator,
	}
}

// CreateTaskRequest represents the request to create a task
type CreateTaskRequest struct {
	Title        string     `json:"title" validate:"required,min=3,max=200" example:"Write API docs"`
	Description  string     `json:"description" example:"Document every endpoint"`
	Status       string     `json:"status" validate:"omitempty,oneof=todo in_progress done" example:"todo"`
	AssignedToID *uuid.UUID `json:"assigned_to_id"`
}

// UpdateTaskRequest represents a partial task update. Only supplied fields change;
// "assigned_to_id": null un-assigns the task.
type UpdateTaskRequest struct {
	Title        *string      `json:"title" validate:"omitempty,min=3,max=200"`
	Description  *string      `json:"description"`
	Status       *string      `json:"status" validate:"omitempty,oneof=todo in_progress done"`
	AssignedToID OptionalUUID `json:"assigned_to_id" swaggertype:"string"`
}

// TaskResponse represents a task with its creator and assignee
type TaskResponse struct {
	ID           uuid.UUID         `json:"id"`
	TeamID       uuid.UUID         `json:"team_id"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Status       models.TaskStatus `json:"status" example:"todo"`
	CreatedByID  uuid.UUID         `json:"created_by_id"`
	CreatedBy    *UserResponse     `json:"created_by,omitempty"`
	AssignedToID *uuid.UUID        `json:"assigned_to_id"`
	AssignedTo   *UserResponse     `json:"assigned_to"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// CreateTask creates a task in the team. An assignee must exist and belong to the team.
func (s *TaskService) CreateTask(teamID, creatorID uuid.UUID, req *CreateTaskRequest) (*TaskResponse, error) {
	// Trimmed first so a blank title fails the length rule
	req.Title = strings.TrimSpace(req.Title)
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}

	if _, err := s.teamRepo.GetByID(teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	if req.AssignedToID != nil {
		if err := s.checkAssignee(teamID, *req.AssignedToID); err != nil {
			return nil, err
		}
	}

	status := models.TaskStatusTodo
	if req.Status != "" {
		status = models.TaskStatus(req.Status)
	}

	task := &models.Task{
		TeamID:       teamID,
		Title:        req.Title,
		Description:  req.Description,
		Status:       status,
		CreatedByID:  creatorID,
		AssignedToID: req.AssignedToID,
	}
	if err := s.repo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	logger.New().WithFields(map[string]interface{}{
		"task_id":    task.ID,
		"team_id":    teamID,
		"created_by": creatorID,
	}).Info("Task created")

	return s.reload(task.ID)
}

// GetTask returns a task of the team. A task of another team is reported as not found.
func (s *TaskService) GetTask(teamID, taskID uuid.UUID) (*TaskResponse, error) {
	task, err := s.load(teamID, taskID)
	if err != nil {
		return nil, err
	}
	return toTaskResponse(task), nil
}

// ListTasks returns the team's tasks, newest first
func (s *TaskService) ListTasks(teamID uuid.UUID) ([]TaskResponse, error) {
	if _, err := s.teamRepo.GetByID(teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	tasks, err := s.repo.GetByTeamID(teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	responses := make([]TaskResponse, len(tasks))
	for i := range tasks {
		responses[i] = *toTaskResponse(&tasks[i])
	}
	return responses, nil
}

// UpdateTask applies the supplied fields. A present assigned_to_id, including null,
// is re-validated; an unchanged assignee who has left the team is kept as is.
func (s *TaskService) UpdateTask(teamID, taskID uuid.UUID, req *UpdateTaskRequest) (*TaskResponse, error) {
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		req.Title = &title
	}
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}

	task, err := s.load(teamID, taskID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		task.Status = models.TaskStatus(*req.Status)
	}
	if req.AssignedToID.Set {
		if req.AssignedToID.Value != nil {
			if err := s.checkAssignee(task.TeamID, *req.AssignedToID.Value); err != nil {
				return nil, err
			}
		}
		task.AssignedToID = req.AssignedToID.Value
	}

	// Drop loaded associations so the new foreign keys are what gets written
	task.CreatedBy = nil
	task.AssignedTo = nil

	if err := s.repo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.reload(task.ID)
}

// DeleteTask deletes a task of the team
func (s *TaskService) DeleteTask(teamID, taskID uuid.UUID) error {
	if _, err := s.load(teamID, taskID); err != nil {
		return err
	}

	if err := s.repo.Delete(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}

	logger.New().WithFields(map[string]interface{}{
		"task_id": taskID,
		"team_id": teamID,
	}).Info("Task deleted")

	return nil
}

// checkAssignee verifies that the user exists and may be assigned a task of the team
func (s *TaskService) checkAssignee(teamID, userID uuid.UUID) error {
	if _, err := s.userRepo.GetByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrAssignedUserNotFound
		}
		return fmt.Errorf("failed to get assigned user: %w", err)
	}

	isMember := true
	if _, err := s.memberRepo.GetByTeamAndUser(teamID, userID); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check assignee membership: %w", err)
		}
		isMember = false
	}

	return permission.Decide(permission.ActionAssignTask, permission.Facts{
		AssigneeIsMember: isMember,
	}).Err()
}

func (s *TaskService) load(teamID, taskID uuid.UUID) (*models.Task, error) {
	task, err := s.repo.GetByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	if task.TeamID != teamID {
		return nil, apperrors.ErrTaskNotFound
	}
	return task, nil
}

func (s *TaskService) reload(taskID uuid.UUID) (*TaskResponse, error) {
	task, err := s.repo.GetByID(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload task: %w", err)
	}
	return toTaskResponse(task), nil
}

func toTaskResponse(task *models.Task) *TaskResponse {
	return &TaskResponse{
		ID:           task.ID,
		TeamID:       task.TeamID,
		Title:        task.Title,
		Description:  task.Description,
		Status:       task.Status,
		CreatedByID:  task.CreatedByID,
		CreatedBy:    toUserResponse(task.CreatedBy),
		AssignedToID: task.AssignedToID,
		AssignedTo:   toUserResponse(task.AssignedTo),
		CreatedAt:    task.CreatedAt,
		UpdatedAt:    task.UpdatedAt,
	}
}
