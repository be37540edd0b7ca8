package repository

import (
	"team-task-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TaskRepository handles database operations for tasks
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create creates a new task
func (r *TaskRepository) Create(task *models.Task) error {
	return r.db.Omit(clause.Associations).Create(task).Error
}

// GetByID retrieves a task by ID with its creator and assignee
func (r *TaskRepository) GetByID(id uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := r.db.Preload("CreatedBy").Preload("AssignedTo").First(&task, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// GetByTeamID retrieves all tasks of a team, newest first
func (r *TaskRepository) GetByTeamID(teamID uuid.UUID) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.Preload("CreatedBy").Preload("AssignedTo").
		Where("team_id = ?", teamID).
		Order("created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update writes every column of the task, including a nil assignee.
// Loaded associations are never written back.
func (r *TaskRepository) Update(task *models.Task) error {
	return r.db.Omit(clause.Associations).Save(task).Error
}

// Delete deletes a task. Returns gorm.ErrRecordNotFound when no row matched.
func (r *TaskRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Task{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
