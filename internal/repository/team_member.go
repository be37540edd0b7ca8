package repository

import (
	"team-task-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TeamMemberRepository handles database operations for team memberships
type TeamMemberRepository struct {
	db *gorm.DB
}

// NewTeamMemberRepository creates a new team membership repository
func NewTeamMemberRepository(db *gorm.DB) *TeamMemberRepository {
	return &TeamMemberRepository{db: db}
}

// Create adds a membership row. A second row for the same (team, user) pair
// fails on idx_team_members_team_user.
func (r *TeamMemberRepository) Create(member *models.TeamMember) error {
	return r.db.Omit(clause.Associations).Create(member).Error
}

// GetByID retrieves a membership by ID, with its user
func (r *TeamMemberRepository) GetByID(id uuid.UUID) (*models.TeamMember, error) {
	var member models.TeamMember
	err := r.db.Preload("User").First(&member, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// GetByTeamAndUser retrieves the membership of a user in a team
func (r *TeamMemberRepository) GetByTeamAndUser(teamID, userID uuid.UUID) (*models.TeamMember, error) {
	var member models.TeamMember
	err := r.db.First(&member, "team_id = ? AND user_id = ?", teamID, userID).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// GetByTeamID retrieves all memberships of a team in join order
func (r *TeamMemberRepository) GetByTeamID(teamID uuid.UUID) ([]models.TeamMember, error) {
	var members []models.TeamMember
	err := r.db.Preload("User").
		Where("team_id = ?", teamID).
		Order("created_at ASC").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

// Delete removes a membership. Returns gorm.ErrRecordNotFound when no row matched.
func (r *TeamMemberRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.TeamMember{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
