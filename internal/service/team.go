package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"team-task-backend/internal/database/models"
	apperrors "team-task-backend/internal/errors"
	"team-task-backend/internal/logger"
	"team-task-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TeamService handles teams and their membership registry
type TeamService struct {
	repo       repository.TeamRepositoryInterface
	memberRepo repository.TeamMemberRepositoryInterface
	userRepo   repository.UserRepositoryInterface
	validator  *validator.Validate
}

// NewTeamService creates a new team service
func NewTeamService(repo repository.TeamRepositoryInterface, memberRepo repository.TeamMemberRepositoryInterface, userRepo repository.UserRepositoryInterface, validator *validator.Validate) *TeamService {
	return &TeamService{
		repo:       repo,
		memberRepo: memberRepo,
		userRepo:   userRepo,
		validator:  validator,
	}
}

// CreateTeamRequest represents the request to create a team
type CreateTeamRequest struct {
	Name        string `json:"name" validate:"required,min=3,max=100" example:"Backend"`
	Description string `json:"description" validate:"max=500" example:"API and storage"`
}

// InviteMemberRequest represents the request to add a user to a team.
// Identifier is the invitee's username or email; Role defaults to member.
type InviteMemberRequest struct {
	Identifier string `json:"identifier" validate:"required,min=3" example:"jane@example.com"`
	Role       string `json:"role" validate:"omitempty,oneof=admin member" example:"member"`
}

// TeamMemberResponse represents a membership row with its user
type TeamMemberResponse struct {
	ID       uuid.UUID       `json:"id"`
	TeamID   uuid.UUID       `json:"team_id"`
	UserID   uuid.UUID       `json:"user_id"`
	Role     models.TeamRole `json:"role" example:"member"`
	User     *UserResponse   `json:"user,omitempty"`
	JoinedAt time.Time       `json:"joined_at"`
}

// TeamResponse represents a team with its creator and members
type TeamResponse struct {
	ID          uuid.UUID            `json:"id"`
	Name        string               `json:"name" example:"Backend"`
	Description string               `json:"description"`
	CreatedByID uuid.UUID            `json:"created_by_id"`
	CreatedBy   *UserResponse        `json:"created_by,omitempty"`
	Members     []TeamMemberResponse `json:"members"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// CreateTeam creates a team and enrolls its creator as admin in the same transaction
func (s *TeamService) CreateTeam(creatorID uuid.UUID, req *CreateTeamRequest) (*TeamResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetByID(creatorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to verify creator: %w", err)
	}

	team := &models.Team{
		Name:        req.Name,
		Description: req.Description,
		CreatedByID: creatorID,
	}
	owner := &models.TeamMember{
		UserID: creatorID,
		Role:   models.TeamRoleAdmin,
	}

	if err := s.repo.CreateWithOwner(team, owner); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	logger.New().WithFields(map[string]interface{}{
		"team_id":    team.ID,
		"created_by": creatorID,
	}).Info("Team created")

	return s.GetTeam(team.ID)
}

// GetUserTeams returns every team the user belongs to
func (s *TeamService) GetUserTeams(userID uuid.UUID) ([]TeamResponse, error) {
	teams, err := s.repo.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get teams: %w", err)
	}

	responses := make([]TeamResponse, len(teams))
	for i := range teams {
		responses[i] = *toTeamResponse(&teams[i])
	}
	return responses, nil
}

// GetTeam returns a team with its creator and members
func (s *TeamService) GetTeam(teamID uuid.UUID) (*TeamResponse, error) {
	team, err := s.repo.GetWithMembers(teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return toTeamResponse(team), nil
}

// InviteMember adds an existing user, found by username or email, to the team
func (s *TeamService) InviteMember(teamID uuid.UUID, req *InviteMemberRequest) (*TeamMemberResponse, error) {
	req.Identifier = strings.TrimSpace(req.Identifier)
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}

	role := models.TeamRoleMember
	if req.Role != "" {
		role = models.TeamRole(req.Role)
	}

	if _, err := s.repo.GetByID(teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	user, err := s.userRepo.GetByUsernameOrEmail(req.Identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	member, err := s.addMember(teamID, user.ID, role)
	if err != nil {
		return nil, err
	}
	member.User = user

	logger.New().WithFields(map[string]interface{}{
		"team_id": teamID,
		"user_id": user.ID,
		"role":    role,
	}).Info("Team member invited")

	return toTeamMemberResponse(member), nil
}

// addMember inserts the membership, reporting an existing (team, user) pair as a conflict
func (s *TeamService) addMember(teamID, userID uuid.UUID, role models.TeamRole) (*models.TeamMember, error) {
	if _, err := s.memberRepo.GetByTeamAndUser(teamID, userID); err == nil {
		return nil, apperrors.ErrTeamMemberExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}

	member := &models.TeamMember{
		TeamID: teamID,
		UserID: userID,
		Role:   role,
	}
	if err := s.memberRepo.Create(member); err != nil {
		// The unique index settles concurrent invites of the same pair
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrTeamMemberExists
		}
		return nil, fmt.Errorf("failed to add member: %w", err)
	}
	return member, nil
}

// RemoveMember deletes a membership of the team. The creator's membership can never be removed.
func (s *TeamService) RemoveMember(teamID, membershipID uuid.UUID) error {
	team, err := s.repo.GetByID(teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTeamNotFound
		}
		return fmt.Errorf("failed to get team: %w", err)
	}

	member, err := s.memberRepo.GetByID(membershipID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTeamMemberNotFound
		}
		return fmt.Errorf("failed to get team member: %w", err)
	}
	if member.TeamID != team.ID {
		return apperrors.ErrTeamMemberNotFound
	}

	if member.UserID == team.CreatedByID {
		return apperrors.ErrCannotRemoveCreator
	}

	if err := s.memberRepo.Delete(member.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTeamMemberNotFound
		}
		return fmt.Errorf("failed to remove team member: %w", err)
	}

	// Tasks assigned to the removed user keep their assignee
	logger.New().WithFields(map[string]interface{}{
		"team_id": teamID,
		"user_id": member.UserID,
	}).Info("Team member removed")

	return nil
}

// RoleOf returns the user's role in the team, or "" when the user is not a member.
// Absence is not an error; only store failures are.
func (s *TeamService) RoleOf(userID, teamID uuid.UUID) (models.TeamRole, error) {
	member, err := s.memberRepo.GetByTeamAndUser(teamID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get membership: %w", err)
	}
	return member.Role, nil
}

// IsMember reports whether the user holds any role in the team
func (s *TeamService) IsMember(userID, teamID uuid.UUID) (bool, error) {
	role, err := s.RoleOf(userID, teamID)
	if err != nil {
		return false, err
	}
	return role != "", nil
}

// IsAdmin reports whether the user is an admin of the team
func (s *TeamService) IsAdmin(userID, teamID uuid.UUID) (bool, error) {
	role, err := s.RoleOf(userID, teamID)
	if err != nil {
		return false, err
	}
	return role == models.TeamRoleAdmin, nil
}

func toTeamResponse(team *models.Team) *TeamResponse {
	members := make([]TeamMemberResponse, len(team.Members))
	for i := range team.Members {
		members[i] = *toTeamMemberResponse(&team.Members[i])
	}

	return &TeamResponse{
		ID:          team.ID,
		Name:        team.Name,
		Description: team.Description,
		CreatedByID: team.CreatedByID,
		CreatedBy:   toUserResponse(team.CreatedBy),
		Members:     members,
		CreatedAt:   team.CreatedAt,
		UpdatedAt:   team.UpdatedAt,
	}
}

func toTeamMemberResponse(member *models.TeamMember) *TeamMemberResponse {
	return &TeamMemberResponse{
		ID:       member.ID,
		TeamID:   member.TeamID,
		UserID:   member.UserID,
		Role:     member.Role,
		User:     toUserResponse(member.User),
		JoinedAt: member.CreatedAt,
	}
}
