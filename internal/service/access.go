package service

import (
	"errors"
	"fmt"

	"team-task-backend/internal/database/models"
	apperrors "team-task-backend/internal/errors"
	"team-task-backend/internal/logger"
	"team-task-backend/internal/permission"
	"team-task-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccessService gathers role and ownership facts and asks the permission rules
// for a decision. Roles come from the membership registry. Missing resources are
// reported before any decision is made.
type AccessService struct {
	teamRepo   repository.TeamRepositoryInterface
	memberRepo repository.TeamMemberRepositoryInterface
	taskRepo   repository.TaskRepositoryInterface
	roles      MembershipReader
}

// NewAccessService creates a new access service
func NewAccessService(teamRepo repository.TeamRepositoryInterface, memberRepo repository.TeamMemberRepositoryInterface, taskRepo repository.TaskRepositoryInterface, roles MembershipReader) *AccessService {
	return &AccessService{
		teamRepo:   teamRepo,
		memberRepo: memberRepo,
		taskRepo:   taskRepo,
		roles:      roles,
	}
}

// AuthorizeTeam checks a team-scoped action such as viewing the team or inviting a member
func (s *AccessService) AuthorizeTeam(callerID, teamID uuid.UUID, action permission.Action) error {
	if _, err := s.getTeam(teamID); err != nil {
		return err
	}

	role, err := s.roles.RoleOf(callerID, teamID)
	if err != nil {
		return err
	}

	return s.decide(action, permission.Facts{
		CallerID:   callerID,
		CallerRole: role,
	}, teamID)
}

// AuthorizeTask checks a task-scoped action such as editing or deleting a task
func (s *AccessService) AuthorizeTask(callerID, teamID, taskID uuid.UUID, action permission.Action) error {
	if _, err := s.getTeam(teamID); err != nil {
		return err
	}

	task, err := s.taskRepo.GetByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTaskNotFound
		}
		return fmt.Errorf("failed to get task: %w", err)
	}
	if task.TeamID != teamID {
		return apperrors.ErrTaskNotFound
	}

	role, err := s.roles.RoleOf(callerID, teamID)
	if err != nil {
		return err
	}

	return s.decide(action, permission.Facts{
		CallerID:       callerID,
		CallerRole:     role,
		TaskCreatorID:  task.CreatedByID,
		TaskAssigneeID: task.AssignedToID,
	}, teamID)
}

// AuthorizeMemberRemoval checks that the caller may remove the given membership of the team
func (s *AccessService) AuthorizeMemberRemoval(callerID, teamID, membershipID uuid.UUID) error {
	team, err := s.getTeam(teamID)
	if err != nil {
		return err
	}

	member, err := s.memberRepo.GetByID(membershipID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTeamMemberNotFound
		}
		return fmt.Errorf("failed to get team member: %w", err)
	}
	if member.TeamID != teamID {
		return apperrors.ErrTeamMemberNotFound
	}

	role, err := s.roles.RoleOf(callerID, teamID)
	if err != nil {
		return err
	}

	return s.decide(permission.ActionRemoveMember, permission.Facts{
		CallerID:      callerID,
		CallerRole:    role,
		TargetUserID:  member.UserID,
		TeamCreatorID: team.CreatedByID,
	}, teamID)
}

func (s *AccessService) decide(action permission.Action, facts permission.Facts, teamID uuid.UUID) error {
	decision := permission.Decide(action, facts)
	if !decision.Allowed {
		logger.New().WithFields(map[string]interface{}{
			"user_id": facts.CallerID,
			"team_id": teamID,
			"action":  action,
			"reason":  decision.Reason,
		}).Debug("Access denied")
	}
	return decision.Err()
}

func (s *AccessService) getTeam(teamID uuid.UUID) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return team, nil
}
