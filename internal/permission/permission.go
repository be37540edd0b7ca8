// Package permission holds the team/task access-control rules.
//
// Decide is a pure function: callers gather the role and ownership facts from
// the membership and task registries and pass them in. Nothing here touches
// the database, so every rule is unit-testable in isolation. Resource
// existence is not checked here; a missing team or task is reported as
// NotFound by the caller before Decide is consulted.
package permission

import (
	"team-task-backend/internal/database/models"
	apperrors "team-task-backend/internal/errors"

	"github.com/google/uuid"
)

// Action is an operation a caller asks to perform on a team or task
type Action string

const (
	ActionViewTeam     Action = "view_team"
	ActionListTasks    Action = "list_tasks"
	ActionViewTask     Action = "view_task"
	ActionCreateTask   Action = "create_task"
	ActionAssignTask   Action = "assign_task"
	ActionEditTask     Action = "edit_task"
	ActionDeleteTask   Action = "delete_task"
	ActionManageTeam   Action = "manage_team"
	ActionInviteMember Action = "invite_member"
	ActionRemoveMember Action = "remove_member"
)

// Denial reasons surfaced to API callers
const (
	ReasonNotMember       = "You are not a member of this team"
	ReasonNotAdmin        = "You must be an admin of this team to perform this action"
	ReasonAssignNonMember = "Cannot assign task to user who is not a member of this team"
	ReasonEditTask        = "You can only edit tasks you created or are assigned to"
	ReasonDeleteTask      = "You can only delete tasks you created"
	ReasonRemoveCreator   = "Cannot remove the team creator"
	ReasonUnknownAction   = "Unknown action"
)

// Facts is everything the rules may look at. Only the fields relevant to the
// requested action need to be filled in.
type Facts struct {
	// CallerID is the authenticated user asking to act
	CallerID uuid.UUID
	// CallerRole is the caller's role in the team; empty when not a member
	CallerRole models.TeamRole

	// Task ownership, for edit and delete
	TaskCreatorID  uuid.UUID
	TaskAssigneeID *uuid.UUID

	// AssigneeIsMember is whether the prospective assignee belongs to the task's team
	AssigneeIsMember bool

	// Member removal: the user behind the membership and the team's creator
	TargetUserID  uuid.UUID
	TeamCreatorID uuid.UUID
}

// IsMember reports whether the caller holds any role in the team
func (f Facts) IsMember() bool {
	return f.CallerRole.IsValid()
}

// IsAdmin reports whether the caller is an admin of the team
func (f Facts) IsAdmin() bool {
	return f.CallerRole == models.TeamRoleAdmin
}

// Decision is the outcome of Decide: allowed, or denied with a reason
type Decision struct {
	Allowed bool
	Reason  string
}

// Allow returns an allowing decision
func Allow() Decision {
	return Decision{Allowed: true}
}

// Deny returns a denying decision with a human-readable reason
func Deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// Err converts a denial into an AuthorizationError; nil when allowed.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return apperrors.NewAuthorizationError(d.Reason)
}

// Decide evaluates the rule for action against facts. Within a rule the
// checks run in order and the first match wins.
func Decide(action Action, f Facts) Decision {
	switch action {
	case ActionViewTeam, ActionListTasks, ActionViewTask, ActionCreateTask:
		return requireMember(f)

	case ActionAssignTask:
		// Independent of the caller's role
		if !f.AssigneeIsMember {
			return Deny(ReasonAssignNonMember)
		}
		return Allow()

	case ActionEditTask:
		if f.IsAdmin() {
			return Allow()
		}
		if f.CallerID == f.TaskCreatorID {
			return Allow()
		}
		if f.TaskAssigneeID != nil && *f.TaskAssigneeID == f.CallerID {
			return Allow()
		}
		return Deny(ReasonEditTask)

	case ActionDeleteTask:
		// Assignees may edit but never delete
		if f.IsAdmin() || f.CallerID == f.TaskCreatorID {
			return Allow()
		}
		return Deny(ReasonDeleteTask)

	case ActionManageTeam, ActionInviteMember:
		return requireAdmin(f)

	case ActionRemoveMember:
		if d := requireAdmin(f); !d.Allowed {
			return d
		}
		// The creator's membership is permanent, whoever asks
		if f.TargetUserID == f.TeamCreatorID {
			return Deny(ReasonRemoveCreator)
		}
		return Allow()
	}

	return Deny(ReasonUnknownAction)
}

func requireMember(f Facts) Decision {
	if !f.IsMember() {
		return Deny(ReasonNotMember)
	}
	return Allow()
}

func requireAdmin(f Facts) Decision {
	if !f.IsAdmin() {
		return Deny(ReasonNotAdmin)
	}
	return Allow()
}
