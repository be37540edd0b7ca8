package permission

import (
	"testing"

	"team-task-backend/internal/database/models"
	apperrors "team-task-backend/internal/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestMembershipActions(t *testing.T) {
	actions := []Action{ActionViewTeam, ActionListTasks, ActionViewTask, ActionCreateTask}

	for _, action := range actions {
		t.Run(string(action), func(t *testing.T) {
			caller := uuid.New()

			assert.True(t, Decide(action, Facts{CallerID: caller, CallerRole: models.TeamRoleMember}).Allowed)
			assert.True(t, Decide(action, Facts{CallerID: caller, CallerRole: models.TeamRoleAdmin}).Allowed)

			d := Decide(action, Facts{CallerID: caller})
			assert.False(t, d.Allowed)
			assert.Equal(t, ReasonNotMember, d.Reason)
		})
	}
}

func TestAssignTaskIgnoresCallerRole(t *testing.T) {
	roles := []models.TeamRole{"", models.TeamRoleMember, models.TeamRoleAdmin}

	for _, role := range roles {
		t.Run("role="+string(role), func(t *testing.T) {
			denied := Decide(ActionAssignTask, Facts{CallerID: uuid.New(), CallerRole: role, AssigneeIsMember: false})
			assert.False(t, denied.Allowed)
			assert.Equal(t, ReasonAssignNonMember, denied.Reason)

			allowed := Decide(ActionAssignTask, Facts{CallerID: uuid.New(), CallerRole: role, AssigneeIsMember: true})
			assert.True(t, allowed.Allowed)
		})
	}
}

// Creator A, assignee B, admin C, unrelated member D.
func TestTaskEditAndDeleteMatrix(t *testing.T) {
	a, b, c, d := uuid.New(), uuid.New(), uuid.New(), uuid.New()

	roles := map[uuid.UUID]models.TeamRole{
		a: models.TeamRoleMember,
		b: models.TeamRoleMember,
		c: models.TeamRoleAdmin,
		d: models.TeamRoleMember,
	}

	facts := func(caller uuid.UUID) Facts {
		return Facts{
			CallerID:       caller,
			CallerRole:     roles[caller],
			TaskCreatorID:  a,
			TaskAssigneeID: &b,
		}
	}

	testCases := []struct {
		name      string
		caller    uuid.UUID
		canEdit   bool
		canDelete bool
	}{
		{name: "creator", caller: a, canEdit: true, canDelete: true},
		{name: "assignee", caller: b, canEdit: true, canDelete: false},
		{name: "admin", caller: c, canEdit: true, canDelete: true},
		{name: "unrelated member", caller: d, canEdit: false, canDelete: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			edit := Decide(ActionEditTask, facts(tc.caller))
			assert.Equal(t, tc.canEdit, edit.Allowed)
			if !tc.canEdit {
				assert.Equal(t, ReasonEditTask, edit.Reason)
			}

			del := Decide(ActionDeleteTask, facts(tc.caller))
			assert.Equal(t, tc.canDelete, del.Allowed)
			if !tc.canDelete {
				assert.Equal(t, ReasonDeleteTask, del.Reason)
			}
		})
	}
}

func TestEditTaskWithoutAssignee(t *testing.T) {
	creator := uuid.New()
	other := uuid.New()

	f := Facts{CallerID: other, CallerRole: models.TeamRoleMember, TaskCreatorID: creator}
	assert.False(t, Decide(ActionEditTask, f).Allowed)

	f.CallerID = creator
	assert.True(t, Decide(ActionEditTask, f).Allowed)
}

func TestCreatorKeepsControlAfterReassigning(t *testing.T) {
	creator := uuid.New()
	newAssignee := uuid.New()

	f := Facts{
		CallerID:       creator,
		CallerRole:     models.TeamRoleMember,
		TaskCreatorID:  creator,
		TaskAssigneeID: &newAssignee,
	}
	assert.True(t, Decide(ActionEditTask, f).Allowed)
	assert.True(t, Decide(ActionDeleteTask, f).Allowed)
}

func TestAdminActions(t *testing.T) {
	for _, action := range []Action{ActionManageTeam, ActionInviteMember} {
		t.Run(string(action), func(t *testing.T) {
			assert.True(t, Decide(action, Facts{CallerRole: models.TeamRoleAdmin}).Allowed)

			d := Decide(action, Facts{CallerRole: models.TeamRoleMember})
			assert.False(t, d.Allowed)
			assert.Equal(t, ReasonNotAdmin, d.Reason)

			assert.False(t, Decide(action, Facts{}).Allowed)
		})
	}
}

func TestRemoveMember(t *testing.T) {
	creator := uuid.New()
	otherAdmin := uuid.New()
	member := uuid.New()

	t.Run("admin removes regular member", func(t *testing.T) {
		d := Decide(ActionRemoveMember, Facts{
			CallerID: creator, CallerRole: models.TeamRoleAdmin,
			TargetUserID: member, TeamCreatorID: creator,
		})
		assert.True(t, d.Allowed)
	})

	t.Run("member cannot remove anyone", func(t *testing.T) {
		d := Decide(ActionRemoveMember, Facts{
			CallerID: member, CallerRole: models.TeamRoleMember,
			TargetUserID: otherAdmin, TeamCreatorID: creator,
		})
		assert.False(t, d.Allowed)
		assert.Equal(t, ReasonNotAdmin, d.Reason)
	})

	t.Run("another admin cannot remove the creator", func(t *testing.T) {
		d := Decide(ActionRemoveMember, Facts{
			CallerID: otherAdmin, CallerRole: models.TeamRoleAdmin,
			TargetUserID: creator, TeamCreatorID: creator,
		})
		assert.False(t, d.Allowed)
		assert.Equal(t, ReasonRemoveCreator, d.Reason)
	})

	t.Run("creator cannot remove themself", func(t *testing.T) {
		d := Decide(ActionRemoveMember, Facts{
			CallerID: creator, CallerRole: models.TeamRoleAdmin,
			TargetUserID: creator, TeamCreatorID: creator,
		})
		assert.False(t, d.Allowed)
		assert.Equal(t, ReasonRemoveCreator, d.Reason)
	})
}

func TestUnknownActionIsDenied(t *testing.T) {
	d := Decide(Action("launch_rockets"), Facts{CallerRole: models.TeamRoleAdmin})
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonUnknownAction, d.Reason)
}

func TestDecisionErr(t *testing.T) {
	assert.NoError(t, Allow().Err())

	err := Deny(ReasonDeleteTask).Err()
	assert.True(t, apperrors.IsAuthorization(err))
	assert.Equal(t, ReasonDeleteTask, err.Error())
}
