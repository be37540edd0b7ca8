package service

import (
	"encoding/json"
	"testing"

	apperrors "team-task-backend/internal/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalUUIDUnmarshal(t *testing.T) {
	id := uuid.New()

	testCases := []struct {
		name      string
		payload   string
		wantSet   bool
		wantValue *uuid.UUID
	}{
		{name: "absent", payload: `{}`, wantSet: false},
		{name: "explicit null", payload: `{"assigned_to_id": null}`, wantSet: true},
		{name: "value", payload: `{"assigned_to_id": "` + id.String() + `"}`, wantSet: true, wantValue: &id},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var req UpdateTaskRequest
			require.NoError(t, json.Unmarshal([]byte(tc.payload), &req))

			assert.Equal(t, tc.wantSet, req.AssignedToID.Set)
			assert.Equal(t, tc.wantValue, req.AssignedToID.Value)
		})
	}
}

func TestOptionalUUIDRejectsMalformed(t *testing.T) {
	var req UpdateTaskRequest
	err := json.Unmarshal([]byte(`{"assigned_to_id": "not-a-uuid"}`), &req)
	assert.Error(t, err)
}

func TestOptionalUUIDMarshal(t *testing.T) {
	id := uuid.New()

	data, err := json.Marshal(NewOptionalUUID(&id))
	require.NoError(t, err)
	assert.Equal(t, `"`+id.String()+`"`, string(data))

	data, err = json.Marshal(NewOptionalUUID(nil))
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestValidateStructUsesJSONNames(t *testing.T) {
	v := NewValidator()

	err := validateStruct(v, &RegisterRequest{Username: "jo", Email: "jo@example.com", Password: "secret1"})

	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "username", verr.Field)
	assert.Equal(t, "must be at least 3 characters long", verr.Message)
}

func TestValidateStructRequestRules(t *testing.T) {
	v := NewValidator()
	status := "archived"
	short := "ab"

	testCases := []struct {
		name    string
		request interface{}
		field   string
	}{
		{name: "bad email", request: &RegisterRequest{Username: "john", Email: "nope", Password: "secret1"}, field: "email"},
		{name: "short password", request: &RegisterRequest{Username: "john", Email: "john@example.com", Password: "12345"}, field: "password"},
		{name: "username with at sign", request: &RegisterRequest{Username: "jo@hn", Email: "john@example.com", Password: "secret1"}, field: "username"},
		{name: "short login identifier", request: &LoginRequest{Identifier: "jo", Password: "secret1"}, field: "identifier"},
		{name: "short team name", request: &CreateTeamRequest{Name: "ab"}, field: "name"},
		{name: "short invite identifier", request: &InviteMemberRequest{Identifier: "ab"}, field: "identifier"},
		{name: "bad invite role", request: &InviteMemberRequest{Identifier: "john", Role: "owner"}, field: "role"},
		{name: "short task title", request: &CreateTaskRequest{Title: "ab"}, field: "title"},
		{name: "bad task status", request: &CreateTaskRequest{Title: "Write docs", Status: "archived"}, field: "status"},
		{name: "bad update status", request: &UpdateTaskRequest{Status: &status}, field: "status"},
		{name: "short update title", request: &UpdateTaskRequest{Title: &short}, field: "title"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateStruct(v, tc.request)

			var verr *apperrors.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}
