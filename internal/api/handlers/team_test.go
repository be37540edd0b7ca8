package handlers_test

import (
	"errors"
	"net/http"
	"testing"

	"team-task-backend/internal/api/handlers"
	"team-task-backend/internal/database/models"
	apperrors "team-task-backend/internal/errors"
	"team-task-backend/internal/mocks"
	"team-task-backend/internal/permission"
	"team-task-backend/internal/service"
	"team-task-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// TeamHandlerTestSuite defines the test suite for TeamHandler
type TeamHandlerTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *mocks.MockTeamServiceInterface
	mockAccess  *mocks.MockAccessServiceInterface
	handler     *handlers.TeamHandler
	httpSuite   *testutils.HTTPTestSuite
	callerID    uuid.UUID
}

// SetupTest sets up the test suite
func (suite *TeamHandlerTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockService = mocks.NewMockTeamServiceInterface(suite.ctrl)
	suite.mockAccess = mocks.NewMockAccessServiceInterface(suite.ctrl)
	suite.handler = handlers.NewTeamHandler(suite.mockService, suite.mockAccess)
	suite.callerID = uuid.New()

	suite.httpSuite = testutils.SetupHTTPTest()
	teams := suite.httpSuite.Router.Group("/api/v1/teams", withCaller(suite.callerID))
	{
		teams.POST("", suite.handler.CreateTeam)
		teams.GET("", suite.handler.ListTeams)
		teams.GET("/:teamId", suite.handler.GetTeam)
		teams.POST("/:teamId/members", suite.handler.InviteMember)
		teams.DELETE("/:teamId/members/:memberId", suite.handler.RemoveMember)
	}
}

// TearDownTest cleans up after each test
func (suite *TeamHandlerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

// TestCreateTeam tests the CreateTeam handler
func (suite *TeamHandlerTestSuite) TestCreateTeam() {
	suite.T().Run("Success", func(t *testing.T) {
		teamID := uuid.New()
		suite.mockService.EXPECT().
			CreateTeam(suite.callerID, gomock.Any()).
			DoAndReturn(func(creatorID uuid.UUID, req *service.CreateTeamRequest) (*service.TeamResponse, error) {
				assert.Equal(t, "Backend", req.Name)
				return &service.TeamResponse{
					ID:          teamID,
					Name:        req.Name,
					CreatedByID: creatorID,
					Members: []service.TeamMemberResponse{
						{TeamID: teamID, UserID: creatorID, Role: models.TeamRoleAdmin},
					},
				}, nil
			})

		recorder := suite.httpSuite.MakeRequest(http.MethodPost, "/api/v1/teams", map[string]interface{}{
			"name":        "Backend",
			"description": "API and storage",
		})

		var response service.TeamResponse
		testutils.AssertJSONResponse(t, recorder, http.StatusCreated, &response)
		assert.Equal(t, teamID, response.ID)
		assert.Equal(t, suite.callerID, response.CreatedByID)
		assert.Equal(t, models.TeamRoleAdmin, response.Members[0].Role)
	})

	suite.T().Run("Validation error", func(t *testing.T) {
		suite.mockService.EXPECT().
			CreateTeam(suite.callerID, gomock.Any()).
			Return(nil, apperrors.NewValidationError("name", "must be at least 3 characters"))

		recorder := suite.httpSuite.MakeRequest(http.MethodPost, "/api/v1/teams", map[string]interface{}{"name": "ab"})

		testutils.AssertErrorResponse(t, recorder, http.StatusBadRequest, "name")
	})

	suite.T().Run("Invalid JSON", func(t *testing.T) {
		recorder := makeInvalidJSONRequest(suite.httpSuite.Router, http.MethodPost, "/api/v1/teams")
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

// TestListTeams tests the ListTeams handler
func (suite *TeamHandlerTestSuite) TestListTeams() {
	suite.mockService.EXPECT().
		GetUserTeams(suite.callerID).
		Return([]service.TeamResponse{{ID: uuid.New(), Name: "Backend"}, {ID: uuid.New(), Name: "Frontend"}}, nil)

	recorder := suite.httpSuite.MakeRequest(http.MethodGet, "/api/v1/teams", nil)

	var response []service.TeamResponse
	testutils.AssertJSONResponse(suite.T(), recorder, http.StatusOK, &response)
	assert.Len(suite.T(), response, 2)
}

// TestGetTeam tests the GetTeam handler
func (suite *TeamHandlerTestSuite) TestGetTeam() {
	suite.T().Run("Success", func(t *testing.T) {
		teamID := uuid.New()
		suite.mockService.EXPECT().GetTeam(teamID).Return(&service.TeamResponse{ID: teamID, Name: "Backend"}, nil)

		recorder := suite.httpSuite.MakeRequest(http.MethodGet, "/api/v1/teams/"+teamID.String(), nil)

		var response service.TeamResponse
		testutils.AssertJSONResponse(t, recorder, http.StatusOK, &response)
		assert.Equal(t, "Backend", response.Name)
	})

	suite.T().Run("Not found", func(t *testing.T) {
		teamID := uuid.New()
		suite.mockService.EXPECT().GetTeam(teamID).Return(nil, apperrors.ErrTeamNotFound)

		recorder := suite.httpSuite.MakeRequest(http.MethodGet, "/api/v1/teams/"+teamID.String(), nil)

		testutils.AssertErrorResponse(t, recorder, http.StatusNotFound, "team not found")
	})

	suite.T().Run("Invalid ID", func(t *testing.T) {
		recorder := suite.httpSuite.MakeRequest(http.MethodGet, "/api/v1/teams/not-a-uuid", nil)

		testutils.AssertErrorResponse(t, recorder, http.StatusBadRequest, "invalid team ID")
	})
}

// TestInviteMember tests the InviteMember handler
func (suite *TeamHandlerTestSuite) TestInviteMember() {
	teamID := uuid.New()
	url := "/api/v1/teams/" + teamID.String() + "/members"

	suite.T().Run("Success", func(t *testing.T) {
		userID := uuid.New()
		suite.mockService.EXPECT().
			InviteMember(teamID, gomock.Any()).
			DoAndReturn(func(_ uuid.UUID, req *service.InviteMemberRequest) (*service.TeamMemberResponse, error) {
				assert.Equal(t, "bob@example.com", req.Identifier)
				return &service.TeamMemberResponse{ID: uuid.New(), TeamID: teamID, UserID: userID, Role: models.TeamRoleMember}, nil
			})

		recorder := suite.httpSuite.MakeRequest(http.MethodPost, url, map[string]interface{}{"identifier": "bob@example.com"})

		var response service.TeamMemberResponse
		testutils.AssertJSONResponse(t, recorder, http.StatusCreated, &response)
		assert.Equal(t, userID, response.UserID)
		assert.Equal(t, models.TeamRoleMember, response.Role)
	})

	suite.T().Run("Already a member", func(t *testing.T) {
		suite.mockService.EXPECT().InviteMember(teamID, gomock.Any()).Return(nil, apperrors.ErrTeamMemberExists)

		recorder := suite.httpSuite.MakeRequest(http.MethodPost, url, map[string]interface{}{"identifier": "bob"})

		testutils.AssertErrorResponse(t, recorder, http.StatusConflict, "already exists in this team")
	})

	suite.T().Run("Unknown user", func(t *testing.T) {
		suite.mockService.EXPECT().InviteMember(teamID, gomock.Any()).Return(nil, apperrors.ErrUserNotFound)

		recorder := suite.httpSuite.MakeRequest(http.MethodPost, url, map[string]interface{}{"identifier": "ghost"})

		testutils.AssertErrorResponse(t, recorder, http.StatusNotFound, "user not found")
	})
}

// TestRemoveMember tests the RemoveMember handler
func (suite *TeamHandlerTestSuite) TestRemoveMember() {
	teamID := uuid.New()
	memberID := uuid.New()
	url := "/api/v1/teams/" + teamID.String() + "/members/" + memberID.String()

	suite.T().Run("Success", func(t *testing.T) {
		gomock.InOrder(
			suite.mockAccess.EXPECT().AuthorizeMemberRemoval(suite.callerID, teamID, memberID).Return(nil),
			suite.mockService.EXPECT().RemoveMember(teamID, memberID).Return(nil),
		)

		recorder := suite.httpSuite.MakeRequest(http.MethodDelete, url, nil)

		assert.Equal(t, http.StatusNoContent, recorder.Code)
		assert.Empty(t, recorder.Body.String())
	})

	suite.T().Run("Creator cannot be removed", func(t *testing.T) {
		suite.mockAccess.EXPECT().
			AuthorizeMemberRemoval(suite.callerID, teamID, memberID).
			Return(apperrors.NewAuthorizationError(permission.ReasonRemoveCreator))

		recorder := suite.httpSuite.MakeRequest(http.MethodDelete, url, nil)

		testutils.AssertErrorResponse(t, recorder, http.StatusForbidden, "Cannot remove the team creator")
	})

	suite.T().Run("Store failure", func(t *testing.T) {
		suite.mockAccess.EXPECT().AuthorizeMemberRemoval(suite.callerID, teamID, memberID).Return(nil)
		suite.mockService.EXPECT().RemoveMember(teamID, memberID).Return(errors.New("deadlock detected"))

		recorder := suite.httpSuite.MakeRequest(http.MethodDelete, url, nil)

		testutils.AssertErrorResponse(t, recorder, http.StatusInternalServerError, "Internal server error")
	})

	suite.T().Run("Invalid member ID", func(t *testing.T) {
		recorder := suite.httpSuite.MakeRequest(http.MethodDelete, "/api/v1/teams/"+teamID.String()+"/members/42", nil)

		testutils.AssertErrorResponse(t, recorder, http.StatusBadRequest, "invalid member ID")
	})
}

// TestTeamHandlerTestSuite runs the test suite
func TestTeamHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TeamHandlerTestSuite))
}
