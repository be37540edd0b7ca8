package handlers

import (
	"net/http"

	"team-task-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// TeamHandler handles HTTP requests for teams and their members
type TeamHandler struct {
	teamService   service.TeamServiceInterface
	accessService service.AccessServiceInterface
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(teamService service.TeamServiceInterface, accessService service.AccessServiceInterface) *TeamHandler {
	return &TeamHandler{
		teamService:   teamService,
		accessService: accessService,
	}
}

// CreateTeam handles POST /teams
// @Summary Create a new team
// @Description Create a team; the caller becomes its creator and first admin
// @Tags teams
// @Accept json
// @Produce json
// @Param team body service.CreateTeamRequest true "Team data"
// @Success 201 {object} service.TeamResponse "Successfully created team"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 401 {object} ErrorResponse "Authentication required"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /teams [post]
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req service.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	team, err := h.teamService.CreateTeam(userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, team)
}

// ListTeams handles GET /teams
// @Summary List the caller's teams
// @Tags teams
// @Produce json
// @Success 200 {array} service.TeamResponse "Teams the caller belongs to"
// @Failure 401 {object} ErrorResponse "Authentication required"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /teams [get]
func (h *TeamHandler) ListTeams(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	teams, err := h.teamService.GetUserTeams(userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, teams)
}

// GetTeam handles GET /teams/:teamId
// @Summary Get team by ID
// @Description Get a team with its creator and members. Members only.
// @Tags teams
// @Produce json
// @Param teamId path string true "Team ID (UUID)"
// @Success 200 {object} service.TeamResponse "Successfully retrieved team"
// @Failure 400 {object} ErrorResponse "Invalid team ID"
// @Failure 403 {object} ErrorResponse "Not a member of this team"
// @Failure 404 {object} ErrorResponse "Team not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /teams/{teamId} [get]
func (h *TeamHandler) GetTeam(c *gin.Context) {
	teamID, ok := pathUUID(c, "teamId", "team")
	if !ok {
		return
	}

	team, err := h.teamService.GetTeam(teamID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, team)
}

// InviteMember handles POST /teams/:teamId/members
// @Summary Add a user to the team
// @Description Invite an existing user by username or email. Admins only.
// @Tags teams
// @Accept json
// @Produce json
// @Param teamId path string true "Team ID (UUID)"
// @Param member body service.InviteMemberRequest true "Invitee and role"
// @Success 201 {object} service.TeamMemberResponse "Membership created"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 403 {object} ErrorResponse "Not an admin of this team"
// @Failure 404 {object} ErrorResponse "Team or user not found"
// @Failure 409 {object} ErrorResponse "User is already a member"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /teams/{teamId}/members [post]
func (h *TeamHandler) InviteMember(c *gin.Context) {
	teamID, ok := pathUUID(c, "teamId", "team")
	if !ok {
		return
	}

	var req service.InviteMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	member, err := h.teamService.InviteMember(teamID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, member)
}

// RemoveMember handles DELETE /teams/:teamId/members/:memberId
// @Summary Remove a member from the team
// @Description Delete a membership by its id. Admins only; the creator can never be removed.
// @Tags teams
// @Param teamId path string true "Team ID (UUID)"
// @Param memberId path string true "Membership ID (UUID)"
// @Success 204 "Member removed"
// @Failure 400 {object} ErrorResponse "Invalid ID"
// @Failure 403 {object} ErrorResponse "Not allowed to remove this member"
// @Failure 404 {object} ErrorResponse "Team or member not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /teams/{teamId}/members/{memberId} [delete]
func (h *TeamHandler) RemoveMember(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	teamID, ok := pathUUID(c, "teamId", "team")
	if !ok {
		return
	}
	memberID, ok := pathUUID(c, "memberId", "member")
	if !ok {
		return
	}

	if err := h.accessService.AuthorizeMemberRemoval(userID, teamID, memberID); err != nil {
		handleServiceError(c, err)
		return
	}

	if err := h.teamService.RemoveMember(teamID, memberID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
