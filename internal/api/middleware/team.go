package middleware

import (
	"net/http"

	"team-task-backend/internal/auth"
	apperrors "team-task-backend/internal/errors"
	"team-task-backend/internal/logger"
	"team-task-backend/internal/permission"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TeamAuthorizer decides whether a caller may perform a team-scoped action
type TeamAuthorizer interface {
	AuthorizeTeam(callerID, teamID uuid.UUID, action permission.Action) error
}

// TeamGuard protects routes under /teams/:teamId. It must run after RequireAuth.
type TeamGuard struct {
	access TeamAuthorizer
}

// NewTeamGuard creates a new team guard
func NewTeamGuard(access TeamAuthorizer) *TeamGuard {
	return &TeamGuard{access: access}
}

// RequireTeamAction parses :teamId, checks the action and stores the id as "team_id"
func (g *TeamGuard) RequireTeamAction(action permission.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		teamID, err := uuid.Parse(c.Param("teamId"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid team ID"})
			return
		}

		userID, ok := auth.GetUserID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		if err := g.access.AuthorizeTeam(userID, teamID, action); err != nil {
			switch {
			case apperrors.IsNotFound(err):
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
			case apperrors.IsAuthorization(err):
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": err.Error()})
			default:
				logger.FromGinContext(c).WithError(err).Error("Failed to authorize team access")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			}
			return
		}

		c.Set("team_id", teamID)
		c.Next()
	}
}

// GetTeamID returns the team id stored by the guard
func GetTeamID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get("team_id")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}
