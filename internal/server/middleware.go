package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jobdesk/notifier/internal/entities"
)

const (
	userIDHeader   = "X-User-ID"
	userRoleHeader = "X-User-Role"

	actorContextKey = "actor"
)

// identityMiddleware trusts the gateway-supplied identity headers.
// Authentication itself lives outside this subsystem.
func identityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(userIDHeader)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
			return
		}

		c.Set(actorContextKey, entities.Actor{ID: userID, Role: c.GetHeader(userRoleHeader)})
		c.Next()
	}
}

func actorFrom(c *gin.Context) entities.Actor {
	actor, _ := c.Get(actorContextKey)
	return actor.(entities.Actor)
}
