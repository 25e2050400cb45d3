package middleware

import (
	"net/http"

	"github.com/bernaba123/E-Commerce-sub001/internal/usecase"

	"github.com/gin-gonic/gin"
)

const actorKey = "actor"

// Actor pulls the authenticated identity from the headers the auth gateway
// sets upstream. The core never sees credentials, only identity and role.
func Actor() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": 401, "msg": "missing identity"})
			return
		}
		c.Set(actorKey, usecase.Actor{
			UserID: userID,
			Role:   c.GetHeader("X-User-Role"),
		})
		c.Next()
	}
}

// RequireAdmin guards the admin surface.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !ActorFrom(c).IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"code": 403, "msg": "admin only"})
			return
		}
		c.Next()
	}
}

func ActorFrom(c *gin.Context) usecase.Actor {
	if v, ok := c.Get(actorKey); ok {
		if actor, ok := v.(usecase.Actor); ok {
			return actor
		}
	}
	return usecase.Actor{}
}
