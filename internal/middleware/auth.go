package middleware

import (
	"strings"

	"home-budget/internal/auth"
	"home-budget/internal/util"

	"github.com/gin-gonic/gin"
)

// CurrentUserKey is where the resolved user lives in the gin context.
const CurrentUserKey = "currentUser"

// AuthMiddleware validates the bearer token and stores the resolved user
// in the request context. A missing, malformed or expired token and a
// token for a vanished user all produce the same 401 challenge.
func AuthMiddleware(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenStr string

		// Authorization: Bearer xxx
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				tokenStr = parts[1]
			}
		}

		// ?token=xxx for downloads, where headers can't be set
		if tokenStr == "" {
			tokenStr = c.Query("token")
		}

		if tokenStr == "" {
			util.Unauthorized(c, "not authenticated")
			c.Abort()
			return
		}

		user, err := svc.ResolveCurrentUser(c.Request.Context(), tokenStr)
		if err != nil {
			util.Unauthorized(c, "could not validate credentials")
			c.Abort()
			return
		}

		user, err = svc.RequireActive(user)
		if err != nil {
			util.Unauthorized(c, "could not validate credentials")
			c.Abort()
			return
		}

		c.Set(CurrentUserKey, user)
		c.Next()
	}
}
