package session

import (
	"jobboard_front/internal/logger"
	"jobboard_front/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

// Middleware stores the request Session in the gin context and tags logs with the user id.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		s := FromRequest(c.Request)
		c.Set(contextkeys.SessionKey, s)

		if s.HasUser() {
			ctx := logger.WithUserID(c.Request.Context(), s.UserIDString())
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}

// FromContext returns the Session stored by Middleware, or an empty one.
func FromContext(c *gin.Context) Session {
	if v, ok := c.Get(contextkeys.SessionKey); ok {
		if s, ok := v.(Session); ok {
			return s
		}
	}
	return Session{}
}
