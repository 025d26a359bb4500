package middleware

import (
	"time"

	"jobboard_front/internal/logger"
	"jobboard_front/internal/session"
	"jobboard_front/pkg/apperrors"
	"jobboard_front/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

const RoleAdmin = "admin"

// RequireVerifiedUser - пропускает только запросы с подписанным токеном.
// user id сессии берется из токена; cookie userId, если есть, должна совпадать.
func RequireVerifiedUser(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := session.FromContext(c)
		if s.Token == "" {
			apperrors.HandleError(c, apperrors.ErrAuthMissing)
			c.Abort()
			return
		}

		claims, err := session.Verify(s.Token, secret, time.Now())
		if err != nil {
			logger.CtxWarn(c.Request.Context(), "token rejected", "error", err.Error())
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
			c.Abort()
			return
		}

		userID := claims.VerifiedUserID()
		if s.HasUser() && s.UserID != userID {
			logger.CtxWarn(c.Request.Context(), "userId cookie does not match token", "token_user_id", userID)
			apperrors.HandleError(c, apperrors.NewForbiddenError("Session user does not match the token"))
			c.Abort()
			return
		}

		s.UserID = userID
		c.Set(contextkeys.SessionKey, s)
		c.Set(contextkeys.RoleKey, claims.Role)
		c.Next()
	}
}

// RequireRoles - ограничение по ролям, ставится после RequireVerifiedUser
func RequireRoles(roles ...string) gin.HandlerFunc {
	roleSet := make(map[string]bool, len(roles))
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		if !roleSet[c.GetString(contextkeys.RoleKey)] {
			apperrors.HandleError(c, apperrors.NewForbiddenError("Access denied: insufficient role"))
			c.Abort()
			return
		}
		c.Next()
	}
}
