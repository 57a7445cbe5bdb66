package middleware

import (
	"net/http"
	"strings"

	"github.com/akachour/wird/internal/api/dto"
	"github.com/akachour/wird/internal/core/domain"
	"github.com/akachour/wird/internal/core/service"
	"github.com/gin-gonic/gin"
)

const (
	AuthHeaderKey     = "Authorization"
	SessionContextKey = "session"
)

// SessionMiddleware validates the bearer token and resolves its live
// session. Every gated operation downstream reads the session from the
// context; the core services themselves perform no authorization.
func SessionMiddleware(sessions *service.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error:   "Unauthorized",
				Message: "Missing authorization header",
				Code:    http.StatusUnauthorized,
			})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error:   "Unauthorized",
				Message: "Invalid authorization header format. Expected 'Bearer <token>'",
				Code:    http.StatusUnauthorized,
			})
			c.Abort()
			return
		}

		session, err := sessions.Validate(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error:   "Unauthorized",
				Message: "Invalid or expired token",
				Code:    http.StatusUnauthorized,
			})
			c.Abort()
			return
		}

		c.Set(SessionContextKey, session)

		c.Next()
	}
}

// AdminMiddleware allows only administrator sessions through. Must run
// after SessionMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := GetSession(c)
		if !ok || !session.IsAdmin {
			c.JSON(http.StatusForbidden, dto.ErrorResponse{
				Error:   "Forbidden",
				Message: "Administrator access required",
				Code:    http.StatusForbidden,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetSession retrieves the authenticated session from context
func GetSession(c *gin.Context) (*domain.Session, bool) {
	value, exists := c.Get(SessionContextKey)
	if !exists {
		return nil, false
	}

	session, ok := value.(*domain.Session)
	return session, ok
}
