package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/complaint-desk/internal/application"
)

// Auth reads the session token from header and verifies it. It sets userID
// and the token claims in the Gin context on success. Failures are pushed
// onto c.Errors and rendered by the error middleware.
func Auth(auth *application.AuthService, header string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := auth.Authenticate(c.Request.Context(), c.GetHeader(header))
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}
		c.Set(KeyUserID, claims.User.ID)
		c.Set(KeyClaims, claims)
		c.Next()
	}
}

// Admin must run after Auth. The caller must still exist and carry the
// configured admin email.
func Admin(auth *application.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := auth.RequireAdmin(c.Request.Context(), UserID(c)); err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}
		c.Set(KeyIsAdmin, true)
		c.Next()
	}
}
