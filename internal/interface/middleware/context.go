package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/complaint-desk/pkg/helpers"
)

// Gin context keys set by this package.
const (
	KeyRequestID = "request_id"
	KeyRealIP    = "real_ip"
	KeyUserID    = "userID"
	KeyClaims    = "claims"
	KeyIsAdmin   = "isAdmin"
)

func UserID(c *gin.Context) string { return c.GetString(KeyUserID) }

func IsAdmin(c *gin.Context) bool { return c.GetBool(KeyIsAdmin) }

func Claims(c *gin.Context) *helpers.Claims {
	v, ok := c.Get(KeyClaims)
	if !ok {
		return nil
	}
	claims, _ := v.(*helpers.Claims)
	return claims
}
