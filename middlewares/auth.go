package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bst-coder/irrigation-last/httperr"
	"github.com/bst-coder/irrigation-last/services"
)

// Context keys set by Auth.
const (
	CtxUserID = "user_id"
	CtxEmail  = "email"
	CtxRole   = "role"
)

// Auth validates the bearer token from the Authorization header or the
// token query parameter (websocket clients cannot set headers) and puts
// the identity into the gin context.
func Auth(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}
		if tokenString == "" {
			tokenString = c.Query("token")
		}
		if tokenString == "" {
			httperr.Write(c, httperr.Unauthorized("Authorization token required"))
			c.Abort()
			return
		}

		identity, err := tokens.Verify(tokenString)
		if err != nil {
			httperr.Write(c, httperr.Unauthorized("Invalid or expired token"))
			c.Abort()
			return
		}

		c.Set(CtxUserID, identity.UserID)
		c.Set(CtxEmail, identity.Email)
		c.Set(CtxRole, identity.Role)
		c.Next()
	}
}

// IdentityFrom extracts the authenticated identity placed by Auth.
func IdentityFrom(c *gin.Context) (userID uint, role string, ok bool) {
	rawID, exists := c.Get(CtxUserID)
	if !exists {
		return 0, "", false
	}
	id, ok := rawID.(uint)
	if !ok {
		return 0, "", false
	}
	if rawRole, exists := c.Get(CtxRole); exists {
		role, _ = rawRole.(string)
	}
	return id, role, true
}
