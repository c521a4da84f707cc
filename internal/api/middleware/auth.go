package middleware

import (
	"net/http"
	"strings"

	"froot-boot-api-server/internal/auth"

	"github.com/gin-gonic/gin"
)

// Context keys populated by Authenticate for downstream handlers.
const (
	CtxUserID    = "user_id"
	CtxUserName  = "user_name"
	CtxUserEmail = "user_email"
)

// Authenticate verifies the Authorization bearer token and puts the
// authenticated principal into the request context. Any failure halts
// the request with a 401.
func Authenticate(issuer *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
			return
		}

		claims, err := issuer.Verify(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(CtxUserID, claims.Subject)
		c.Set(CtxUserName, claims.Name)
		c.Set(CtxUserEmail, claims.Email)

		c.Next()
	}
}
