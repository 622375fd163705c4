// README: JWT auth middleware. Parses the bearer token and stashes caller identity.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"carpool/internal/modules/user"
)

const (
	callerNameKey  = "caller_name"
	callerPhoneKey = "caller_phone"
)

// TokenParser validates a bearer token and returns its claims.
type TokenParser interface {
	ParseToken(tokenString string) (*user.Claims, error)
}

func Auth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		claims, err := parser.ParseToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(callerNameKey, claims.Name)
		c.Set(callerPhoneKey, claims.Phone)
		c.Next()
	}
}

// CallerPhone returns the authenticated caller's phone, empty when
// the request did not pass through Auth.
func CallerPhone(c *gin.Context) string {
	return c.GetString(callerPhoneKey)
}

func CallerName(c *gin.Context) string {
	return c.GetString(callerNameKey)
}
