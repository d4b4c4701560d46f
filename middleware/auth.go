package middleware

import (
	"net/http"
	"strings"

	"github.com/wanderlist/api-go/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware authenticates a request from the access-token cookie,
// falling back to an Authorization bearer header for non-browser clients.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(utils.AccessTokenCookie)
		if err != nil || token == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
				c.Abort()
				return
			}
			bearerToken := strings.Split(authHeader, " ")
			if len(bearerToken) != 2 || !strings.EqualFold(bearerToken[0], "Bearer") {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
				c.Abort()
				return
			}
			token = bearerToken[1]
		}

		claims, err := utils.ParseAccessToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set(string(utils.UserContextKey), claims)

		c.Next()
	}
}
