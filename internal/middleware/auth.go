package middleware

import (
	"net/http"
	"strings"

	"github.com/ANURAG-NITJSR-2K20-CSE/mern-blog-app/internal/services"

	"github.com/gin-gonic/gin"
)

const (
	UserIDKey   = "userID"
	UserNameKey = "userName"
)

// AuthMiddleware gates protected routes: it expects a bearer token in
// the Authorization header and puts the decoded identity on the context.
func AuthMiddleware(tokenService *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")

		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized. Invalid token."})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")

		claims, err := tokenService.Verify(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized. Invalid token."})
			c.Abort()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserNameKey, claims.Name)
		c.Next()
	}
}

// UserID reads the authenticated user's id set by AuthMiddleware.
func UserID(c *gin.Context) uint {
	id, _ := c.Get(UserIDKey)
	uid, _ := id.(uint)
	return uid
}
