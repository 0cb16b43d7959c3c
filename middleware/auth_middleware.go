package middleware

import (
	"net/http"

	"tasknest-app/tasknest/database"
	"tasknest-app/tasknest/services"
	"tasknest-app/tasknest/utils/token"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware gates a route group behind a bearer token. A valid token whose
// user id no longer resolves is rejected exactly like an invalid token; only a
// resolved but deactivated account gets a distinct 403.
func AuthMiddleware(db *database.Database, authService services.AuthServiceInterface, userService services.UserServiceInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := token.ExtractToken(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
			return
		}

		claims, err := authService.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
			return
		}

		user, err := userService.GetUserById(db, claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
			return
		}

		if !user.IsActive {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "inactive user"})
			return
		}

		// Store user info in the context for later use
		c.Set("currentUser", user)
		c.Set("userID", user.ID)

		c.Next()
	}
}
