package testutil

import (
	"github.com/gin-gonic/gin"

	"github.com/ihirwe-dev/gura-express-api/models"
)

// AuthAs returns a middleware that injects user as the authenticated
// principal, standing in for the JWT middleware in controller tests.
func AuthAs(user *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", user.ID)
		c.Set("current_user", user)
		c.Next()
	}
}

// NewTestRouter creates a Gin engine in test mode
func NewTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}
