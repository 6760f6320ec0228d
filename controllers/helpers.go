package controllers

import (
	"github.com/gameonmart/GameOnMart/models"
	"github.com/gameonmart/GameOnMart/utils"
	"github.com/gin-gonic/gin"
)

// currentUser pulls the authenticated user set by the auth middleware.
// Responds 401 and returns false when it is missing.
func currentUser(c *gin.Context) (models.User, bool) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not authenticated")
		return models.User{}, false
	}
	user, ok := userVal.(models.User)
	if !ok {
		utils.LogError("Invalid user type in context")
		utils.Unauthorized(c, "User not authenticated")
		return models.User{}, false
	}
	return user, true
}
