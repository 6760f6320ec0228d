package routes

import (
	"github.com/gameonmart/GameOnMart/controllers"
	"github.com/gameonmart/GameOnMart/middleware"
	"github.com/gin-gonic/gin"
)

// initUserRoutes initializes account management routes
func initUserRoutes(router *gin.RouterGroup) {
	user := router.Group("/users")
	user.Use(middleware.AuthMiddleware())
	{
		user.GET("/me", controllers.GetCurrentUser)
		user.DELETE("/me", controllers.DeleteAccount)
		user.PUT("/me/password", controllers.UpdatePassword)
		user.POST("/me/seller-request", controllers.RequestSeller)
	}
}
