package routes

import (
	"github.com/gameonmart/GameOnMart/utils"
	"github.com/gin-gonic/gin"
)

// SetupRouter initializes and returns the Gin router with all routes
func SetupRouter() *gin.Engine {
	router := gin.New()

	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.LoggerMiddleware())
	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.CORSMiddleware())
	router.Use(utils.SecurityHeadersMiddleware())

	router.GET("/health", func(c *gin.Context) {
		utils.Success(c, "OK", nil)
	})

	api := router.Group("/v1")
	{
		initAuthRoutes(api)
		initUserRoutes(api)
		initProductRoutes(api)
		initCartRoutes(api)
		initOrderRoutes(api)
		initAdminRoutes(api)
	}

	return router
}
