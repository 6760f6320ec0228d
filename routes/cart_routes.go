package routes

import (
	"github.com/gameonmart/GameOnMart/controllers"
	"github.com/gameonmart/GameOnMart/middleware"
	"github.com/gin-gonic/gin"
)

// initCartRoutes initializes shopping cart routes
func initCartRoutes(router *gin.RouterGroup) {
	cart := router.Group("/cart")
	cart.Use(middleware.AuthMiddleware())
	{
		cart.GET("", controllers.GetCart)
		cart.POST("", controllers.AddToCart)
		cart.PUT("", controllers.UpdateCartQuantity)
		cart.DELETE("/:productId", controllers.RemoveFromCart)
		cart.DELETE("", controllers.ClearCart)
	}
}
