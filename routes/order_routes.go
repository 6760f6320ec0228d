package routes

import (
	"github.com/gameonmart/GameOnMart/controllers"
	"github.com/gameonmart/GameOnMart/middleware"
	"github.com/gin-gonic/gin"
)

// initOrderRoutes initializes order lifecycle routes
func initOrderRoutes(router *gin.RouterGroup) {
	orders := router.Group("/orders")
	orders.Use(middleware.AuthMiddleware())
	{
		orders.POST("", controllers.CreateOrder)
		orders.GET("", controllers.GetMyOrders)
		orders.GET("/:orderId", controllers.GetOrderByID)
		orders.DELETE("/:orderId", controllers.CancelOrder)
		orders.GET("/:orderId/invoice", controllers.DownloadInvoice)
	}
}
