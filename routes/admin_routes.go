package routes

import (
	"github.com/gameonmart/GameOnMart/controllers"
	"github.com/gameonmart/GameOnMart/middleware"
	"github.com/gameonmart/GameOnMart/models"
	"github.com/gin-gonic/gin"
)

// initAdminRoutes initializes routes restricted to administrators
func initAdminRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.RoleAdmin))
	{
		admin.GET("/orders", controllers.AdminListOrders)
		admin.GET("/sales-report", controllers.DownloadSalesReportExcel)
		admin.POST("/sellers/:userId/approve", controllers.ApproveSellerRequest)
	}
}
