package routes

import (
	"github.com/gameonmart/GameOnMart/controllers"
	"github.com/gameonmart/GameOnMart/middleware"
	"github.com/gameonmart/GameOnMart/models"
	"github.com/gin-gonic/gin"
)

// initProductRoutes initializes catalog browsing, listing management,
// and review routes
func initProductRoutes(router *gin.RouterGroup) {
	products := router.Group("/products")
	{
		// Public browsing
		products.GET("", controllers.GetAllProducts)
		products.GET("/search", controllers.SearchProducts)
		products.GET("/category/:category", controllers.GetProductsByCategory)
		products.GET("/seller/:sellerId", controllers.GetProductsBySeller)
		products.GET("/:id", controllers.GetProductByID)
		products.GET("/:id/reviews", controllers.GetProductReviews)

		// Listing management for sellers and admins
		manage := products.Group("")
		manage.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.RoleSeller, models.RoleAdmin))
		{
			manage.POST("", controllers.CreateProduct)
			manage.PUT("/:id", controllers.UpdateProduct)
			manage.DELETE("/:id", controllers.DeleteProduct)
		}

		// Reviews require a signed-in customer
		reviews := products.Group("")
		reviews.Use(middleware.AuthMiddleware())
		{
			reviews.POST("/:id/reviews", controllers.AddOrUpdateReview)
			reviews.DELETE("/:id/reviews", controllers.DeleteReview)
		}
	}
}
