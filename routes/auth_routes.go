package routes

import (
	"github.com/gameonmart/GameOnMart/controllers"
	"github.com/gameonmart/GameOnMart/middleware"
	"github.com/gin-gonic/gin"
)

// initAuthRoutes initializes registration, login, and token routes
func initAuthRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/register/send-otp", controllers.SendRegistrationOTP)
		auth.POST("/register/verify", controllers.VerifyAndRegister)

		auth.POST("/login/send-otp", controllers.SendLoginOTP)
		auth.POST("/login/verify", controllers.VerifyOTPAndLogin)

		auth.POST("/refresh", controllers.RefreshAccessToken)

		auth.POST("/password/forgot", controllers.SendResetPasswordOTP)
		auth.POST("/password/reset", controllers.ResetPassword)

		auth.POST("/logout", middleware.AuthMiddleware(), controllers.Logout)
	}
}
