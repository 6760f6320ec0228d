package controllers

import (
	"strings"

	"github.com/gameonmart/GameOnMart/config"
	"github.com/gameonmart/GameOnMart/models"
	"github.com/gameonmart/GameOnMart/utils"
	"github.com/gin-gonic/gin"
)

// SendLoginOTP checks credentials and emails a login OTP
func SendLoginOTP(c *gin.Context) {
	utils.LogInfo("SendLoginOTP called")

	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		utils.LogError("Invalid credentials for %s", email)
		utils.Unauthorized(c, "Invalid credentials")
		return
	}

	if err := utils.SendOtp(email, models.OTPActionLogin); err != nil {
		utils.LogError("Failed to send login OTP to %s: %v", email, err)
		utils.RespondWithError(c, err)
		return
	}
	utils.LogInfo("Login OTP sent to %s", email)

	utils.Success(c, "OTP sent successfully for login", gin.H{"email": email})
}

// VerifyOTPAndLogin verifies the login OTP and issues tokens
func VerifyOTPAndLogin(c *gin.Context) {
	utils.LogInfo("VerifyOTPAndLogin called")

	var req struct {
		Email string `json:"email" binding:"required"`
		OTP   string `json:"otp" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if err := utils.VerifyOtp(email, req.OTP, models.OTPActionLogin); err != nil {
		utils.LogError("Login OTP verification failed for %s: %v", email, err)
		utils.RespondWithError(c, err)
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	tokens, err := utils.GenerateTokens(&user)
	if err != nil {
		utils.LogError("Failed to generate tokens for %s: %v", email, err)
		utils.InternalServerError(c, "Failed to login", nil)
		return
	}

	if err := config.DB.Model(&user).Update("refresh_token", tokens.RefreshToken).Error; err != nil {
		utils.InternalServerError(c, "Failed to login", err.Error())
		return
	}

	config.DB.Where("email = ? AND action = ?", email, models.OTPActionLogin).Delete(&models.Otp{})

	utils.LogInfo("User logged in: %s", email)
	utils.Success(c, "Login successful", gin.H{
		"email":         user.Email,
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
	})
}

// RefreshAccessToken rotates the token pair using a valid refresh token
func RefreshAccessToken(c *gin.Context) {
	utils.LogInfo("RefreshAccessToken called")

	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Unauthorized(c, "Refresh token missing")
		return
	}

	userID, err := utils.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		utils.LogError("Invalid refresh token: %v", err)
		utils.Unauthorized(c, "Invalid refresh token")
		return
	}

	var user models.User
	if err := config.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	// A rotated or revoked token no longer matches the stored one
	if user.RefreshToken != req.RefreshToken {
		utils.LogError("Refresh token mismatch for user %s", user.ID)
		utils.Unauthorized(c, "Refresh token mismatch")
		return
	}

	tokens, err := utils.GenerateTokens(&user)
	if err != nil {
		utils.InternalServerError(c, "Failed to refresh tokens", nil)
		return
	}
	if err := config.DB.Model(&user).Update("refresh_token", tokens.RefreshToken).Error; err != nil {
		utils.InternalServerError(c, "Failed to refresh tokens", err.Error())
		return
	}

	utils.Success(c, "Access token refreshed successfully", gin.H{
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
	})
}

// Logout revokes the stored refresh token
func Logout(c *gin.Context) {
	utils.LogInfo("Logout called")
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if err := config.DB.Model(&user).Update("refresh_token", "").Error; err != nil {
		utils.InternalServerError(c, "Failed to logout", err.Error())
		return
	}

	utils.LogInfo("User logged out: %s", user.Email)
	utils.Success(c, "Logout successful", nil)
}
