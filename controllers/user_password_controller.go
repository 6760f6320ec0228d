package controllers

import (
	"strings"

	"github.com/gameonmart/GameOnMart/config"
	"github.com/gameonmart/GameOnMart/models"
	"github.com/gameonmart/GameOnMart/utils"
	"github.com/gin-gonic/gin"
)

// SendResetPasswordOTP emails a password-reset OTP to an existing account
func SendResetPasswordOTP(c *gin.Context) {
	utils.LogInfo("SendResetPasswordOTP called")

	var req struct {
		Email string `json:"email" binding:"required"`
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

	if err := utils.SendOtp(email, models.OTPActionResetPassword); err != nil {
		utils.LogError("Failed to send reset OTP to %s: %v", email, err)
		utils.RespondWithError(c, err)
		return
	}

	utils.Success(c, "OTP sent for password reset", nil)
}

// ResetPassword verifies the reset OTP and stores a new password
func ResetPassword(c *gin.Context) {
	utils.LogInfo("ResetPassword called")

	var req struct {
		Email       string `json:"email" binding:"required"`
		OTP         string `json:"otp" binding:"required"`
		NewPassword string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !utils.ValidatePassword(req.NewPassword) {
		utils.BadRequest(c, "Password must be at least 6 characters long", nil)
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	if err := utils.VerifyOtp(email, req.OTP, models.OTPActionResetPassword); err != nil {
		utils.LogError("Reset OTP verification failed for %s: %v", email, err)
		utils.RespondWithError(c, err)
		return
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		utils.InternalServerError(c, "Failed to reset password", nil)
		return
	}
	if err := config.DB.Model(&user).Update("password", hashed).Error; err != nil {
		utils.InternalServerError(c, "Failed to reset password", err.Error())
		return
	}

	config.DB.Where("email = ? AND action = ?", email, models.OTPActionResetPassword).Delete(&models.Otp{})

	utils.LogInfo("Password reset for %s", email)
	utils.Success(c, "Password reset successful", nil)
}

// UpdatePassword changes the caller's password after checking the old one
func UpdatePassword(c *gin.Context) {
	utils.LogInfo("UpdatePassword called")
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		OldPassword string `json:"old_password" binding:"required"`
		NewPassword string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	if !utils.CheckPassword(req.OldPassword, user.Password) {
		utils.Unauthorized(c, "Old password is incorrect")
		return
	}

	if req.OldPassword == req.NewPassword {
		utils.BadRequest(c, "New password must be different from old password", nil)
		return
	}
	if !utils.ValidatePassword(req.NewPassword) {
		utils.BadRequest(c, "Password must be at least 6 characters long", nil)
		return
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		utils.InternalServerError(c, "Failed to update password", nil)
		return
	}
	if err := config.DB.Model(&user).Update("password", hashed).Error; err != nil {
		utils.InternalServerError(c, "Failed to update password", err.Error())
		return
	}

	utils.LogInfo("Password updated for user %s", user.ID)
	utils.Success(c, "Password updated successfully", nil)
}
