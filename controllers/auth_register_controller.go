package controllers

import (
	"strings"

	"github.com/gameonmart/GameOnMart/config"
	"github.com/gameonmart/GameOnMart/models"
	"github.com/gameonmart/GameOnMart/utils"
	"github.com/gin-gonic/gin"
)

// SendRegistrationOTP emails a registration OTP to a new address
func SendRegistrationOTP(c *gin.Context) {
	utils.LogInfo("SendRegistrationOTP called")

	var req struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !utils.ValidateEmail(email) {
		utils.BadRequest(c, "Invalid email address", nil)
		return
	}

	var existing models.User
	if err := config.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		utils.Conflict(c, "User already exists with this email", nil)
		return
	}

	if err := utils.SendOtp(email, models.OTPActionRegister); err != nil {
		utils.LogError("Failed to send registration OTP to %s: %v", email, err)
		utils.RespondWithError(c, err)
		return
	}
	utils.LogInfo("Registration OTP sent to %s", email)

	utils.Success(c, "OTP sent successfully", gin.H{"email": email})
}

// VerifyAndRegister verifies the registration OTP and creates the account
func VerifyAndRegister(c *gin.Context) {
	utils.LogInfo("VerifyAndRegister called")

	var req struct {
		FullName string `json:"full_name" binding:"required"`
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
		OTP      string `json:"otp" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !utils.ValidateEmail(email) {
		utils.BadRequest(c, "Invalid email address", nil)
		return
	}
	if !utils.ValidateUsername(req.Username) {
		utils.BadRequest(c, "Username must be 3-20 characters of letters, digits or underscores", nil)
		return
	}
	if !utils.ValidatePassword(req.Password) {
		utils.BadRequest(c, "Password must be at least 6 characters long", nil)
		return
	}

	if err := utils.VerifyOtp(email, req.OTP, models.OTPActionRegister); err != nil {
		utils.LogError("Registration OTP verification failed for %s: %v", email, err)
		utils.RespondWithError(c, err)
		return
	}

	var existing models.User
	if err := config.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		utils.Conflict(c, "User already exists with this email", nil)
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.LogError("Failed to hash password for %s: %v", email, err)
		utils.InternalServerError(c, "Failed to register user", nil)
		return
	}

	user := models.User{
		FullName:   req.FullName,
		Username:   req.Username,
		Email:      email,
		Password:   hashed,
		Role:       models.RoleUser,
		IsVerified: true,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		utils.LogError("Failed to create user %s: %v", email, err)
		utils.InternalServerError(c, "Failed to register user", err.Error())
		return
	}

	// The OTP is single-use; drop it once the account exists
	config.DB.Where("email = ? AND action = ?", email, models.OTPActionRegister).Delete(&models.Otp{})

	utils.LogInfo("User registered: %s", email)
	utils.Created(c, "User registered successfully", gin.H{
		"id":       user.ID,
		"email":    user.Email,
		"username": user.Username,
	})
}
