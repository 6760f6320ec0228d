package controllers

import (
	"github.com/gameonmart/GameOnMart/config"
	"github.com/gameonmart/GameOnMart/models"
	"github.com/gameonmart/GameOnMart/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetCurrentUser returns the authenticated user's profile
func GetCurrentUser(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	utils.Success(c, "User retrieved successfully", gin.H{"user": user})
}

// DeleteAccount removes the caller's account
func DeleteAccount(c *gin.Context) {
	utils.LogInfo("DeleteAccount called")
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if err := config.DB.Delete(&user).Error; err != nil {
		utils.LogError("Failed to delete user %s: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to delete account", err.Error())
		return
	}

	utils.LogInfo("User deleted: %s", user.Email)
	utils.Success(c, "User deleted successfully", nil)
}

// RequestSeller flags the caller's account for seller approval
func RequestSeller(c *gin.Context) {
	utils.LogInfo("RequestSeller called")
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if user.Role == models.RoleSeller {
		utils.BadRequest(c, "User is already a seller", nil)
		return
	}
	if user.IsSellerRequest {
		utils.BadRequest(c, "Seller request already sent", nil)
		return
	}

	if err := config.DB.Model(&user).Update("is_seller_request", true).Error; err != nil {
		utils.InternalServerError(c, "Failed to send seller request", err.Error())
		return
	}

	utils.LogInfo("Seller request raised by user %s", user.ID)
	utils.Success(c, "Seller request sent successfully", gin.H{"user_id": user.ID})
}

// ApproveSellerRequest promotes a requesting user to the seller role (admin)
func ApproveSellerRequest(c *gin.Context) {
	utils.LogInfo("ApproveSellerRequest called")

	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		utils.BadRequest(c, "Invalid user ID", nil)
		return
	}

	var user models.User
	if err := config.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	if !user.IsSellerRequest {
		utils.BadRequest(c, "No seller request found", nil)
		return
	}

	updates := map[string]interface{}{
		"role":              models.RoleSeller,
		"is_seller_request": false,
	}
	if err := config.DB.Model(&user).Updates(updates).Error; err != nil {
		utils.InternalServerError(c, "Failed to approve seller request", err.Error())
		return
	}

	utils.LogInfo("Seller request approved for user %s", user.ID)
	utils.Success(c, "Seller request approved successfully", nil)
}
