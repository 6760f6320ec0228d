package controllers

import (
	"fmt"

	"github.com/gameonmart/GameOnMart/config"
	"github.com/gameonmart/GameOnMart/models"
	"github.com/gameonmart/GameOnMart/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CancelOrder cancels an entire order: all items flip to Cancelled, stock
// is restored, and the payment is refunded or cancelled depending on
// whether it was already paid. Everything runs in one transaction.
func CancelOrder(c *gin.Context) {
	utils.LogInfo("CancelOrder called")
	user, ok := currentUser(c)
	if !ok {
		return
	}

	orderID, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		utils.LogError("Invalid order ID format: %v", err)
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}
	utils.LogInfo("Processing cancellation for order ID: %s, user ID: %s", orderID, user.ID)

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to start transaction for order ID: %s: %v", orderID, tx.Error)
		utils.InternalServerError(c, "Failed to start transaction", nil)
		return
	}

	var order models.Order
	if err := tx.Preload("Payment").Where("id = ?", orderID).First(&order).Error; err != nil {
		tx.Rollback()
		utils.NotFound(c, "Order not found")
		return
	}

	if order.UserID != user.ID && user.Role != models.RoleAdmin {
		utils.LogError("User %s not authorized to cancel order %s", user.ID, orderID)
		tx.Rollback()
		utils.Forbidden(c, "Not authorized to cancel this order")
		return
	}

	if !models.OrderCancellable(order.Status) {
		utils.LogError("Order cannot be cancelled - Order ID: %s, Status: %s", orderID, order.Status)
		tx.Rollback()
		utils.BadRequest(c, fmt.Sprintf("Order cannot be cancelled, current status: %s", order.Status), nil)
		return
	}

	// Compare-and-set: the WHERE clause re-checks eligibility at update
	// time, so a racing cancellation that commits first leaves zero rows
	// for the loser and it never reaches the restock or refund steps
	res := tx.Model(&models.Order{}).
		Where("id = ? AND status IN ?", orderID, models.CancellableOrderStatuses).
		Update("status", models.OrderStatusCancelled)
	if res.Error != nil {
		utils.LogError("Failed to update order status - Order ID: %s: %v", orderID, res.Error)
		tx.Rollback()
		utils.InternalServerError(c, "Failed to update order", res.Error.Error())
		return
	}
	if res.RowsAffected == 0 {
		utils.LogError("Order no longer cancellable - Order ID: %s", orderID)
		tx.Rollback()
		utils.BadRequest(c, fmt.Sprintf("Order cannot be cancelled, current status: %s", order.Status), nil)
		return
	}

	var items []models.OrderItem
	if err := tx.Where("order_id = ?", orderID).Find(&items).Error; err != nil {
		utils.LogError("Failed to load items for order ID: %s: %v", orderID, err)
		tx.Rollback()
		utils.InternalServerError(c, "Failed to load order items", err.Error())
		return
	}

	res = tx.Model(&models.OrderItem{}).
		Where("order_id = ?", orderID).
		Update("status", models.ItemStatusCancelled)
	if res.Error != nil {
		utils.LogError("Failed to cancel items for order ID: %s: %v", orderID, res.Error)
		tx.Rollback()
		utils.InternalServerError(c, "Failed to update item status", res.Error.Error())
		return
	}
	if res.RowsAffected == 0 {
		// A located order always has items; zero rows means the data is off
		utils.LogError("No items updated for order ID: %s", orderID)
		tx.Rollback()
		utils.InternalServerError(c, "Failed to update item status", nil)
		return
	}
	utils.LogDebug("Cancelled %d items for order ID: %s", res.RowsAffected, orderID)

	// Restock; no ceiling check is needed when putting units back
	for _, item := range items {
		if err := tx.Model(&models.Product{}).
			Where("id = ?", item.ProductID).
			UpdateColumn("stock", gorm.Expr("stock + ?", item.Quantity)).Error; err != nil {
			utils.LogError("Failed to restore stock for product ID: %s, order ID: %s: %v", item.ProductID, orderID, err)
			tx.Rollback()
			utils.InternalServerError(c, "Failed to restore product stock", err.Error())
			return
		}
	}

	if order.Payment.Status == models.PaymentStatusPaid {
		// Paid orders get a refund trail: payment flips to Refunded and
		// one refund request is raised per item
		res = tx.Model(&models.Payment{}).
			Where("id = ?", order.PaymentID).
			Update("status", models.PaymentStatusRefunded)
		if res.Error != nil {
			utils.LogError("Failed to mark payment refunded for order ID: %s: %v", orderID, res.Error)
			tx.Rollback()
			utils.InternalServerError(c, "Failed to update payment", res.Error.Error())
			return
		}
		if res.RowsAffected == 0 {
			utils.LogError("Payment record missing for order ID: %s", orderID)
			tx.Rollback()
			utils.InternalServerError(c, "Failed to update payment", nil)
			return
		}

		var refunds []models.RefundExchange
		for _, item := range items {
			refunds = append(refunds, models.RefundExchange{
				OrderID:      order.ID,
				ItemID:       item.ID,
				PaymentID:    order.PaymentID,
				RefundAmount: float64(item.Quantity) * item.Price,
				Type:         models.RefundTypeRefund,
				Status:       models.RefundStatusPending,
				Reason:       "Order cancelled",
			})
		}
		if err := tx.Create(&refunds).Error; err != nil {
			utils.LogError("Failed to create refund records for order ID: %s: %v", orderID, err)
			tx.Rollback()
			utils.InternalServerError(c, "Failed to create refund records", err.Error())
			return
		}
		utils.LogInfo("Created %d refund records for order ID: %s", len(refunds), orderID)
	} else {
		res = tx.Model(&models.Payment{}).
			Where("id = ?", order.PaymentID).
			Update("status", models.PaymentStatusCancelled)
		if res.Error != nil {
			utils.LogError("Failed to cancel payment for order ID: %s: %v", orderID, res.Error)
			tx.Rollback()
			utils.InternalServerError(c, "Failed to update payment", res.Error.Error())
			return
		}
		if res.RowsAffected == 0 {
			utils.LogError("Payment record missing for order ID: %s", orderID)
			tx.Rollback()
			utils.InternalServerError(c, "Failed to update payment", nil)
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit cancellation for order ID: %s: %v", orderID, err)
		utils.InternalServerError(c, "Failed to cancel order", err.Error())
		return
	}
	utils.LogInfo("Order ID: %s cancelled by user ID: %s", orderID, user.ID)

	utils.Success(c, "Order cancelled successfully", gin.H{
		"order_id": orderID,
		"status":   models.OrderStatusCancelled,
	})
}
