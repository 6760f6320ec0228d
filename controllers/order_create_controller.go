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

type createOrderRequest struct {
	IsCart          bool                   `json:"is_cart"`
	ProductID       string                 `json:"product_id"`
	Quantity        int                    `json:"quantity"`
	PaymentMode     string                 `json:"payment_mode" binding:"required"`
	ShippingAddress models.ShippingAddress `json:"shipping_address" binding:"required"`
}

// orderLine is one resolved source line for checkout, either a cart row
// or the single requested product
type orderLine struct {
	product  models.Product
	quantity int
}

func validateShippingAddress(addr models.ShippingAddress) string {
	switch {
	case addr.FullName == "":
		return "Full name is required"
	case addr.Phone == "":
		return "Phone is required"
	case addr.Address == "":
		return "Address is required"
	case addr.City == "":
		return "City is required"
	case addr.State == "":
		return "State is required"
	case addr.PostalCode == "":
		return "Postal code is required"
	case addr.Country == "":
		return "Country is required"
	}
	return ""
}

// CreateOrder places an order from the user's cart or a single product.
// Payment record, order, stock decrements, order items and the cart clear
// all commit or roll back as one transaction.
func CreateOrder(c *gin.Context) {
	utils.LogInfo("CreateOrder called")
	user, ok := currentUser(c)
	if !ok {
		return
	}
	utils.LogInfo("Processing order placement for user ID: %s", user.ID)

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request for user ID: %s: %v", user.ID, err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	if !models.ValidPaymentMode(req.PaymentMode) {
		utils.LogError("Invalid payment mode '%s' for user ID: %s", req.PaymentMode, user.ID)
		utils.BadRequest(c, "Invalid payment mode. Must be one of: COD, CreditCard, DebitCard, UPI, NetBanking", nil)
		return
	}

	if msg := validateShippingAddress(req.ShippingAddress); msg != "" {
		utils.LogError("Invalid shipping address for user ID: %s: %s", user.ID, msg)
		utils.BadRequest(c, msg, nil)
		return
	}

	var productID uuid.UUID
	if !req.IsCart {
		if req.ProductID == "" || req.Quantity == 0 {
			utils.BadRequest(c, "product_id and quantity are required when is_cart is false", nil)
			return
		}
		if req.Quantity < 1 {
			utils.BadRequest(c, "Quantity must be at least 1", nil)
			return
		}
		var err error
		productID, err = uuid.Parse(req.ProductID)
		if err != nil {
			utils.LogError("Invalid product ID format for user ID: %s: %v", user.ID, err)
			utils.BadRequest(c, "Invalid product ID", nil)
			return
		}
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to start transaction for user ID: %s: %v", user.ID, tx.Error)
		utils.InternalServerError(c, "Failed to start transaction", nil)
		return
	}

	// Resolve the source lines inside the transaction so checkout reads
	// its own snapshot
	var lines []orderLine
	if req.IsCart {
		cartLines, err := utils.GetCartLines(tx, user.ID)
		if err != nil {
			utils.LogError("Failed to load cart for user ID: %s: %v", user.ID, err)
			tx.Rollback()
			utils.InternalServerError(c, "Failed to load cart", err.Error())
			return
		}
		if len(cartLines) == 0 {
			tx.Rollback()
			utils.NotFound(c, "Cart not found or empty")
			return
		}
		for _, line := range cartLines {
			lines = append(lines, orderLine{product: line.Product, quantity: line.Quantity})
		}
	} else {
		var product models.Product
		if err := tx.Where("id = ?", productID).First(&product).Error; err != nil {
			tx.Rollback()
			utils.NotFound(c, "Product not found")
			return
		}
		lines = append(lines, orderLine{product: product, quantity: req.Quantity})
	}
	utils.LogInfo("Resolved %d order lines for user ID: %s", len(lines), user.ID)

	var subtotal float64
	for _, line := range lines {
		subtotal += line.product.Price * float64(line.quantity)
	}
	breakdown := utils.CalculatePriceBreakdown(subtotal)

	// The payment row is created before the order because the two
	// reference each other; its order id is backfilled below
	payment := models.Payment{
		Amount:      breakdown.OrderTotal,
		PaymentMode: req.PaymentMode,
		Status:      models.PaymentStatusPending,
	}
	if err := tx.Create(&payment).Error; err != nil {
		utils.LogError("Failed to create payment for user ID: %s: %v", user.ID, err)
		tx.Rollback()
		utils.InternalServerError(c, "Failed to create payment record", err.Error())
		return
	}

	order := models.Order{
		UserID:          user.ID,
		Subtotal:        subtotal,
		PayableAmount:   breakdown.OrderTotal,
		PriceBreakdown:  breakdown,
		Status:          models.OrderStatusPending,
		ShippingAddress: req.ShippingAddress,
		PaymentID:       payment.ID,
	}
	if err := tx.Create(&order).Error; err != nil {
		utils.LogError("Failed to create order for user ID: %s: %v", user.ID, err)
		tx.Rollback()
		utils.InternalServerError(c, "Failed to create order", err.Error())
		return
	}
	utils.LogInfo("Created order ID: %s for user ID: %s, payable: %.2f", order.ID, user.ID, order.PayableAmount)

	if err := tx.Model(&payment).Update("order_id", order.ID).Error; err != nil {
		utils.LogError("Failed to link payment to order ID: %s: %v", order.ID, err)
		tx.Rollback()
		utils.InternalServerError(c, "Failed to link payment to order", err.Error())
		return
	}
	payment.OrderID = &order.ID

	var items []models.OrderItem
	for _, line := range lines {
		// Conditional decrement: the WHERE clause carries the stock
		// guard, so two racing checkouts can never both win the same
		// units
		res := tx.Model(&models.Product{}).
			Where("id = ? AND stock >= ?", line.product.ID, line.quantity).
			UpdateColumn("stock", gorm.Expr("stock - ?", line.quantity))
		if res.Error != nil {
			utils.LogError("Failed to update stock for product ID: %s: %v", line.product.ID, res.Error)
			tx.Rollback()
			utils.InternalServerError(c, "Failed to update product stock", res.Error.Error())
			return
		}
		if res.RowsAffected == 0 {
			utils.LogError("Insufficient stock for product '%s', requested: %d", line.product.Name, line.quantity)
			tx.Rollback()
			utils.BadRequest(c, fmt.Sprintf("Insufficient stock for %s", line.product.Name), nil)
			return
		}

		item := models.OrderItem{
			OrderID:   order.ID,
			ProductID: line.product.ID,
			UserID:    user.ID,
			Quantity:  line.quantity,
			Price:     line.product.Price,
			Status:    models.ItemStatusPending,
		}
		if err := tx.Create(&item).Error; err != nil {
			utils.LogError("Failed to create order item for order ID: %s: %v", order.ID, err)
			tx.Rollback()
			utils.InternalServerError(c, "Failed to create order item", err.Error())
			return
		}
		items = append(items, item)
	}

	if req.IsCart {
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Cart{}).Error; err != nil {
			utils.LogError("Failed to clear cart for user ID: %s: %v", user.ID, err)
			tx.Rollback()
			utils.InternalServerError(c, "Failed to clear cart", err.Error())
			return
		}
		utils.LogInfo("Cleared cart for user ID: %s", user.ID)
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit order transaction for user ID: %s: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to place order", err.Error())
		return
	}
	utils.LogInfo("Order ID: %s committed for user ID: %s", order.ID, user.ID)

	utils.Created(c, "Order created successfully. Awaiting payment confirmation.", gin.H{
		"order":   order,
		"payment": payment,
		"items":   items,
	})
}
