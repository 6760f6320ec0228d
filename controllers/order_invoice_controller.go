package controllers

import (
	"bytes"
	"fmt"

	"github.com/gameonmart/GameOnMart/config"
	"github.com/gameonmart/GameOnMart/models"
	"github.com/gameonmart/GameOnMart/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
)

// DownloadInvoice generates and returns a PDF invoice for the order
func DownloadInvoice(c *gin.Context) {
	utils.LogInfo("DownloadInvoice called")
	user, ok := currentUser(c)
	if !ok {
		return
	}

	orderID, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	var order models.Order
	if err := config.DB.Preload("Payment").Preload("User").
		Where("id = ? AND user_id = ?", orderID, user.ID).First(&order).Error; err != nil {
		utils.LogError("Order not found for invoice - Order ID: %s, User ID: %s", orderID, user.ID)
		utils.NotFound(c, "Order not found")
		return
	}

	var items []models.OrderItem
	if err := config.DB.Preload("Product").Where("order_id = ?", orderID).Find(&items).Error; err != nil {
		utils.InternalServerError(c, "Failed to load order items", err.Error())
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Store info
	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(100, 10, "GameOn Mart")
	pdf.SetFont("Arial", "", 12)
	pdf.Ln(8)
	pdf.Cell(100, 8, "Email: support@gameonmart.com")
	pdf.Ln(12)

	// Invoice title and order info
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(100, 10, "INVOICE")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(100, 8, "Order ID: "+order.ID.String())
	pdf.Ln(6)
	pdf.Cell(50, 8, "Order Date: "+order.CreatedAt.Format("2006-01-02 15:04:05"))
	pdf.Cell(60, 8, "Status: "+order.Status)
	pdf.Ln(6)
	pdf.Cell(50, 8, "Payment Mode: "+order.Payment.PaymentMode)
	pdf.Cell(60, 8, "Payment Status: "+order.Payment.Status)
	pdf.Ln(10)

	// Customer and shipping info
	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(100, 8, "Billed To:")
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(100, 8, order.User.FullName)
	pdf.Ln(6)
	pdf.Cell(100, 8, order.User.Email)
	pdf.Ln(8)

	addr := order.ShippingAddress
	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(100, 8, "Shipping Address:")
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(100, 8, addr.FullName+" | "+addr.Phone)
	pdf.Ln(6)
	pdf.Cell(100, 8, addr.Address)
	pdf.Ln(6)
	pdf.Cell(100, 8, addr.City+", "+addr.State+", "+addr.Country+" - "+addr.PostalCode)
	pdf.Ln(10)

	// Items table
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(70, 8, "Product", "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 8, "Qty", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 8, "Price", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 8, "Total", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 12)
	for _, item := range items {
		pdf.CellFormat(70, 8, item.Product.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 8, fmt.Sprintf("%d", item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", item.Price), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", float64(item.Quantity)*item.Price), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	// Price breakdown
	pdf.Ln(4)
	breakdown := order.PriceBreakdown
	summary := []struct {
		label string
		value float64
	}{
		{"Subtotal:", breakdown.ProductPrice},
		{"Delivery Fee:", breakdown.DeliveryFee},
		{"Platform Fee:", breakdown.PlatformFee},
		{"Taxes:", breakdown.Taxes},
		{"Discount:", breakdown.Discount},
		{"Payable Amount:", order.PayableAmount},
	}
	for _, row := range summary {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(120, 8, row.label, "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 12)
		pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", row.value), "", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.LogError("Failed to generate invoice PDF for order ID: %s: %v", orderID, err)
		utils.InternalServerError(c, "Failed to generate invoice", err.Error())
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=invoice-%s.pdf", order.ID))
	c.Data(200, "application/pdf", buf.Bytes())
}
