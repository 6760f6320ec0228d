package controllers

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gameonmart/GameOnMart/config"
	"github.com/gameonmart/GameOnMart/models"
	"github.com/gameonmart/GameOnMart/utils"
	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
)

func reportRange(period string, now time.Time) (time.Time, time.Time, bool) {
	switch period {
	case "day":
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 0, 1), true
	case "week":
		end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
		return end.AddDate(0, 0, -7), end, true
	case "month":
		end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
		return end.AddDate(0, -1, 0), end, true
	}
	return time.Time{}, time.Time{}, false
}

// DownloadSalesReportExcel exports an Excel sales report for the period
func DownloadSalesReportExcel(c *gin.Context) {
	utils.LogInfo("DownloadSalesReportExcel called")

	period := c.DefaultQuery("period", "day")
	startDate, endDate, ok := reportRange(period, time.Now())
	if !ok {
		utils.LogError("Invalid period specified: %s", period)
		utils.BadRequest(c, "Invalid period", "Period must be day, week, or month")
		return
	}

	var orders []models.Order
	if err := config.DB.Where("created_at >= ? AND created_at < ?", startDate, endDate).
		Preload("User").
		Preload("Payment").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		utils.LogError("Failed to fetch orders for report: %v", err)
		utils.InternalServerError(c, "Failed to fetch orders", err.Error())
		return
	}
	utils.LogDebug("Retrieved %d orders for Excel report", len(orders))

	var (
		totalRevenue   float64
		totalCancelled int
		customerSet    = make(map[string]bool)
	)
	for _, order := range orders {
		if order.Status == models.OrderStatusCancelled {
			totalCancelled++
			continue
		}
		totalRevenue += order.PayableAmount
		customerSet[order.UserID.String()] = true
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Sales Report")
	if err != nil {
		utils.InternalServerError(c, "Failed to create report sheet", err.Error())
		return
	}

	// Summary block
	header := sheet.AddRow()
	header.AddCell().SetString("GameOn Mart Sales Report")
	periodRow := sheet.AddRow()
	periodRow.AddCell().SetString("Period")
	periodRow.AddCell().SetString(fmt.Sprintf("%s to %s", startDate.Format("2006-01-02"), endDate.AddDate(0, 0, -1).Format("2006-01-02")))
	summaryRows := []struct {
		label string
		value string
	}{
		{"Total Orders", fmt.Sprintf("%d", len(orders))},
		{"Cancelled Orders", fmt.Sprintf("%d", totalCancelled)},
		{"Unique Customers", fmt.Sprintf("%d", len(customerSet))},
		{"Total Revenue", fmt.Sprintf("%.2f", totalRevenue)},
	}
	for _, row := range summaryRows {
		r := sheet.AddRow()
		r.AddCell().SetString(row.label)
		r.AddCell().SetString(row.value)
	}
	sheet.AddRow()

	// Order rows
	head := sheet.AddRow()
	for _, title := range []string{"Order ID", "Date", "Customer", "Status", "Payment Mode", "Payment Status", "Subtotal", "Payable"} {
		head.AddCell().SetString(title)
	}
	for _, order := range orders {
		r := sheet.AddRow()
		r.AddCell().SetString(order.ID.String())
		r.AddCell().SetString(order.CreatedAt.Format("2006-01-02 15:04:05"))
		r.AddCell().SetString(order.User.Email)
		r.AddCell().SetString(order.Status)
		r.AddCell().SetString(order.Payment.PaymentMode)
		r.AddCell().SetString(order.Payment.Status)
		r.AddCell().SetFloat(order.Subtotal)
		r.AddCell().SetFloat(order.PayableAmount)
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		utils.LogError("Failed to write Excel report: %v", err)
		utils.InternalServerError(c, "Failed to generate report", err.Error())
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=sales-report-%s.xlsx", period))
	c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
