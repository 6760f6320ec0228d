package controllers_test

import (
	"net/http"
	"sync"
	"testing"

	"github.com/gameonmart/GameOnMart/config"
	"github.com/gameonmart/GameOnMart/models"
	"github.com/gameonmart/GameOnMart/routes"
	"github.com/gameonmart/GameOnMart/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// placeTestOrder checks out one unit of the product and returns the
// stored order
func placeTestOrder(t *testing.T, router *gin.Engine, buyer *models.User, product *models.Product, quantity int) models.Order {
	t.Helper()

	resp := utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: http.MethodPost,
		Path:   "/v1/orders",
		Body: map[string]interface{}{
			"is_cart":          false,
			"product_id":       product.ID.String(),
			"quantity":         quantity,
			"payment_mode":     models.PaymentModeCOD,
			"shipping_address": testShippingAddress(),
		},
		Headers: authHeader(utils.GetTestToken(t, buyer)),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "body: %v", resp.Body)

	var order models.Order
	require.NoError(t, config.DB.Preload("Payment").Where("user_id = ?", buyer.ID).Order("created_at desc").First(&order).Error)
	return order
}

func TestCancelOrderRestoresStock(t *testing.T) {
	utils.TestSetup(t)
	defer utils.TestTeardown(t)

	router := routes.SetupRouter()
	seller := utils.CreateTestUser(t, models.RoleSeller)
	buyer := utils.CreateTestUser(t, models.RoleUser)
	product := utils.CreateTestProduct(t, seller.ID, 100, 5)
	order := placeTestOrder(t, router, buyer, product, 2)

	resp := utils.MakeTestRequest(t, router, utils.TestRequest{
		Method:  http.MethodDelete,
		Path:    "/v1/orders/" + order.ID.String(),
		Headers: authHeader(utils.GetTestToken(t, buyer)),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, "body: %v", resp.Body)

	var updated models.Order
	require.NoError(t, config.DB.Preload("Payment").Where("id = ?", order.ID).First(&updated).Error)
	assert.Equal(t, models.OrderStatusCancelled, updated.Status)

	// a pending payment is cancelled, not refunded
	assert.Equal(t, models.PaymentStatusCancelled, updated.Payment.Status)

	var items []models.OrderItem
	require.NoError(t, config.DB.Where("order_id = ?", order.ID).Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, models.ItemStatusCancelled, items[0].Status)

	var restocked models.Product
	require.NoError(t, config.DB.Where("id = ?", product.ID).First(&restocked).Error)
	assert.Equal(t, 5, restocked.Stock)

	var refundCount int64
	config.DB.Model(&models.RefundExchange{}).Where("order_id = ?", order.ID).Count(&refundCount)
	assert.Equal(t, int64(0), refundCount)
}

func TestCancelPaidOrderCreatesRefunds(t *testing.T) {
	utils.TestSetup(t)
	defer utils.TestTeardown(t)

	router := routes.SetupRouter()
	seller := utils.CreateTestUser(t, models.RoleSeller)
	buyer := utils.CreateTestUser(t, models.RoleUser)
	product := utils.CreateTestProduct(t, seller.ID, 250, 5)
	order := placeTestOrder(t, router, buyer, product, 2)

	require.NoError(t, config.DB.Model(&models.Payment{}).
		Where("id = ?", order.PaymentID).
		Update("status", models.PaymentStatusPaid).Error)

	resp := utils.MakeTestRequest(t, router, utils.TestRequest{
		Method:  http.MethodDelete,
		Path:    "/v1/orders/" + order.ID.String(),
		Headers: authHeader(utils.GetTestToken(t, buyer)),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, "body: %v", resp.Body)

	var payment models.Payment
	require.NoError(t, config.DB.Where("id = ?", order.PaymentID).First(&payment).Error)
	assert.Equal(t, models.PaymentStatusRefunded, payment.Status)

	var refunds []models.RefundExchange
	require.NoError(t, config.DB.Where("order_id = ?", order.ID).Find(&refunds).Error)
	require.Len(t, refunds, 1)
	assert.Equal(t, models.RefundTypeRefund, refunds[0].Type)
	assert.Equal(t, models.RefundStatusPending, refunds[0].Status)
	assert.Equal(t, "Order cancelled", refunds[0].Reason)
	assert.Equal(t, 500.0, refunds[0].RefundAmount)
}

func TestCancelShippedOrderRejected(t *testing.T) {
	utils.TestSetup(t)
	defer utils.TestTeardown(t)

	router := routes.SetupRouter()
	seller := utils.CreateTestUser(t, models.RoleSeller)
	buyer := utils.CreateTestUser(t, models.RoleUser)
	product := utils.CreateTestProduct(t, seller.ID, 100, 5)
	order := placeTestOrder(t, router, buyer, product, 1)

	require.NoError(t, config.DB.Model(&models.Order{}).
		Where("id = ?", order.ID).
		Update("status", models.OrderStatusShipped).Error)

	resp := utils.MakeTestRequest(t, router, utils.TestRequest{
		Method:  http.MethodDelete,
		Path:    "/v1/orders/" + order.ID.String(),
		Headers: authHeader(utils.GetTestToken(t, buyer)),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// nothing changed
	var product2 models.Product
	require.NoError(t, config.DB.Where("id = ?", product.ID).First(&product2).Error)
	assert.Equal(t, 4, product2.Stock)
}

func TestCancelOrderTwiceRejected(t *testing.T) {
	utils.TestSetup(t)
	defer utils.TestTeardown(t)

	router := routes.SetupRouter()
	seller := utils.CreateTestUser(t, models.RoleSeller)
	buyer := utils.CreateTestUser(t, models.RoleUser)
	product := utils.CreateTestProduct(t, seller.ID, 100, 5)
	order := placeTestOrder(t, router, buyer, product, 1)
	token := utils.GetTestToken(t, buyer)

	first := utils.MakeTestRequest(t, router, utils.TestRequest{
		Method:  http.MethodDelete,
		Path:    "/v1/orders/" + order.ID.String(),
		Headers: authHeader(token),
	})
	require.Equal(t, http.StatusOK, first.StatusCode)

	second := utils.MakeTestRequest(t, router, utils.TestRequest{
		Method:  http.MethodDelete,
		Path:    "/v1/orders/" + order.ID.String(),
		Headers: authHeader(token),
	})
	assert.Equal(t, http.StatusBadRequest, second.StatusCode)

	// the second attempt must not restock again
	var product2 models.Product
	require.NoError(t, config.DB.Where("id = ?", product.ID).First(&product2).Error)
	assert.Equal(t, 5, product2.Stock)
}

func TestCancelSomeoneElsesOrderForbidden(t *testing.T) {
	utils.TestSetup(t)
	defer utils.TestTeardown(t)

	router := routes.SetupRouter()
	seller := utils.CreateTestUser(t, models.RoleSeller)
	buyer := utils.CreateTestUser(t, models.RoleUser)
	other := utils.CreateTestUser(t, models.RoleUser)
	product := utils.CreateTestProduct(t, seller.ID, 100, 5)
	order := placeTestOrder(t, router, buyer, product, 1)

	resp := utils.MakeTestRequest(t, router, utils.TestRequest{
		Method:  http.MethodDelete,
		Path:    "/v1/orders/" + order.ID.String(),
		Headers: authHeader(utils.GetTestToken(t, other)),
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAdminCanCancelAnyOrder(t *testing.T) {
	utils.TestSetup(t)
	defer utils.TestTeardown(t)

	router := routes.SetupRouter()
	seller := utils.CreateTestUser(t, models.RoleSeller)
	buyer := utils.CreateTestUser(t, models.RoleUser)
	admin := utils.CreateTestUser(t, models.RoleAdmin)
	product := utils.CreateTestProduct(t, seller.ID, 100, 5)
	order := placeTestOrder(t, router, buyer, product, 1)

	resp := utils.MakeTestRequest(t, router, utils.TestRequest{
		Method:  http.MethodDelete,
		Path:    "/v1/orders/" + order.ID.String(),
		Headers: authHeader(utils.GetTestToken(t, admin)),
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestConcurrentCancelsRestockOnce(t *testing.T) {
	utils.TestSetup(t)
	defer utils.TestTeardown(t)

	router := routes.SetupRouter()
	seller := utils.CreateTestUser(t, models.RoleSeller)
	buyer := utils.CreateTestUser(t, models.RoleUser)
	admin := utils.CreateTestUser(t, models.RoleAdmin)
	product := utils.CreateTestProduct(t, seller.ID, 200, 5)
	order := placeTestOrder(t, router, buyer, product, 2)

	require.NoError(t, config.DB.Model(&models.Payment{}).
		Where("id = ?", order.PaymentID).
		Update("status", models.PaymentStatusPaid).Error)

	// owner and admin race to cancel the same order
	tokens := []string{
		utils.GetTestToken(t, buyer),
		utils.GetTestToken(t, admin),
	}
	results := make([]int, len(tokens))
	var wg sync.WaitGroup
	for i, token := range tokens {
		wg.Add(1)
		go func(i int, token string) {
			defer wg.Done()
			resp := utils.MakeTestRequest(t, router, utils.TestRequest{
				Method:  http.MethodDelete,
				Path:    "/v1/orders/" + order.ID.String(),
				Headers: authHeader(token),
			})
			results[i] = resp.StatusCode
		}(i, token)
	}
	wg.Wait()

	cancelled := 0
	rejected := 0
	for _, code := range results {
		switch code {
		case http.StatusOK:
			cancelled++
		case http.StatusBadRequest:
			rejected++
		default:
			t.Fatalf("unexpected status %d", code)
		}
	}
	assert.Equal(t, 1, cancelled, "exactly one cancellation should win")
	assert.Equal(t, 1, rejected)

	// the losing cancellation must not restock again or duplicate refunds
	var restocked models.Product
	require.NoError(t, config.DB.Where("id = ?", product.ID).First(&restocked).Error)
	assert.Equal(t, 5, restocked.Stock)

	var refundCount int64
	config.DB.Model(&models.RefundExchange{}).Where("order_id = ?", order.ID).Count(&refundCount)
	assert.Equal(t, int64(1), refundCount)
}

func TestCancelOrderMissingPaymentFails(t *testing.T) {
	utils.TestSetup(t)
	defer utils.TestTeardown(t)

	router := routes.SetupRouter()
	seller := utils.CreateTestUser(t, models.RoleSeller)
	buyer := utils.CreateTestUser(t, models.RoleUser)
	product := utils.CreateTestProduct(t, seller.ID, 100, 5)
	order := placeTestOrder(t, router, buyer, product, 1)

	// sever the payment link so the payment transition matches no rows
	require.NoError(t, config.DB.Exec("UPDATE orders SET payment_id = NULL WHERE id = ?", order.ID).Error)

	resp := utils.MakeTestRequest(t, router, utils.TestRequest{
		Method:  http.MethodDelete,
		Path:    "/v1/orders/" + order.ID.String(),
		Headers: authHeader(utils.GetTestToken(t, buyer)),
	})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	// the whole cancellation rolls back
	var unchanged models.Order
	require.NoError(t, config.DB.Where("id = ?", order.ID).First(&unchanged).Error)
	assert.Equal(t, models.OrderStatusPending, unchanged.Status)

	var stock models.Product
	require.NoError(t, config.DB.Where("id = ?", product.ID).First(&stock).Error)
	assert.Equal(t, 4, stock.Stock)
}
