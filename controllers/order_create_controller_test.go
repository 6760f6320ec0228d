package controllers_test

import (
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/gameonmart/GameOnMart/config"
	"github.com/gameonmart/GameOnMart/models"
	"github.com/gameonmart/GameOnMart/routes"
	"github.com/gameonmart/GameOnMart/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testShippingAddress() models.ShippingAddress {
	return models.ShippingAddress{
		FullName:   "Test User",
		Phone:      "9876543210",
		Address:    "42 Arcade Lane",
		City:       "Kochi",
		State:      "Kerala",
		PostalCode: "682001",
		Country:    "India",
	}
}

func authHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func TestCreateOrderSingleProduct(t *testing.T) {
	utils.TestSetup(t)
	defer utils.TestTeardown(t)

	router := routes.SetupRouter()
	seller := utils.CreateTestUser(t, models.RoleSeller)
	buyer := utils.CreateTestUser(t, models.RoleUser)
	product := utils.CreateTestProduct(t, seller.ID, 600, 10)
	token := utils.GetTestToken(t, buyer)

	resp := utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: http.MethodPost,
		Path:   "/v1/orders",
		Body: map[string]interface{}{
			"is_cart":          false,
			"product_id":       product.ID.String(),
			"quantity":         1,
			"payment_mode":     models.PaymentModeCOD,
			"shipping_address": testShippingAddress(),
		},
		Headers: authHeader(token),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "body: %v", resp.Body)

	// 600 subtotal: free delivery, 10 platform fee, 108 tax
	var order models.Order
	require.NoError(t, config.DB.Preload("Payment").Where("user_id = ?", buyer.ID).First(&order).Error)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.InDelta(t, 718.0, order.PayableAmount, 0.001)
	assert.Equal(t, models.PaymentStatusPending, order.Payment.Status)
	require.NotNil(t, order.Payment.OrderID)
	assert.Equal(t, order.ID, *order.Payment.OrderID)

	var items []models.OrderItem
	require.NoError(t, config.DB.Where("order_id = ?", order.ID).Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, models.ItemStatusPending, items[0].Status)
	assert.Equal(t, 600.0, items[0].Price)

	var updated models.Product
	require.NoError(t, config.DB.Where("id = ?", product.ID).First(&updated).Error)
	assert.Equal(t, 9, updated.Stock)
}

func TestCreateOrderFromCartClearsCart(t *testing.T) {
	utils.TestSetup(t)
	defer utils.TestTeardown(t)

	router := routes.SetupRouter()
	seller := utils.CreateTestUser(t, models.RoleSeller)
	buyer := utils.CreateTestUser(t, models.RoleUser)
	first := utils.CreateTestProduct(t, seller.ID, 200, 10)
	second := utils.CreateTestProduct(t, seller.ID, 150, 10)
	utils.CreateTestCartLine(t, buyer.ID, first.ID, 2)
	utils.CreateTestCartLine(t, buyer.ID, second.ID, 1)
	token := utils.GetTestToken(t, buyer)

	resp := utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: http.MethodPost,
		Path:   "/v1/orders",
		Body: map[string]interface{}{
			"is_cart":          true,
			"payment_mode":     models.PaymentModeUPI,
			"shipping_address": testShippingAddress(),
		},
		Headers: authHeader(token),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "body: %v", resp.Body)

	// 550 subtotal crosses the free delivery threshold
	var order models.Order
	require.NoError(t, config.DB.Where("user_id = ?", buyer.ID).First(&order).Error)
	assert.Equal(t, 550.0, order.Subtotal)
	assert.Equal(t, 0.0, order.PriceBreakdown.DeliveryFee)

	var itemCount int64
	config.DB.Model(&models.OrderItem{}).Where("order_id = ?", order.ID).Count(&itemCount)
	assert.Equal(t, int64(2), itemCount)

	var cartCount int64
	config.DB.Model(&models.Cart{}).Where("user_id = ?", buyer.ID).Count(&cartCount)
	assert.Equal(t, int64(0), cartCount)
}

func TestCreateOrderEmptyCart(t *testing.T) {
	utils.TestSetup(t)
	defer utils.TestTeardown(t)

	router := routes.SetupRouter()
	buyer := utils.CreateTestUser(t, models.RoleUser)
	token := utils.GetTestToken(t, buyer)

	resp := utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: http.MethodPost,
		Path:   "/v1/orders",
		Body: map[string]interface{}{
			"is_cart":          true,
			"payment_mode":     models.PaymentModeCOD,
			"shipping_address": testShippingAddress(),
		},
		Headers: authHeader(token),
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateOrderInsufficientStockRollsBack(t *testing.T) {
	utils.TestSetup(t)
	defer utils.TestTeardown(t)

	router := routes.SetupRouter()
	seller := utils.CreateTestUser(t, models.RoleSeller)
	buyer := utils.CreateTestUser(t, models.RoleUser)
	inStock := utils.CreateTestProduct(t, seller.ID, 100, 10)
	scarce := utils.CreateTestProduct(t, seller.ID, 100, 1)
	utils.CreateTestCartLine(t, buyer.ID, inStock.ID, 2)
	utils.CreateTestCartLine(t, buyer.ID, scarce.ID, 3)
	token := utils.GetTestToken(t, buyer)

	resp := utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: http.MethodPost,
		Path:   "/v1/orders",
		Body: map[string]interface{}{
			"is_cart":          true,
			"payment_mode":     models.PaymentModeCOD,
			"shipping_address": testShippingAddress(),
		},
		Headers: authHeader(token),
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Nothing from the failed checkout may stick, including the decrement
	// that succeeded before the scarce line failed
	var orderCount, paymentCount, itemCount, cartCount int64
	config.DB.Model(&models.Order{}).Count(&orderCount)
	config.DB.Model(&models.Payment{}).Count(&paymentCount)
	config.DB.Model(&models.OrderItem{}).Count(&itemCount)
	config.DB.Model(&models.Cart{}).Where("user_id = ?", buyer.ID).Count(&cartCount)
	assert.Equal(t, int64(0), orderCount)
	assert.Equal(t, int64(0), paymentCount)
	assert.Equal(t, int64(0), itemCount)
	assert.Equal(t, int64(2), cartCount)

	var untouched models.Product
	require.NoError(t, config.DB.Where("id = ?", inStock.ID).First(&untouched).Error)
	assert.Equal(t, 10, untouched.Stock)
}

func TestCreateOrderInvalidPaymentMode(t *testing.T) {
	utils.TestSetup(t)
	defer utils.TestTeardown(t)

	router := routes.SetupRouter()
	seller := utils.CreateTestUser(t, models.RoleSeller)
	buyer := utils.CreateTestUser(t, models.RoleUser)
	product := utils.CreateTestProduct(t, seller.ID, 100, 5)
	token := utils.GetTestToken(t, buyer)

	resp := utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: http.MethodPost,
		Path:   "/v1/orders",
		Body: map[string]interface{}{
			"is_cart":          false,
			"product_id":       product.ID.String(),
			"quantity":         1,
			"payment_mode":     "Barter",
			"shipping_address": testShippingAddress(),
		},
		Headers: authHeader(token),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	utils.TestSetup(t)
	defer utils.TestTeardown(t)

	router := routes.SetupRouter()
	buyer := utils.CreateTestUser(t, models.RoleUser)
	token := utils.GetTestToken(t, buyer)

	resp := utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: http.MethodPost,
		Path:   "/v1/orders",
		Body: map[string]interface{}{
			"is_cart":          false,
			"product_id":       uuid.New().String(),
			"quantity":         1,
			"payment_mode":     models.PaymentModeCOD,
			"shipping_address": testShippingAddress(),
		},
		Headers: authHeader(token),
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestConcurrentCheckoutsDoNotOversell(t *testing.T) {
	utils.TestSetup(t)
	defer utils.TestTeardown(t)

	router := routes.SetupRouter()
	seller := utils.CreateTestUser(t, models.RoleSeller)
	product := utils.CreateTestProduct(t, seller.ID, 100, 5)

	// two buyers race for 3 units each out of 5
	buyers := []*models.User{
		utils.CreateTestUser(t, models.RoleUser),
		utils.CreateTestUser(t, models.RoleUser),
	}

	results := make([]int, len(buyers))
	var wg sync.WaitGroup
	for i := range buyers {
		wg.Add(1)
		go func(i int, token string) {
			defer wg.Done()
			resp := utils.MakeTestRequest(t, router, utils.TestRequest{
				Method: http.MethodPost,
				Path:   "/v1/orders",
				Body: map[string]interface{}{
					"is_cart":          false,
					"product_id":       product.ID.String(),
					"quantity":         3,
					"payment_mode":     models.PaymentModeCOD,
					"shipping_address": testShippingAddress(),
				},
				Headers: authHeader(token),
			})
			results[i] = resp.StatusCode
		}(i, utils.GetTestToken(t, buyers[i]))
	}
	wg.Wait()

	created := 0
	rejected := 0
	for _, code := range results {
		switch code {
		case http.StatusCreated:
			created++
		case http.StatusBadRequest:
			rejected++
		default:
			t.Fatalf("unexpected status %d", code)
		}
	}
	assert.Equal(t, 1, created, "exactly one checkout should win")
	assert.Equal(t, 1, rejected)

	var updated models.Product
	require.NoError(t, config.DB.Where("id = ?", product.ID).First(&updated).Error)
	assert.Equal(t, 2, updated.Stock, fmt.Sprintf("stock should be 5-3, got %d", updated.Stock))
}
