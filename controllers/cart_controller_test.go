package controllers_test

import (
	"net/http"
	"testing"

	"github.com/gameonmart/GameOnMart/config"
	"github.com/gameonmart/GameOnMart/models"
	"github.com/gameonmart/GameOnMart/routes"
	"github.com/gameonmart/GameOnMart/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddToCartAccumulatesQuantity(t *testing.T) {
	utils.TestSetup(t)
	defer utils.TestTeardown(t)

	router := routes.SetupRouter()
	seller := utils.CreateTestUser(t, models.RoleSeller)
	buyer := utils.CreateTestUser(t, models.RoleUser)
	product := utils.CreateTestProduct(t, seller.ID, 100, 10)
	token := utils.GetTestToken(t, buyer)

	for i := 0; i < 2; i++ {
		resp := utils.MakeTestRequest(t, router, utils.TestRequest{
			Method: http.MethodPost,
			Path:   "/v1/cart",
			Body: map[string]interface{}{
				"product_id": product.ID.String(),
				"quantity":   2,
			},
			Headers: authHeader(token),
		})
		require.Equal(t, http.StatusOK, resp.StatusCode, "body: %v", resp.Body)
	}

	var line models.Cart
	require.NoError(t, config.DB.Where("user_id = ? AND product_id = ?", buyer.ID, product.ID).First(&line).Error)
	assert.Equal(t, 4, line.Quantity)
}

func TestAddToCartRejectsOverStock(t *testing.T) {
	utils.TestSetup(t)
	defer utils.TestTeardown(t)

	router := routes.SetupRouter()
	seller := utils.CreateTestUser(t, models.RoleSeller)
	buyer := utils.CreateTestUser(t, models.RoleUser)
	product := utils.CreateTestProduct(t, seller.ID, 100, 3)
	token := utils.GetTestToken(t, buyer)

	resp := utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: http.MethodPost,
		Path:   "/v1/cart",
		Body: map[string]interface{}{
			"product_id": product.ID.String(),
			"quantity":   5,
		},
		Headers: authHeader(token),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetCartSubtotal(t *testing.T) {
	utils.TestSetup(t)
	defer utils.TestTeardown(t)

	router := routes.SetupRouter()
	seller := utils.CreateTestUser(t, models.RoleSeller)
	buyer := utils.CreateTestUser(t, models.RoleUser)
	first := utils.CreateTestProduct(t, seller.ID, 100, 10)
	second := utils.CreateTestProduct(t, seller.ID, 50, 10)
	utils.CreateTestCartLine(t, buyer.ID, first.ID, 2)
	utils.CreateTestCartLine(t, buyer.ID, second.ID, 1)

	resp := utils.MakeTestRequest(t, router, utils.TestRequest{
		Method:  http.MethodGet,
		Path:    "/v1/cart",
		Headers: authHeader(utils.GetTestToken(t, buyer)),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data, ok := resp.Body["data"].(map[string]interface{})
	require.True(t, ok, "body: %v", resp.Body)
	assert.Equal(t, 250.0, data["subtotal"])
}

func TestRemoveFromCart(t *testing.T) {
	utils.TestSetup(t)
	defer utils.TestTeardown(t)

	router := routes.SetupRouter()
	seller := utils.CreateTestUser(t, models.RoleSeller)
	buyer := utils.CreateTestUser(t, models.RoleUser)
	product := utils.CreateTestProduct(t, seller.ID, 100, 10)
	utils.CreateTestCartLine(t, buyer.ID, product.ID, 1)
	token := utils.GetTestToken(t, buyer)

	resp := utils.MakeTestRequest(t, router, utils.TestRequest{
		Method:  http.MethodDelete,
		Path:    "/v1/cart/" + product.ID.String(),
		Headers: authHeader(token),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	config.DB.Model(&models.Cart{}).Where("user_id = ?", buyer.ID).Count(&count)
	assert.Equal(t, int64(0), count)

	// removing again reports not found
	again := utils.MakeTestRequest(t, router, utils.TestRequest{
		Method:  http.MethodDelete,
		Path:    "/v1/cart/" + product.ID.String(),
		Headers: authHeader(token),
	})
	assert.Equal(t, http.StatusNotFound, again.StatusCode)
}
