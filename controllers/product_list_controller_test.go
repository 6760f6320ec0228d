package controllers_test

import (
	"net/http"
	"testing"

	"github.com/gameonmart/GameOnMart/models"
	"github.com/gameonmart/GameOnMart/routes"
	"github.com/gameonmart/GameOnMart/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProductsBySeller(t *testing.T) {
	utils.TestSetup(t)
	defer utils.TestTeardown(t)

	router := routes.SetupRouter()
	seller := utils.CreateTestUser(t, models.RoleSeller)
	other := utils.CreateTestUser(t, models.RoleSeller)
	utils.CreateTestProduct(t, seller.ID, 100, 5)
	utils.CreateTestProduct(t, seller.ID, 200, 5)
	utils.CreateTestProduct(t, other.ID, 300, 5)

	resp := utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: http.MethodGet,
		Path:   "/v1/products/seller/" + seller.ID.String(),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data, ok := resp.Body["data"].(map[string]interface{})
	require.True(t, ok, "body: %v", resp.Body)
	products, ok := data["products"].([]interface{})
	require.True(t, ok, "body: %v", resp.Body)
	assert.Len(t, products, 2)
}

func TestGetProductsBySellerInvalidID(t *testing.T) {
	utils.TestSetup(t)
	defer utils.TestTeardown(t)

	router := routes.SetupRouter()
	resp := utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: http.MethodGet,
		Path:   "/v1/products/seller/not-a-uuid",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
