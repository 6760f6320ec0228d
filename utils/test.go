package utils

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gameonmart/GameOnMart/config"
	"github.com/gameonmart/GameOnMart/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TestSetup initializes the test database. Tests that need a database
// are skipped when none is configured.
func TestSetup(t *testing.T) {
	if os.Getenv("DB_HOST") == "" {
		t.Skip("no test database configured, set DB_HOST to run")
	}

	gin.SetMode(gin.TestMode)
	config.InitDB()
	ClearTestData()
}

// TestTeardown cleans up test data
func TestTeardown(t *testing.T) {
	ClearTestData()
}

// ClearTestData clears all test data from the database
func ClearTestData() {
	config.DB.Exec("TRUNCATE TABLE refund_exchanges CASCADE")
	config.DB.Exec("TRUNCATE TABLE order_items CASCADE")
	config.DB.Exec("TRUNCATE TABLE orders CASCADE")
	config.DB.Exec("TRUNCATE TABLE payments CASCADE")
	config.DB.Exec("TRUNCATE TABLE carts CASCADE")
	config.DB.Exec("TRUNCATE TABLE reviews CASCADE")
	config.DB.Exec("TRUNCATE TABLE products CASCADE")
	config.DB.Exec("TRUNCATE TABLE otps CASCADE")
	config.DB.Exec("TRUNCATE TABLE users CASCADE")
}

// CreateTestUser creates a verified user with the given role
func CreateTestUser(t *testing.T, role string) *models.User {
	hashed, err := HashPassword("Test123!")
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	suffix := uuid.New().String()[:8]
	user := &models.User{
		FullName:   "Test User",
		Username:   "user_" + suffix,
		Email:      "user_" + suffix + "@example.com",
		Password:   hashed,
		Role:       role,
		IsVerified: true,
	}
	if err := config.DB.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

// CreateTestProduct creates a product owned by the given seller
func CreateTestProduct(t *testing.T, sellerID uuid.UUID, price float64, stock int) *models.Product {
	product := &models.Product{
		Name:        "Test Product",
		Description: "Test Product Description",
		Price:       price,
		Category:    "consoles",
		Stock:       stock,
		SellerID:    sellerID,
	}
	if err := config.DB.Create(product).Error; err != nil {
		t.Fatalf("Failed to create test product: %v", err)
	}
	return product
}

// CreateTestCartLine puts a product into a user's cart
func CreateTestCartLine(t *testing.T, userID, productID uuid.UUID, quantity int) *models.Cart {
	line := &models.Cart{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := config.DB.Create(line).Error; err != nil {
		t.Fatalf("Failed to create test cart line: %v", err)
	}
	return line
}

// GetTestToken generates an access token for a user
func GetTestToken(t *testing.T, user *models.User) string {
	tokens, err := GenerateTokens(user)
	if err != nil {
		t.Fatalf("Failed to generate test token: %v", err)
	}
	return tokens.AccessToken
}

// TestRequest represents a test HTTP request
type TestRequest struct {
	Method  string
	Path    string
	Body    interface{}
	Headers map[string]string
}

// TestResponse represents a test HTTP response
type TestResponse struct {
	StatusCode int
	Body       map[string]interface{}
}

// MakeTestRequest runs a request through the router and decodes the response
func MakeTestRequest(t *testing.T, router *gin.Engine, req TestRequest) TestResponse {
	var body []byte
	if req.Body != nil {
		var err error
		body, err = json.Marshal(req.Body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
	}

	httpReq, err := http.NewRequest(req.Method, req.Path, bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httpReq)

	var responseBody map[string]interface{}
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &responseBody); err != nil {
			t.Fatalf("Failed to unmarshal response body: %v", err)
		}
	}

	return TestResponse{
		StatusCode: w.Code,
		Body:       responseBody,
	}
}
