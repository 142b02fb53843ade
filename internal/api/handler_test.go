package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/xtrajank/groceries/internal/models"
	"github.com/xtrajank/groceries/internal/report"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	order := &models.Order{
		ID:       100,
		Date:     "2024-01-01",
		Customer: models.Customer{ID: 1, Name: "Jane Doe"},
		LineItems: []models.LineItem{
			{Item: models.Item{ID: 10, Description: "Apple", Price: decimal.RequireFromString("0.50")}, Quantity: 3},
		},
		Payment: &models.Payment{Details: models.Credit{CardNumber: "4567", Expiration: "12/25"}},
	}
	order.Total()

	router := gin.New()
	NewHandler([]*models.Order{order}, report.NewWriter()).SetupRoutes(router)
	return router
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := get(newRouter(), "/health")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListOrders(t *testing.T) {
	w := get(newRouter(), "/api/v1/orders")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Orders []OrderSummary `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Orders, 1)
	assert.Equal(t, OrderSummary{
		OrderID:       100,
		Date:          "2024-01-01",
		CustomerID:    1,
		CustomerName:  "Jane Doe",
		LineItems:     1,
		Sum:           "1.50",
		PaymentMethod: "CREDIT",
	}, body.Orders[0])
}

func TestGetOrder(t *testing.T) {
	router := newRouter()

	w := get(router, "/api/v1/orders/100")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "\tItem 10: \"Apple\", 3 @ 0.50\n")

	assert.Equal(t, http.StatusNotFound, get(router, "/api/v1/orders/7").Code)
	assert.Equal(t, http.StatusBadRequest, get(router, "/api/v1/orders/abc").Code)
}

func TestGetReport(t *testing.T) {
	w := get(newRouter(), "/api/v1/report")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Order #100, Date: 2024-01-01\n")
}

func TestMetrics(t *testing.T) {
	router := newRouter()
	get(router, "/health")

	w := get(router, "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}
