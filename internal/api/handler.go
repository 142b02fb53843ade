package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/xtrajank/groceries/internal/models"
	"github.com/xtrajank/groceries/internal/report"
	"github.com/xtrajank/groceries/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler serves a report assembled once at startup.
type Handler struct {
	orders []*models.Order
	writer *report.Writer
}

// NewHandler creates a new HTTP handler
func NewHandler(orders []*models.Order, writer *report.Writer) *Handler {
	return &Handler{
		orders: orders,
		writer: writer,
	}
}

// OrderSummary is the list view of an order.
type OrderSummary struct {
	OrderID       int    `json:"order_id"`
	Date          string `json:"date"`
	CustomerID    int    `json:"customer_id"`
	CustomerName  string `json:"customer_name"`
	LineItems     int    `json:"line_items"`
	Sum           string `json:"sum"`
	PaymentMethod string `json:"payment_method"`
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())

	router.GET("/health", h.healthCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/orders", h.listOrders)
		v1.GET("/orders/:id", h.getOrder)
		v1.GET("/report", h.getReport)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"orders": len(h.orders),
		"time":   time.Now().Unix(),
	})
}

func (h *Handler) listOrders(c *gin.Context) {
	out := make([]OrderSummary, 0, len(h.orders))
	for _, o := range h.orders {
		summary := OrderSummary{
			OrderID:      o.ID,
			Date:         o.Date,
			CustomerID:   o.Customer.ID,
			CustomerName: o.Customer.Name,
			LineItems:    len(o.LineItems),
			Sum:          o.Sum.StringFixed(2),
		}
		if o.Payment != nil {
			summary.PaymentMethod = o.Payment.Method().String()
		}
		out = append(out, summary)
	}

	c.JSON(http.StatusOK, gin.H{"orders": out})
}

// getOrder renders the first order with the requested id
func (h *Handler) getOrder(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID",
		})
		return
	}

	for _, o := range h.orders {
		if o.ID == orderID {
			c.String(http.StatusOK, h.writer.Render(o))
			return
		}
	}

	c.JSON(http.StatusNotFound, gin.H{
		"error": "Order not found",
	})
}

func (h *Handler) getReport(c *gin.Context) {
	var sb strings.Builder
	if _, err := h.writer.WriteAll(c.Request.Context(), &sb, h.orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to render report",
			"details": err.Error(),
		})
		return
	}
	c.String(http.StatusOK, sb.String())
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
