package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"CUSTOMERS_FILE", "ITEMS_FILE", "ORDERS_FILE", "REPORT_FILE", "DATABASE_URL", "KAFKA_BROKERS", "JAEGER_ENDPOINT"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "customers.txt", cfg.Files.Customers)
	assert.Equal(t, "items.txt", cfg.Files.Items)
	assert.Equal(t, "orders.txt", cfg.Files.Orders)
	assert.Equal(t, "order_report.txt", cfg.Files.Report)
	assert.Empty(t, cfg.Archive.URL)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Empty(t, cfg.Observ.JaegerEndpoint)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ORDERS_FILE", "/data/orders.txt")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")

	cfg := Load()

	assert.Equal(t, "/data/orders.txt", cfg.Files.Orders)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
}
