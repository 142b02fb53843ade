package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	Files   FilesConfig
	Server  ServerConfig
	Archive ArchiveConfig
	Kafka   KafkaConfig
	Observ  ObservabilityConfig
}

type AppConfig struct {
	Env string
}

// FilesConfig holds the input tables and the report destination.
type FilesConfig struct {
	Customers string
	Items     string
	Orders    string
	Report    string
}

type ServerConfig struct {
	Port string
}

// ArchiveConfig is disabled when URL is empty.
type ArchiveConfig struct {
	URL string
}

// KafkaConfig is disabled when Brokers is empty.
type KafkaConfig struct {
	Brokers    []string
	TopicOrder string
}

type ObservabilityConfig struct {
	JaegerEndpoint string
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Env: getEnv("ENV", "development"),
		},
		Files: FilesConfig{
			Customers: getEnv("CUSTOMERS_FILE", "customers.txt"),
			Items:     getEnv("ITEMS_FILE", "items.txt"),
			Orders:    getEnv("ORDERS_FILE", "orders.txt"),
			Report:    getEnv("REPORT_FILE", "order_report.txt"),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Archive: ArchiveConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Kafka: KafkaConfig{
			Brokers:    splitList(getEnv("KAFKA_BROKERS", "")),
			TopicOrder: getEnv("KAFKA_TOPIC_ORDER_EVENTS", "order-events"),
		},
		Observ: ObservabilityConfig{
			JaegerEndpoint: getEnv("JAEGER_ENDPOINT", ""),
		},
	}

	log.Printf("Config loaded: env=%s, orders=%s, report=%s", cfg.App.Env, cfg.Files.Orders, cfg.Files.Report)
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
