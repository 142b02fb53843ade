package main

import (
	"context"
	"log"
	"time"

	"github.com/xtrajank/groceries/config"
	"github.com/xtrajank/groceries/internal/broker"
	"github.com/xtrajank/groceries/internal/service"
	"github.com/xtrajank/groceries/internal/store"
	"github.com/xtrajank/groceries/internal/util"

	"go.uber.org/zap"
)

func main() {

	cfg := config.Load()

	if err := util.InitLogger(cfg.App.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()

	tp, err := util.InitTracer("groceries", cfg.Observ.JaegerEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := util.ShutdownTracer(ctx, tp); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	ctx := context.Background()

	var archiver service.OrderArchiver
	if cfg.Archive.URL != "" {
		db, err := store.NewStore(cfg.Archive.URL)
		if err != nil {
			logger.Error("Archive disabled", zap.Error(err))
		} else {
			defer db.Close()
			if err := db.EnsureSchema(ctx); err != nil {
				logger.Error("Archive disabled", zap.Error(err))
			} else {
				archiver = db
			}
		}
	}

	var publisher service.OrderPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicOrder)
		defer producer.Close()
		publisher = broker.NewEventPublisher(producer)
	}

	svc := service.NewReportService(cfg.Files, archiver, publisher)
	if _, err := svc.Run(ctx); err != nil {
		logger.Error("Report failed", zap.Error(err))
	}
}
