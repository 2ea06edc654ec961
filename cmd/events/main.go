// Command events logs every product lifecycle event published on the
// product_events queue.
package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"catalog/internal/config"
	applogger "catalog/internal/logger"
	"catalog/pkg/rabbitmq"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := applogger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	if cfg.RabbitMQURL == "" {
		logger.Fatal("RABBITMQ_URL is required")
	}

	mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize RabbitMQ client", zap.Error(err))
	}
	defer mqClient.Close()

	err = mqClient.ConsumeProductEvents(func(event rabbitmq.ProductEvent) error {
		logger.Info("product event",
			zap.String("event", event.Event),
			zap.Uint("product_id", event.Product.ID),
			zap.String("name", event.Product.Name),
			zap.Float64("price", event.Product.Price),
			zap.Bool("availability", event.Product.Availability),
			zap.Time("occurred_at", event.OccurredAt),
		)
		return nil
	})
	if err != nil {
		logger.Fatal("Failed to start consumer", zap.Error(err))
	}
	logger.Info("Consuming product events", zap.String("queue", rabbitmq.ProductEventsQueue))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Consumer stopped")
}
