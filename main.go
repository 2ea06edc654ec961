package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalog/internal/config"
	"catalog/internal/database"
	"catalog/internal/handlers"
	applogger "catalog/internal/logger"
	"catalog/internal/middleware"
	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/services"
	"catalog/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
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

	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("Failed to open database", zap.String("driver", cfg.DatabaseDriver), zap.Error(err))
	}

	productRepo := repositories.NewGORMProductRepository(db)
	if cfg.Seed {
		seedProducts(productRepo, logger)
	}

	// Events are optional; the API keeps serving without a broker.
	var publisher services.EventPublisher
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}, logger)
		if err != nil {
			logger.Warn("RabbitMQ unavailable, product events disabled", zap.Error(err))
		} else {
			publisher = mqClient
		}
	}

	app := NewApp(cfg, productRepo, publisher, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("Starting server", zap.String("port", cfg.AppPort))
		if err := app.Listen(cfg.AppPort); err != nil {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		logger.Error("Error during Fiber shutdown", zap.Error(err))
	}
	if mqClient != nil {
		if err := mqClient.Close(); err != nil {
			logger.Error("Error closing RabbitMQ client", zap.Error(err))
		}
	}
	if err := database.Close(db); err != nil {
		logger.Error("Error closing database", zap.Error(err))
	}
	logger.Info("Server gracefully stopped")
}

// NewApp wires the product API, health check and metrics on a new Fiber app.
func NewApp(cfg *config.Config, repo repositories.ProductRepository, publisher services.EventPublisher, logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "catalog",
		ErrorHandler: handlers.ErrorHandler(logger),
	})

	metrics := middleware.NewMetrics()
	middleware.Setup(app, cfg.FrontendURL, metrics)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	app.Get("/metrics", metrics.Handler())

	productService := services.NewProductService(repo, publisher, logger)
	productHandler := handlers.NewProductHandler(productService, logger)
	productHandler.RegisterRoutes(app.Group("/api"))

	return app
}

// seedProducts inserts sample products into an empty catalog.
func seedProducts(repo repositories.ProductRepository, logger *zap.Logger) {
	existing, err := repo.GetAll()
	if err != nil {
		logger.Error("Failed to check catalog before seeding", zap.Error(err))
		return
	}
	if len(existing) > 0 {
		return
	}

	products := []models.Product{
		{Name: "Monitor Curvo de 49 Pulgadas", Price: 300, Availability: true},
		{Name: "Teclado Mecánico", Price: 75, Availability: true},
		{Name: "Mouse Inalámbrico", Price: 25, Availability: true},
	}
	for i := range products {
		if err := repo.Create(&products[i]); err != nil {
			logger.Error("Error seeding product", zap.String("name", products[i].Name), zap.Error(err))
			continue
		}
		logger.Info("Seeded product", zap.String("name", products[i].Name), zap.Uint("id", products[i].ID))
	}
}
