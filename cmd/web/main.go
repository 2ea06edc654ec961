// Command web serves the catalog's HTML views. It reads and writes products
// only through the REST API at API_URL.
package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"catalog/internal/config"
	"catalog/internal/frontend"
	applogger "catalog/internal/logger"
	"catalog/pkg/client"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := applogger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zlog.Sync()

	handler, err := frontend.NewHandler(client.New(cfg.APIURL), zlog)
	if err != nil {
		zlog.Fatal("Failed to build frontend", zap.Error(err))
	}

	app := fiber.New(fiber.Config{AppName: "catalog-web"})
	app.Use(logger.New())
	app.Use(recover.New())
	handler.RegisterRoutes(app)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		zlog.Info("Starting web server", zap.String("port", cfg.WebPort), zap.String("api", cfg.APIURL))
		if err := app.Listen(cfg.WebPort); err != nil {
			zlog.Fatal("Web server failed to start", zap.Error(err))
		}
	}()

	<-quit
	if err := app.Shutdown(); err != nil {
		zlog.Error("Error during Fiber shutdown", zap.Error(err))
	}
	zlog.Info("Web server stopped")
}
