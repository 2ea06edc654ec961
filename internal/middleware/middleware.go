package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// Setup configures the middleware shared by every route. Only frontendURL is
// allowed as a cross-origin caller.
func Setup(app *fiber.App, frontendURL string, metrics *Metrics) {
	app.Use(requestid.New())

	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${locals:requestid} ${status} - ${method} ${path} - ${latency}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(recover.New())

	app.Use(helmet.New())

	app.Use(cors.New(cors.Config{
		AllowOrigins:  frontendURL,
		AllowMethods:  "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:  "Origin,Content-Type,Accept",
		ExposeHeaders: "X-Request-ID",
	}))

	if metrics != nil {
		app.Use(metrics.Middleware())
	}
}
