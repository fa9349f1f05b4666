package middlewares

import (
	"github.com/gofiber/fiber/v2"

	loggerMw "school_backend/internals/middlewares/logger"
)

// SetupMiddlewares wires the base middleware chain: recovery first,
// then request logging, CORS and the global rate limit.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(loggerMw.LoggerMiddleware())
	app.Use(CorsMiddleware())
	app.Use(GlobalRateLimiter())
}
