// file: internals/middlewares/middlewares.go
package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"trainingcenter_backend/internals/configs"
	"trainingcenter_backend/internals/middlewares/logger"
)

func SetupMiddlewares(app *fiber.App, cfg configs.Config) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware(cfg.CORSOrigins))
	app.Use(logger.LoggerMiddleware(cfg.Timezone))
	app.Use(GlobalRateLimiter(cfg.RateLimitMax))
}
