package route

import (
	"github.com/fluentup/fluentup-be/internal/delivery/http/handler"
	"github.com/fluentup/fluentup-be/internal/delivery/http/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type RouteConfig struct {
	Api                 *fiber.App
	Middleware          *middleware.Middleware
	ConversationHandler handler.ConversationHandler
	GradingHandler      handler.GradingHandler
	StatsHandler        handler.StatsHandler
}

func Setup(c *RouteConfig) {
	c.Api.Use(recover.New())
	c.Api.Use(logger.New(logger.Config{
		Format: "[${ip}]:${port} ${status} - ${method} ${path}\n",
	}))
	c.Api.Use(c.Middleware.CorsMiddleware())

	SetupConversationRoute(c.Api, c.ConversationHandler, c.Middleware)
	SetupGradingRoute(c.Api, c.GradingHandler, c.Middleware)
	SetupStatsRoute(c.Api, c.StatsHandler, c.Middleware)
}
