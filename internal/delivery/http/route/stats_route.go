package route

import (
	"github.com/fluentup/fluentup-be/internal/delivery/http/handler"
	"github.com/fluentup/fluentup-be/internal/delivery/http/middleware"
	"github.com/gofiber/fiber/v2"
)

func SetupStatsRoute(api *fiber.App, handler handler.StatsHandler, m *middleware.Middleware) {
	router := api.Group("/stats")
	{
		router.Get("/:user_id", handler.GetStats)
	}
}
