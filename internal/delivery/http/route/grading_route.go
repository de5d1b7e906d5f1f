package route

import (
	"github.com/fluentup/fluentup-be/internal/delivery/http/handler"
	"github.com/fluentup/fluentup-be/internal/delivery/http/middleware"
	"github.com/gofiber/fiber/v2"
)

func SetupGradingRoute(api *fiber.App, handler handler.GradingHandler, m *middleware.Middleware) {
	router := api.Group("/grading")
	{
		router.Post("/answers", handler.GradeAnswer)
		router.Post("/summaries", handler.GradeSummary)
	}
}
