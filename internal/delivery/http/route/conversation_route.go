package route

import (
	"github.com/fluentup/fluentup-be/internal/delivery/http/handler"
	"github.com/fluentup/fluentup-be/internal/delivery/http/middleware"
	"github.com/gofiber/fiber/v2"
)

func SetupConversationRoute(api *fiber.App, handler handler.ConversationHandler, m *middleware.Middleware) {
	router := api.Group("/scenarios")
	{
		router.Get("/", handler.ListScenarios)
		router.Post("/sessions", handler.StartSession)
		router.Post("/sessions/:session_id/choice", handler.ApplyChoice)
		router.Post("/sessions/:session_id/finalize", handler.Finalize)
		router.Post("/results", handler.SaveResult)
	}
}
