package handler

import (
	"github.com/fluentup/fluentup-be/internal/delivery/http/domain"
	"github.com/fluentup/fluentup-be/internal/delivery/http/usecase"
	"github.com/fluentup/fluentup-be/internal/pkg/response"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type (
	StatsHandler interface {
		GetStats(ctx *fiber.Ctx) error
	}

	statsHandler struct {
		logger  *logrus.Logger
		usecase usecase.StatsEngine
	}
)

func NewStatsHandler(logger *logrus.Logger, usecase usecase.StatsEngine) StatsHandler {
	return &statsHandler{
		logger:  logger,
		usecase: usecase,
	}
}

// GET /stats/:user_id
func (h *statsHandler) GetStats(ctx *fiber.Ctx) error {
	userID := ctx.Params("user_id")
	if userID == "" {
		return response.NewFailed(domain.STATS_GET_FAILED, fiber.NewError(fiber.StatusBadRequest, "user_id is required"), h.logger).Send(ctx)
	}

	stats, err := h.usecase.GetStats(ctx.UserContext(), userID)
	if err != nil {
		return response.NewFailed(domain.STATS_GET_FAILED, err, h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.STATS_GET_SUCCESS, stats, nil).Send(ctx)
}
