package handler

import (
	"strconv"

	"github.com/fluentup/fluentup-be/internal/delivery/http/domain"
	"github.com/fluentup/fluentup-be/internal/delivery/http/entity"
	"github.com/fluentup/fluentup-be/internal/delivery/http/usecase"
	"github.com/fluentup/fluentup-be/internal/pkg/response"
	"github.com/fluentup/fluentup-be/internal/pkg/validate"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type (
	ConversationHandler interface {
		ListScenarios(ctx *fiber.Ctx) error
		StartSession(ctx *fiber.Ctx) error
		ApplyChoice(ctx *fiber.Ctx) error
		Finalize(ctx *fiber.Ctx) error
		SaveResult(ctx *fiber.Ctx) error
	}

	conversationHandler struct {
		validator *validate.Validator
		logger    *logrus.Logger
		usecase   usecase.ConversationEngine
	}
)

func NewConversationHandler(validator *validate.Validator, logger *logrus.Logger, usecase usecase.ConversationEngine) ConversationHandler {
	return &conversationHandler{
		validator: validator,
		logger:    logger,
		usecase:   usecase,
	}
}

// GET /scenarios
func (h *conversationHandler) ListScenarios(ctx *fiber.Ctx) error {
	scenarios, err := h.usecase.ListScenarios(ctx.UserContext())
	if err != nil {
		return response.NewFailed(domain.SCENARIO_LIST_FAILED, err, h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.SCENARIO_LIST_SUCCESS, scenarios, nil).Send(ctx)
}

// POST /scenarios/sessions
func (h *conversationHandler) StartSession(ctx *fiber.Ctx) error {
	var req entity.StartSessionRequest

	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.SCENARIO_START_SESSION_FAILED, err, h.logger).Send(ctx)
	}

	session, err := h.usecase.StartSession(ctx.UserContext(), req.UserID, req.ScenarioID)
	if err != nil {
		return response.NewFailed(domain.SCENARIO_START_SESSION_FAILED, err, h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.SCENARIO_START_SESSION_SUCCESS, session, nil).Send(ctx)
}

// POST /scenarios/sessions/:session_id/choice
func (h *conversationHandler) ApplyChoice(ctx *fiber.Ctx) error {
	sessionID, err := parseIDParam(ctx, "session_id")
	if err != nil {
		return response.NewFailed(domain.SCENARIO_APPLY_CHOICE_FAILED, err, h.logger).Send(ctx)
	}

	var req entity.ApplyChoiceRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.SCENARIO_APPLY_CHOICE_FAILED, err, h.logger).Send(ctx)
	}

	session, err := h.usecase.ApplyChoice(ctx.UserContext(), sessionID, req.OptionID)
	if err != nil {
		return response.NewFailed(domain.SCENARIO_APPLY_CHOICE_FAILED, err, h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.SCENARIO_APPLY_CHOICE_SUCCESS, session, nil).Send(ctx)
}

// POST /scenarios/sessions/:session_id/finalize
func (h *conversationHandler) Finalize(ctx *fiber.Ctx) error {
	sessionID, err := parseIDParam(ctx, "session_id")
	if err != nil {
		return response.NewFailed(domain.SCENARIO_FINALIZE_FAILED, err, h.logger).Send(ctx)
	}

	var req entity.FinalizeRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.SCENARIO_FINALIZE_FAILED, err, h.logger).Send(ctx)
	}

	result, err := h.usecase.Finalize(ctx.UserContext(), sessionID, req.FinalOutcome)
	if err != nil {
		return response.NewFailed(domain.SCENARIO_FINALIZE_FAILED, err, h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.SCENARIO_FINALIZE_SUCCESS, result, nil).Send(ctx)
}

// POST /scenarios/results
func (h *conversationHandler) SaveResult(ctx *fiber.Ctx) error {
	var req entity.SaveResultRequest

	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.SCENARIO_SAVE_RESULT_FAILED, err, h.logger).Send(ctx)
	}

	result, err := h.usecase.SaveResult(ctx.UserContext(), req)
	if err != nil {
		return response.NewFailed(domain.SCENARIO_SAVE_RESULT_FAILED, err, h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.SCENARIO_SAVE_RESULT_SUCCESS, result, nil).Send(ctx)
}

func parseIDParam(ctx *fiber.Ctx, name string) (uint, error) {
	raw := ctx.Params(name)
	if raw == "" {
		return 0, fiber.NewError(fiber.StatusBadRequest, name+" is required")
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, name+" must be a positive integer")
	}
	return uint(id), nil
}
