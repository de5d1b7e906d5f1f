package handler

import (
	"github.com/fluentup/fluentup-be/internal/delivery/http/domain"
	"github.com/fluentup/fluentup-be/internal/delivery/http/entity"
	"github.com/fluentup/fluentup-be/internal/delivery/http/usecase"
	"github.com/fluentup/fluentup-be/internal/pkg/response"
	"github.com/fluentup/fluentup-be/internal/pkg/validate"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type (
	GradingHandler interface {
		GradeAnswer(ctx *fiber.Ctx) error
		GradeSummary(ctx *fiber.Ctx) error
	}

	gradingHandler struct {
		validator *validate.Validator
		logger    *logrus.Logger
		usecase   usecase.GradingEngine
	}
)

func NewGradingHandler(validator *validate.Validator, logger *logrus.Logger, usecase usecase.GradingEngine) GradingHandler {
	return &gradingHandler{
		validator: validator,
		logger:    logger,
		usecase:   usecase,
	}
}

// POST /grading/answers
func (h *gradingHandler) GradeAnswer(ctx *fiber.Ctx) error {
	var req entity.GradeAnswerRequest

	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.GRADING_GRADE_ANSWER_FAILED, err, h.logger).Send(ctx)
	}

	result, err := h.usecase.GradeAnswer(ctx.UserContext(), req)
	if err != nil {
		return response.NewFailed(domain.GRADING_GRADE_ANSWER_FAILED, err, h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.GRADING_GRADE_ANSWER_SUCCESS, result, nil).Send(ctx)
}

// POST /grading/summaries
func (h *gradingHandler) GradeSummary(ctx *fiber.Ctx) error {
	var req entity.GradeSummaryRequest

	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.GRADING_GRADE_SUMMARY_FAILED, err, h.logger).Send(ctx)
	}

	result, err := h.usecase.GradeSummary(ctx.UserContext(), req)
	if err != nil {
		return response.NewFailed(domain.GRADING_GRADE_SUMMARY_FAILED, err, h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.GRADING_GRADE_SUMMARY_SUCCESS, result, nil).Send(ctx)
}
