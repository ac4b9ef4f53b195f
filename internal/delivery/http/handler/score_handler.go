package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"resume-match/internal/delivery/http/dto"
	"resume-match/internal/delivery/http/middleware"
	"resume-match/internal/domain/usage"
	"resume-match/internal/pkg/response"
	"resume-match/internal/usecase"
)

const HeaderQuotaRemaining = "X-Quota-Remaining"

type ScoreHandler struct {
	uc usecase.ScoringUsecase
}

func NewScoreHandler(uc usecase.ScoringUsecase) *ScoreHandler {
	return &ScoreHandler{uc: uc}
}

func (h *ScoreHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/score", h.Score)
	r.Post("/score-text", h.ScoreText)
}

func (h *ScoreHandler) Score(c fiber.Ctx) error {
	var req dto.ScoreRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	out, err := h.uc.ScoreForUser(c.Context(), toScoreInput(req))
	if errors.Is(err, usage.ErrQuotaExceeded) {
		c.Set(HeaderQuotaRemaining, "0")
	}
	if err != nil {
		return mapScoringUsecaseError(err)
	}

	c.Set(HeaderQuotaRemaining, strconv.Itoa(max(out.CallLimit-out.CallsMade, 0)))
	return response.JSON(c, fiber.StatusOK, dto.NewScoreResponse(out.Report))
}

func (h *ScoreHandler) ScoreText(c fiber.Ctx) error {
	var req dto.ScoreRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	rep, err := h.uc.ScoreText(c.Context(), toScoreInput(req))
	if err != nil {
		return mapScoringUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusOK, dto.NewScoreResponse(rep))
}

func toScoreInput(req dto.ScoreRequest) usecase.ScoreInput {
	return usecase.ScoreInput{
		Resume:            req.Resume,
		JobDescription:    req.JobDescription,
		JobDescriptionURL: req.JobDescriptionURL,
		Email:             req.Email,
	}
}

func mapScoringUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrEmailRequired):
		return middleware.NewAppError(fiber.StatusBadRequest, "Email is required", err)
	case errors.Is(err, usage.ErrQuotaExceeded):
		return middleware.NewAppError(fiber.StatusTooManyRequests, "Resume limit reached. Please upgrade.", err)
	case errors.Is(err, usecase.ErrJDFetchFailed):
		return middleware.NewAppError(fiber.StatusBadGateway, "Could not fetch job description", err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}
}
