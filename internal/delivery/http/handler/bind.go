package handler

import (
	"github.com/gofiber/fiber/v3"

	"resume-match/internal/delivery/http/dto"
	"resume-match/internal/delivery/http/middleware"
)

func bindBody(c fiber.Ctx, out any) error {
	if err := c.Bind().Body(out); err != nil {
		if msg, ok := dto.ValidationMessage(err); ok {
			return middleware.NewAppError(fiber.StatusBadRequest, msg, err)
		}
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", err)
	}
	return nil
}
