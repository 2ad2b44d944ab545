package serverutils

import (
	"errors"

	"ai-homework-helper-be/internal/repository/memory"
	"ai-homework-helper-be/pkg/llm"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ErrorHandlerMiddleware converts errors returned by handlers into the
// standard response envelope. Known domain errors get their own status so
// the frontend can branch on them; everything else is a 500 with the detail
// kept out of the body.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code := fiber.StatusInternalServerError
		message := "Internal server error"

		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &fiberErr):
			code = fiberErr.Code
			message = fiberErr.Message
		case errors.Is(err, gorm.ErrRecordNotFound):
			code = fiber.StatusNotFound
			message = "Resource not found"
		case errors.Is(err, memory.ErrGuestSessionExists):
			code = fiber.StatusConflict
			message = "Guest accounts are limited to one session"
		case errors.Is(err, llm.ErrGeneration):
			code = fiber.StatusBadGateway
			message = "The tutor is unavailable right now, please try again"
		}

		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}
