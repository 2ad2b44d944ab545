package serverutils

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GuestMiddleware identifies anonymous users by the X-Guest-ID header. The
// frontend generates the id once and keeps sending it; we only require that
// it is a well-formed UUID so guests cannot claim arbitrary keys.
func GuestMiddleware(ctx *fiber.Ctx) error {
	guestID := ctx.Get("X-Guest-ID")
	if guestID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Missing X-Guest-ID header"})
	}
	if _, err := uuid.Parse(guestID); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid X-Guest-ID header"})
	}

	ctx.Locals("guest_id", guestID)
	return ctx.Next()
}
