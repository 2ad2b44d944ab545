package controller

import (
	"ai-homework-helper-be/internal/pkg/serverutils"
	"ai-homework-helper-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IProgressController interface {
	RegisterRoutes(r fiber.Router)
	GetSummary(ctx *fiber.Ctx) error
}

type progressController struct {
	progressService service.IProgressService
}

func NewProgressController(progressService service.IProgressService) IProgressController {
	return &progressController{
		progressService: progressService,
	}
}

func (c *progressController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/progress/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.GetSummary)
}

func (c *progressController) GetSummary(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.progressService.GetSummary(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show progress", res))
}
