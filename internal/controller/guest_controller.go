package controller

import (
	"io"

	"ai-homework-helper-be/internal/dto"
	"ai-homework-helper-be/internal/pkg/serverutils"
	"ai-homework-helper-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IGuestController interface {
	RegisterRoutes(r fiber.Router)
	CreateSession(ctx *fiber.Ctx) error
	GetTranscript(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
	ChooseInputMethod(ctx *fiber.Ctx) error
	SubmitInput(ctx *fiber.Ctx) error
	AskTutor(ctx *fiber.Ctx) error
	ExtractText(ctx *fiber.Ctx) error
	GetProgress(ctx *fiber.Ctx) error
}

type guestController struct {
	guestService service.IGuestService
}

func NewGuestController(guestService service.IGuestService) IGuestController {
	return &guestController{
		guestService: guestService,
	}
}

func (c *guestController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/guest/v1")
	h.Use(serverutils.GuestMiddleware)
	h.Post("session", c.CreateSession)
	h.Get("session", c.GetTranscript)
	h.Delete("session", c.DeleteSession)
	h.Put("session/input-method", c.ChooseInputMethod)
	h.Post("session/input", c.SubmitInput)
	h.Post("session/ask", c.AskTutor)
	h.Post("extract-text", c.ExtractText)
	h.Get("progress", c.GetProgress)
}

func (c *guestController) CreateSession(ctx *fiber.Ctx) error {
	guestID := ctx.Locals("guest_id").(string)

	var req dto.CreateSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.guestService.CreateSession(ctx.Context(), guestID, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create session", res))
}

func (c *guestController) GetTranscript(ctx *fiber.Ctx) error {
	guestID := ctx.Locals("guest_id").(string)

	res, err := c.guestService.GetTranscript(ctx.Context(), guestID)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show transcript", res))
}

func (c *guestController) DeleteSession(ctx *fiber.Ctx) error {
	guestID := ctx.Locals("guest_id").(string)

	if err := c.guestService.DeleteSession(ctx.Context(), guestID); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete session", nil))
}

func (c *guestController) ChooseInputMethod(ctx *fiber.Ctx) error {
	guestID := ctx.Locals("guest_id").(string)

	var req dto.ChooseInputMethodRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.guestService.ChooseInputMethod(ctx.Context(), guestID, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success choose input method", res))
}

func (c *guestController) SubmitInput(ctx *fiber.Ctx) error {
	guestID := ctx.Locals("guest_id").(string)

	var req dto.SubmitInputRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.guestService.SubmitInput(ctx.Context(), guestID, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success submit input", res))
}

func (c *guestController) AskTutor(ctx *fiber.Ctx) error {
	guestID := ctx.Locals("guest_id").(string)

	var req dto.AskTutorRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.guestService.AskTutor(ctx.Context(), guestID, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success ask tutor", res))
}

func (c *guestController) ExtractText(ctx *fiber.Ctx) error {
	file, err := ctx.FormFile("image")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Missing image upload")
	}

	f, err := file.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	image, err := io.ReadAll(f)
	if err != nil {
		return err
	}

	res, err := c.guestService.ExtractText(ctx.Context(), image)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success extract text", res))
}

func (c *guestController) GetProgress(ctx *fiber.Ctx) error {
	guestID := ctx.Locals("guest_id").(string)

	res, err := c.guestService.GetProgress(ctx.Context(), guestID)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show progress", res))
}
