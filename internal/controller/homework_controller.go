package controller

import (
	"io"

	"ai-homework-helper-be/internal/dto"
	"ai-homework-helper-be/internal/pkg/serverutils"
	"ai-homework-helper-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IHomeworkController interface {
	RegisterRoutes(r fiber.Router)
	CreateSession(ctx *fiber.Ctx) error
	GetAllSessions(ctx *fiber.Ctx) error
	GetTranscript(ctx *fiber.Ctx) error
	ChooseInputMethod(ctx *fiber.Ctx) error
	SubmitInput(ctx *fiber.Ctx) error
	AskTutor(ctx *fiber.Ctx) error
	RenameSession(ctx *fiber.Ctx) error
	EndSession(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
	StreamSnapshot(ctx *fiber.Ctx) error
	ExtractText(ctx *fiber.Ctx) error
	DetectSubject(ctx *fiber.Ctx) error
}

type homeworkController struct {
	homeworkService service.IHomeworkService
}

func NewHomeworkController(homeworkService service.IHomeworkService) IHomeworkController {
	return &homeworkController{
		homeworkService: homeworkService,
	}
}

func (c *homeworkController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/homework/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("sessions", c.CreateSession)
	h.Get("sessions", c.GetAllSessions)
	h.Get("sessions/:id", c.GetTranscript)
	h.Put("sessions/:id/input-method", c.ChooseInputMethod)
	h.Post("sessions/:id/input", c.SubmitInput)
	h.Post("sessions/:id/ask", c.AskTutor)
	h.Put("sessions/:id/rename", c.RenameSession)
	h.Post("sessions/:id/end", c.EndSession)
	h.Delete("sessions/:id", c.DeleteSession)
	h.Get("sessions/:id/stream", c.StreamSnapshot)
	h.Post("extract-text", c.ExtractText)
	h.Post("detect-subject", c.DetectSubject)
}

func (c *homeworkController) CreateSession(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.CreateSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.homeworkService.CreateSession(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create session", res))
}

func (c *homeworkController) GetAllSessions(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.homeworkService.GetAllSessions(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list sessions", res))
}

func (c *homeworkController) GetTranscript(ctx *fiber.Ctx) error {
	userId, sessionId, err := identifiers(ctx)
	if err != nil {
		return err
	}

	res, err := c.homeworkService.GetTranscript(ctx.Context(), userId, sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show transcript", res))
}

func (c *homeworkController) ChooseInputMethod(ctx *fiber.Ctx) error {
	userId, sessionId, err := identifiers(ctx)
	if err != nil {
		return err
	}

	var req dto.ChooseInputMethodRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.homeworkService.ChooseInputMethod(ctx.Context(), userId, sessionId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success choose input method", res))
}

func (c *homeworkController) SubmitInput(ctx *fiber.Ctx) error {
	userId, sessionId, err := identifiers(ctx)
	if err != nil {
		return err
	}

	var req dto.SubmitInputRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.homeworkService.SubmitInput(ctx.Context(), userId, sessionId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success submit input", res))
}

func (c *homeworkController) AskTutor(ctx *fiber.Ctx) error {
	userId, sessionId, err := identifiers(ctx)
	if err != nil {
		return err
	}

	var req dto.AskTutorRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.homeworkService.AskTutor(ctx.Context(), userId, sessionId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success ask tutor", res))
}

func (c *homeworkController) RenameSession(ctx *fiber.Ctx) error {
	userId, sessionId, err := identifiers(ctx)
	if err != nil {
		return err
	}

	var req dto.RenameSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.homeworkService.RenameSession(ctx.Context(), userId, sessionId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success rename session", res))
}

func (c *homeworkController) EndSession(ctx *fiber.Ctx) error {
	userId, sessionId, err := identifiers(ctx)
	if err != nil {
		return err
	}

	if err := c.homeworkService.EndSession(ctx.Context(), userId, sessionId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success end session", nil))
}

func (c *homeworkController) DeleteSession(ctx *fiber.Ctx) error {
	userId, sessionId, err := identifiers(ctx)
	if err != nil {
		return err
	}

	if err := c.homeworkService.DeleteSession(ctx.Context(), userId, sessionId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete session", nil))
}

func (c *homeworkController) StreamSnapshot(ctx *fiber.Ctx) error {
	_, sessionId, err := identifiers(ctx)
	if err != nil {
		return err
	}

	res := c.homeworkService.StreamSnapshot(sessionId)
	return ctx.JSON(serverutils.SuccessResponse("Success show stream state", res))
}

func (c *homeworkController) ExtractText(ctx *fiber.Ctx) error {
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

	res, err := c.homeworkService.ExtractText(ctx.Context(), image)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success extract text", res))
}

func (c *homeworkController) DetectSubject(ctx *fiber.Ctx) error {
	var req dto.DetectSubjectRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.homeworkService.DetectSubject(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success detect subject", res))
}

// identifiers pulls the authenticated user and the :id path parameter.
func identifiers(ctx *fiber.Ctx) (uuid.UUID, uuid.UUID, error) {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid session id")
	}
	return userId, sessionId, nil
}
