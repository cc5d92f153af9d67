package controller

import (
	"github.com/gofiber/fiber/v2"

	"lit-mashup-be/internal/dto"
	"lit-mashup-be/internal/pkg/serverutils"
	"lit-mashup-be/internal/service"
	"lit-mashup-be/pkg/conversation"
	"lit-mashup-be/pkg/store"
)

type IConversationController interface {
	RegisterRoutes(r fiber.Router, middleware ...fiber.Handler)
	Turn(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Generate(ctx *fiber.Ctx) error
}

type conversationController struct {
	conversationService service.IConversationService
	generationService   service.IGenerationService
}

func NewConversationController(
	conversationService service.IConversationService,
	generationService service.IGenerationService,
) IConversationController {
	return &conversationController{
		conversationService: conversationService,
		generationService:   generationService,
	}
}

func (c *conversationController) RegisterRoutes(r fiber.Router, middleware ...fiber.Handler) {
	h := r.Group("/conversation/v1")
	for _, m := range middleware {
		h.Use(m)
	}
	h.Post("/turn", c.Turn)
	h.Get("/:id", c.Show)
	h.Post("/:id/generate", c.Generate)
}

func (c *conversationController) Turn(ctx *fiber.Ctx) error {
	var req dto.ProcessTurnRequest
	if err := ctx.BodyParser(&req); err != nil {
		return &dto.ValidationError{Field: "body", Reason: "invalid JSON"}
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.conversationService.ProcessTurn(ctx.Context(), &req)
	if err != nil {
		return err
	}

	// A confirming message on a ready session starts generation in the
	// same turn and moves the session to COMPLETED.
	if res.ReadyForGeneration && conversation.IsGenerationTrigger(req.Message) {
		mashup, err := c.generationService.Generate(ctx.Context(), res.SessionId)
		if err != nil {
			return err
		}
		res.Mashup = mashup
		res.Phase = store.PhaseCompleted
		res.ReadyForGeneration = false
	}

	return ctx.JSON(serverutils.SuccessResponse("Success process turn", res))
}

func (c *conversationController) Show(ctx *fiber.Ctx) error {
	sessionId := ctx.Params("id")

	res, err := c.conversationService.GetSession(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show session", res))
}

func (c *conversationController) Generate(ctx *fiber.Ctx) error {
	sessionId := ctx.Params("id")

	res, err := c.generationService.Generate(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate mashup", res))
}
