package controller

import (
	"github.com/gofiber/fiber/v2"

	"lit-mashup-be/internal/pkg/serverutils"
	"lit-mashup-be/internal/service"
)

type IMashupController interface {
	RegisterRoutes(r fiber.Router, middleware ...fiber.Handler)
	GetAll(ctx *fiber.Ctx) error
}

type mashupController struct {
	generationService service.IGenerationService
}

func NewMashupController(generationService service.IGenerationService) IMashupController {
	return &mashupController{generationService: generationService}
}

func (c *mashupController) RegisterRoutes(r fiber.Router, middleware ...fiber.Handler) {
	h := r.Group("/mashup/v1")
	for _, m := range middleware {
		h.Use(m)
	}
	h.Get("", c.GetAll)
}

func (c *mashupController) GetAll(ctx *fiber.Ctx) error {
	res, err := c.generationService.ListMashups(ctx.Context(), ctx.Query("session_id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get all mashups", res))
}
