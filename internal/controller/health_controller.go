package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lit-mashup-be/internal/pkg/serverutils"
)

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Check(ctx *fiber.Ctx) error
}

type healthController struct {
	db *gorm.DB
}

func NewHealthController(db *gorm.DB) IHealthController {
	return &healthController{db: db}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/health/v1")
	h.Get("", c.Check)
}

func (c *healthController) Check(ctx *fiber.Ctx) error {
	status := fiber.Map{
		"service":  "ok",
		"database": "disabled",
	}

	if c.db != nil {
		status["database"] = "ok"
		sqlDB, err := c.db.DB()
		if err != nil || sqlDB.PingContext(ctx.Context()) != nil {
			status["database"] = "unreachable"
		}
	}

	return ctx.JSON(serverutils.SuccessResponse("Health check", status))
}
