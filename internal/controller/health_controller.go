package controller

import (
	"portfolio-chat-be/internal/dto"

	"github.com/gofiber/fiber/v2"
)

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Root(ctx *fiber.Ctx) error
}

type healthController struct{}

func NewHealthController() IHealthController {
	return &healthController{}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	r.Get("/", c.Root)
}

func (c *healthController) Root(ctx *fiber.Ctx) error {
	return ctx.JSON(dto.HealthResponse{Message: "Portfolio AI Backend is running"})
}
