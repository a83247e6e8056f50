package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"wide-toebox-be/internal/dto"
	"wide-toebox-be/internal/pkg/serverutils"
	"wide-toebox-be/internal/service"
)

type IExpertController interface {
	RegisterRoutes(r fiber.Router)
	Ask(ctx *fiber.Ctx) error
}

type expertController struct {
	service  service.IExpertService
	validate *validator.Validate
}

func NewExpertController(service service.IExpertService) IExpertController {
	return &expertController{
		service:  service,
		validate: validator.New(),
	}
}

func (c *expertController) RegisterRoutes(r fiber.Router) {
	r.Post("/ask-expert", c.Ask)
}

func (c *expertController) Ask(ctx *fiber.Ctx) error {
	req := new(dto.AskExpertRequest)
	if err := ctx.BodyParser(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "invalid request body"))
	}
	if err := c.validate.Struct(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, err.Error()))
	}

	res, err := c.service.Ask(ctx.Context(), req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse(res))
}
