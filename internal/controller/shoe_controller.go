package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"wide-toebox-be/internal/dto"
	"wide-toebox-be/internal/pkg/serverutils"
	"wide-toebox-be/internal/service"
)

type IShoeController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
}

type shoeController struct {
	service  service.IShoeService
	validate *validator.Validate
}

func NewShoeController(service service.IShoeService) IShoeController {
	return &shoeController{
		service:  service,
		validate: validator.New(),
	}
}

func (c *shoeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/shoes")
	h.Get("/", c.GetAll)
	h.Post("/search", c.Search)
	h.Get("/:id", c.Show)
}

func (c *shoeController) GetAll(ctx *fiber.Ctx) error {
	res, err := c.service.GetAll(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse(res))
}

func (c *shoeController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "invalid shoe id"))
	}

	res, err := c.service.Show(ctx.Context(), id)
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(fiber.StatusNotFound, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse(res))
}

func (c *shoeController) Search(ctx *fiber.Ctx) error {
	req := new(dto.SearchShoesRequest)
	if err := ctx.BodyParser(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "invalid request body"))
	}
	if err := c.validate.Struct(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, err.Error()))
	}

	res, err := c.service.Search(ctx.Context(), req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse(res))
}
