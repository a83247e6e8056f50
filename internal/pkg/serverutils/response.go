package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"wide-toebox-be/internal/pkg/apperr"
)

type BaseResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func SuccessResponse(data interface{}) *BaseResponse {
	return &BaseResponse{
		Code:    fiber.StatusOK,
		Message: "success",
		Data:    data,
	}
}

func ErrorResponse(code int, message string) *BaseResponse {
	return &BaseResponse{
		Code:    code,
		Message: message,
	}
}

// ErrorHandlerMiddleware maps domain errors that escape controllers to
// HTTP statuses.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var cfgErr *apperr.ConfigurationError
		var srcErr *apperr.SourceUnavailableError

		switch {
		case errors.As(err, &cfgErr):
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(fiber.StatusBadRequest, cfgErr.Error()))
		case errors.Is(err, apperr.ErrStoreUnavailable):
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse(fiber.StatusServiceUnavailable, err.Error()))
		case errors.As(err, &srcErr):
			return ctx.Status(fiber.StatusBadGateway).JSON(ErrorResponse(fiber.StatusBadGateway, srcErr.Error()))
		default:
			return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, err.Error()))
		}
	}
}
