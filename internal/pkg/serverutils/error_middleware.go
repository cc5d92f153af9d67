package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"lit-mashup-be/internal/dto"
)

// ErrorHandlerMiddleware maps domain errors to HTTP statuses so controllers
// can just return them.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var validationErr *dto.ValidationError
		if errors.As(err, &validationErr) {
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorBody{
				Code:      fiber.StatusBadRequest,
				Message:   validationErr.Error(),
				ErrorType: "validation_error",
				Data:      validationErr,
			})
		}

		var notFoundErr *dto.SessionNotFoundError
		if errors.As(err, &notFoundErr) {
			return ctx.Status(fiber.StatusNotFound).JSON(ErrorBody{
				Code:      fiber.StatusNotFound,
				Message:   notFoundErr.Error(),
				ErrorType: "session_not_found",
			})
		}

		var notReadyErr *dto.SessionNotReadyError
		if errors.As(err, &notReadyErr) {
			return ctx.Status(fiber.StatusConflict).JSON(ErrorBody{
				Code:      fiber.StatusConflict,
				Message:   notReadyErr.Error(),
				ErrorType: "session_not_ready",
				Data:      notReadyErr,
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorBody{
				Code:    fiberErr.Code,
				Message: fiberErr.Message,
			})
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorBody{
			Code:    fiber.StatusInternalServerError,
			Message: "internal server error",
		})
	}
}
