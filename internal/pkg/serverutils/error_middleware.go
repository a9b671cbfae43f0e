package serverutils

import (
	"errors"

	"portfolio-chat-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

const logModule = "HTTP"

// GenericErrorMessage is all a client learns about an unexpected failure.
const GenericErrorMessage = "something went wrong"

// ErrorHandlerMiddleware renders errors returned by handlers as a BaseResponse envelope.
// *fiber.Error keeps its code and message; anything else becomes a generic 500.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		log.Error(logModule, "Request failed", map[string]interface{}{
			"method": ctx.Method(),
			"path":   ctx.Path(),
			"error":  err.Error(),
		})
		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, GenericErrorMessage))
	}
}
