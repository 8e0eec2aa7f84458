// FILE: internal/pkg/serverutils/error_middleware.go
package serverutils

import (
	"log"

	"huntstay-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts typed errors bubbling out of handlers into
// stable JSON error bodies. Unexpected errors surface a generic
// INTERNAL_ERROR; their detail is logged server-side only.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		if appErr := apperror.From(err); appErr != nil {
			status := httpStatus(appErr.Kind)
			if appErr.Kind == apperror.KindInternal || appErr.Kind == apperror.KindExternal {
				log.Printf("[ERROR] %s %s: %v", ctx.Method(), ctx.Path(), appErr)
			}
			return ctx.Status(status).JSON(ErrorResponseWithCode(status, appErr.Code, appErr.Message))
		}

		if fiberErr, ok := err.(*fiber.Error); ok {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		log.Printf("[ERROR] %s %s: unhandled: %v", ctx.Method(), ctx.Path(), err)
		return ctx.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponseWithCode(fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error"))
	}
}

func httpStatus(kind apperror.Kind) int {
	switch kind {
	case apperror.KindValidation:
		return fiber.StatusBadRequest
	case apperror.KindConflict:
		return fiber.StatusConflict
	case apperror.KindForbidden:
		return fiber.StatusForbidden
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	case apperror.KindExternal:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
