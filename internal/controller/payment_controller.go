// FILE: internal/controller/payment_controller.go
package controller

import (
	"fmt"

	"huntstay-be/internal/dto"
	"huntstay-be/internal/pkg/apperror"
	"huntstay-be/internal/pkg/serverutils"
	"huntstay-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IPaymentController interface {
	RegisterRoutes(r fiber.Router)
}

type paymentController struct {
	service service.IPaymentService
}

func NewPaymentController(service service.IPaymentService) IPaymentController {
	return &paymentController{service: service}
}

func (c *paymentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/payment")
	h.Post("/midtrans/notification", c.Webhook)

	h.Post("/authorize", serverutils.JwtMiddleware, c.Authorize)
	h.Post("/:id/confirm", serverutils.JwtMiddleware, c.Confirm)
	h.Get("/booking/:id", serverutils.JwtMiddleware, c.GetByBooking)
	h.Post("/booking/:id/capture", serverutils.JwtMiddleware, c.Capture)
	h.Post("/booking/:id/cancel", serverutils.JwtMiddleware, c.CancelAuthorization)
	h.Post("/booking/:id/refund", serverutils.JwtMiddleware, c.Refund)
}

func (c *paymentController) Authorize(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateAuthorizationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CreateAuthorization(ctx.Context(), userId, serverutils.RoleFromCtx(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Payment authorization created", res))
}

func (c *paymentController) Confirm(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}
	paymentId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payment id")
	}

	res, err := c.service.ConfirmAuthorization(ctx.Context(), userId, serverutils.RoleFromCtx(ctx), paymentId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Payment status", res))
}

func (c *paymentController) GetByBooking(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}
	bookingId, err := bookingIdFromParams(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetByBooking(ctx.Context(), userId, serverutils.RoleFromCtx(ctx), bookingId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Payment", res))
}

func (c *paymentController) Capture(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}
	bookingId, err := bookingIdFromParams(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Capture(ctx.Context(), userId, serverutils.RoleFromCtx(ctx), bookingId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Payment captured", res))
}

func (c *paymentController) CancelAuthorization(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}
	bookingId, err := bookingIdFromParams(ctx)
	if err != nil {
		return err
	}

	var req dto.BookingCancelRequest
	if err := ctx.BodyParser(&req); err != nil && err != fiber.ErrUnprocessableEntity {
		return fiber.ErrBadRequest
	}

	res, err := c.service.CancelAuthorization(ctx.Context(), userId, serverutils.RoleFromCtx(ctx), bookingId, req.Reason)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Authorization released", res))
}

func (c *paymentController) Refund(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}
	bookingId, err := bookingIdFromParams(ctx)
	if err != nil {
		return err
	}

	var req dto.RefundRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Refund(ctx.Context(), userId, serverutils.RoleFromCtx(ctx), bookingId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Refund processed", res))
}

func (c *paymentController) Webhook(ctx *fiber.Ctx) error {
	var req dto.MidtransWebhookRequest
	if err := ctx.BodyParser(&req); err != nil {
		fmt.Printf("[WEBHOOK ERROR] Body parsing failed: %v\n", err)
		return ctx.SendStatus(fiber.StatusBadRequest)
	}

	if err := c.service.HandleNotification(ctx.Context(), &req); err != nil {
		fmt.Printf("[WEBHOOK ERROR] Handling failed for OrderId=%s: %v\n", req.OrderId, err)
		if appErr := apperror.From(err); appErr != nil && appErr.Kind == apperror.KindForbidden {
			// Bad signature; retrying will not help.
			return ctx.SendStatus(fiber.StatusForbidden)
		}
		// Non-2xx makes the processor retry the notification.
		return ctx.SendStatus(fiber.StatusInternalServerError)
	}
	return ctx.SendStatus(fiber.StatusOK)
}
