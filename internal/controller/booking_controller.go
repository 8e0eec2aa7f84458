// FILE: internal/controller/booking_controller.go
package controller

import (
	"huntstay-be/internal/dto"
	"huntstay-be/internal/pkg/serverutils"
	"huntstay-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IBookingController interface {
	RegisterRoutes(r fiber.Router)
}

type bookingController struct {
	service service.IBookingService
}

func NewBookingController(service service.IBookingService) IBookingController {
	return &bookingController{service: service}
}

func (c *bookingController) RegisterRoutes(r fiber.Router) {
	// Availability rides on the property resource.
	r.Get("/properties/:id/availability", c.CheckAvailability)
	r.Get("/properties/:id/bookings", serverutils.JwtMiddleware, c.ListForProperty)
	r.Get("/properties/:id/statistics", serverutils.JwtMiddleware, c.Statistics)

	h := r.Group("/bookings", serverutils.JwtMiddleware)
	h.Post("/", c.Create)
	h.Get("/", c.ListMine)
	h.Get("/:id", c.Get)
	h.Patch("/:id", c.Update)
	h.Patch("/:id/status", c.UpdateStatus)
	h.Post("/:id/cancel", c.Cancel)
	h.Delete("/:id", c.Delete)
}

func bookingIdFromParams(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid booking id")
	}
	return id, nil
}

func (c *bookingController) CheckAvailability(ctx *fiber.Ctx) error {
	propertyId, err := propertyIdFromParams(ctx)
	if err != nil {
		return err
	}

	var query dto.AvailabilityQuery
	if err := ctx.QueryParser(&query); err != nil {
		return fiber.ErrBadRequest
	}
	if err := serverutils.ValidateRequest(query); err != nil {
		return err
	}

	res, err := c.service.IsAvailable(ctx.Context(), propertyId, &query)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Availability", res))
}

func (c *bookingController) Create(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}

	var req dto.BookingCreateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Booking created", res))
}

func (c *bookingController) ListMine(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}

	var query dto.BookingListQuery
	if err := ctx.QueryParser(&query); err != nil {
		return fiber.ErrBadRequest
	}

	res, err := c.service.ListForGuest(ctx.Context(), userId, &query)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Your bookings", res))
}

func (c *bookingController) ListForProperty(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}
	propertyId, err := propertyIdFromParams(ctx)
	if err != nil {
		return err
	}

	var query dto.BookingListQuery
	if err := ctx.QueryParser(&query); err != nil {
		return fiber.ErrBadRequest
	}

	res, err := c.service.ListForProperty(ctx.Context(), userId, serverutils.RoleFromCtx(ctx), propertyId, &query)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Property bookings", res))
}

func (c *bookingController) Get(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}
	id, err := bookingIdFromParams(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetByID(ctx.Context(), userId, serverutils.RoleFromCtx(ctx), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Booking", res))
}

func (c *bookingController) Update(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}
	id, err := bookingIdFromParams(ctx)
	if err != nil {
		return err
	}

	var req dto.BookingUpdateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Update(ctx.Context(), userId, serverutils.RoleFromCtx(ctx), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Booking updated", res))
}

func (c *bookingController) UpdateStatus(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}
	id, err := bookingIdFromParams(ctx)
	if err != nil {
		return err
	}

	var req dto.BookingStatusUpdateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdateStatus(ctx.Context(), userId, serverutils.RoleFromCtx(ctx), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Booking status updated", res))
}

func (c *bookingController) Cancel(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}
	id, err := bookingIdFromParams(ctx)
	if err != nil {
		return err
	}

	var req dto.BookingCancelRequest
	if err := ctx.BodyParser(&req); err != nil && err != fiber.ErrUnprocessableEntity {
		return fiber.ErrBadRequest
	}

	res, err := c.service.Cancel(ctx.Context(), userId, serverutils.RoleFromCtx(ctx), id, req.Reason)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Booking cancelled", res))
}

func (c *bookingController) Delete(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}
	id, err := bookingIdFromParams(ctx)
	if err != nil {
		return err
	}

	if err := c.service.Delete(ctx.Context(), userId, serverutils.RoleFromCtx(ctx), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Booking deleted", nil))
}

func (c *bookingController) Statistics(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}
	propertyId, err := propertyIdFromParams(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Statistics(ctx.Context(), userId, serverutils.RoleFromCtx(ctx), propertyId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Booking statistics", res))
}
