// FILE: internal/controller/property_controller.go
package controller

import (
	"huntstay-be/internal/dto"
	"huntstay-be/internal/entity"
	"huntstay-be/internal/pkg/serverutils"
	"huntstay-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IPropertyController interface {
	RegisterRoutes(r fiber.Router)
}

type propertyController struct {
	service service.IPropertyService
}

func NewPropertyController(service service.IPropertyService) IPropertyController {
	return &propertyController{service: service}
}

func (c *propertyController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/properties")

	// Public catalog
	h.Get("/", c.List)
	h.Get("/:id", c.Get)

	// Provider routes
	h.Post("/", serverutils.JwtMiddleware, c.Create)
	h.Get("/mine/list", serverutils.JwtMiddleware, c.ListMine)
	h.Patch("/:id", serverutils.JwtMiddleware, c.Update)
	h.Post("/:id/submit", serverutils.JwtMiddleware, c.Submit)
	h.Post("/:id/list", serverutils.JwtMiddleware, c.SetListed(true))
	h.Post("/:id/unlist", serverutils.JwtMiddleware, c.SetListed(false))

	// Admin review
	h.Post("/:id/approve", serverutils.JwtMiddleware, requireAdmin, c.Approve)
	h.Post("/:id/reject", serverutils.JwtMiddleware, requireAdmin, c.Reject)
}

func requireAdmin(ctx *fiber.Ctx) error {
	if serverutils.RoleFromCtx(ctx) != string(entity.RoleAdmin) {
		return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(403, "admin access required"))
	}
	return ctx.Next()
}

func propertyIdFromParams(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid property id")
	}
	return id, nil
}

func (c *propertyController) List(ctx *fiber.Ctx) error {
	var query dto.PropertyListQuery
	if err := ctx.QueryParser(&query); err != nil {
		return fiber.ErrBadRequest
	}

	res, err := c.service.ListPublic(ctx.Context(), &query)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Properties", res))
}

func (c *propertyController) Get(ctx *fiber.Ctx) error {
	id, err := propertyIdFromParams(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetByID(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Property", res))
}

func (c *propertyController) Create(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}

	var req dto.PropertyCreateRequest
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
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Property created", res))
}

func (c *propertyController) ListMine(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.ListByProvider(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Your properties", res))
}

func (c *propertyController) Update(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}
	id, err := propertyIdFromParams(ctx)
	if err != nil {
		return err
	}

	var req dto.PropertyUpdateRequest
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
	return ctx.JSON(serverutils.SuccessResponse("Property updated", res))
}

func (c *propertyController) Submit(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}
	id, err := propertyIdFromParams(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Submit(ctx.Context(), userId, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Property submitted for review", res))
}

func (c *propertyController) SetListed(listed bool) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		userId, err := serverutils.UserIdFromCtx(ctx)
		if err != nil {
			return err
		}
		id, err := propertyIdFromParams(ctx)
		if err != nil {
			return err
		}

		res, err := c.service.SetListed(ctx.Context(), userId, serverutils.RoleFromCtx(ctx), id, listed)
		if err != nil {
			return err
		}
		return ctx.JSON(serverutils.SuccessResponse("Listing updated", res))
	}
}

func (c *propertyController) Approve(ctx *fiber.Ctx) error {
	id, err := propertyIdFromParams(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Approve(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Property approved", res))
}

func (c *propertyController) Reject(ctx *fiber.Ctx) error {
	id, err := propertyIdFromParams(ctx)
	if err != nil {
		return err
	}

	var req dto.PropertyRejectRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Reject(ctx.Context(), id, req.Reason)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Property rejected", res))
}
