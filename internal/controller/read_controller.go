package controller

import (
	"re-ad-be/internal/dto"
	"re-ad-be/internal/pkg/serverutils"
	"re-ad-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IReadController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	SetCurrent(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Hide(ctx *fiber.Ctx) error
}

type readController struct {
	annotationService service.IAnnotationService
}

func NewReadController(annotationService service.IAnnotationService) IReadController {
	return &readController{
		annotationService: annotationService,
	}
}

func (c *readController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/read/v1")
	h.Use(auth)
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Put("current", c.SetCurrent)
	h.Put(":id/show", c.Show)
	h.Put(":id/hide", c.Hide)
}

func (c *readController) Create(ctx *fiber.Ctx) error {
	userId, err := userIdFrom(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateReadRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.annotationService.CreateRead(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create read", res))
}

func (c *readController) List(ctx *fiber.Ctx) error {
	userId, err := userIdFrom(ctx)
	if err != nil {
		return err
	}

	res, err := c.annotationService.ListReads(ctx.UserContext(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list reads", res))
}

func (c *readController) SetCurrent(ctx *fiber.Ctx) error {
	userId, err := userIdFrom(ctx)
	if err != nil {
		return err
	}

	var req dto.SetCurrentReadRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.annotationService.SetCurrentRead(ctx.UserContext(), userId, req.ReadId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success set current read", res))
}

func (c *readController) Show(ctx *fiber.Ctx) error {
	userId, err := userIdFrom(ctx)
	if err != nil {
		return err
	}

	res, err := c.annotationService.ShowRead(ctx.UserContext(), userId, ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show read", res))
}

func (c *readController) Hide(ctx *fiber.Ctx) error {
	userId, err := userIdFrom(ctx)
	if err != nil {
		return err
	}

	res, err := c.annotationService.HideRead(ctx.UserContext(), userId, ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success hide read", res))
}
