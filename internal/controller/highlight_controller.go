package controller

import (
	"re-ad-be/internal/dto"
	"re-ad-be/internal/pkg/serverutils"
	"re-ad-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IHighlightController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Reset(ctx *fiber.Ctx) error
	Summarize(ctx *fiber.Ctx) error
}

type highlightController struct {
	annotationService service.IAnnotationService
	summaryService    service.ISummaryService
}

func NewHighlightController(annotationService service.IAnnotationService, summaryService service.ISummaryService) IHighlightController {
	return &highlightController{
		annotationService: annotationService,
		summaryService:    summaryService,
	}
}

func (c *highlightController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/highlight/v1")
	h.Use(auth)
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Delete("", c.Reset)
	h.Patch(":id", c.Update)
	h.Delete(":id", c.Delete)
	h.Post(":id/summary", c.Summarize)
}

func (c *highlightController) Create(ctx *fiber.Ctx) error {
	userId, err := userIdFrom(ctx)
	if err != nil {
		return err
	}

	var req dto.AddHighlightRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.annotationService.AddHighlight(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success add highlight", res))
}

func (c *highlightController) List(ctx *fiber.Ctx) error {
	userId, err := userIdFrom(ctx)
	if err != nil {
		return err
	}

	res, err := c.annotationService.ListHighlights(ctx.UserContext(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list highlights", res))
}

func (c *highlightController) Update(ctx *fiber.Ctx) error {
	userId, err := userIdFrom(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateHighlightRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.annotationService.UpdateHighlight(ctx.UserContext(), userId, ctx.Params("id"), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update highlight", res))
}

func (c *highlightController) Delete(ctx *fiber.Ctx) error {
	userId, err := userIdFrom(ctx)
	if err != nil {
		return err
	}

	res, err := c.annotationService.DeleteHighlight(ctx.UserContext(), userId, ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete highlight", res))
}

func (c *highlightController) Reset(ctx *fiber.Ctx) error {
	userId, err := userIdFrom(ctx)
	if err != nil {
		return err
	}

	if err := c.annotationService.ResetHighlights(ctx.UserContext(), userId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success reset highlights", nil))
}

func (c *highlightController) Summarize(ctx *fiber.Ctx) error {
	userId, err := userIdFrom(ctx)
	if err != nil {
		return err
	}

	res, err := c.summaryService.RequestSummary(ctx.UserContext(), userId, ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Summary requested", res))
}
