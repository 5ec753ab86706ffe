package controller

import (
	"re-ad-be/internal/dto"
	"re-ad-be/internal/pkg/serverutils"
	"re-ad-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IGraphController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Show(ctx *fiber.Ctx) error
	Connect(ctx *fiber.Ctx) error
	UpdateNode(ctx *fiber.Ctx) error
	MoveNode(ctx *fiber.Ctx) error
	Select(ctx *fiber.Ctx) error
}

type graphController struct {
	annotationService service.IAnnotationService
}

func NewGraphController(annotationService service.IAnnotationService) IGraphController {
	return &graphController{
		annotationService: annotationService,
	}
}

func (c *graphController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/graph/v1")
	h.Use(auth)
	h.Get("", c.Show)
	h.Post("connect", c.Connect)
	h.Put("selection", c.Select)
	h.Put("node/:id", c.UpdateNode)
	h.Put("node/:id/position", c.MoveNode)
}

func (c *graphController) Show(ctx *fiber.Ctx) error {
	userId, err := userIdFrom(ctx)
	if err != nil {
		return err
	}

	res, err := c.annotationService.Graph(ctx.UserContext(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show graph", res))
}

func (c *graphController) Connect(ctx *fiber.Ctx) error {
	userId, err := userIdFrom(ctx)
	if err != nil {
		return err
	}

	var req dto.ConnectRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.annotationService.Connect(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success connect nodes", res))
}

func (c *graphController) UpdateNode(ctx *fiber.Ctx) error {
	userId, err := userIdFrom(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateNodeRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.annotationService.UpdateNode(ctx.UserContext(), userId, ctx.Params("id"), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update node", res))
}

func (c *graphController) MoveNode(ctx *fiber.Ctx) error {
	userId, err := userIdFrom(ctx)
	if err != nil {
		return err
	}

	var req dto.MoveNodeRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.annotationService.MoveNode(ctx.UserContext(), userId, ctx.Params("id"), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success move node", res))
}

func (c *graphController) Select(ctx *fiber.Ctx) error {
	userId, err := userIdFrom(ctx)
	if err != nil {
		return err
	}

	var req dto.SelectionRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.annotationService.Select(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update selection", res))
}
