package controller

import (
	"re-ad-be/internal/pkg/serverutils"
	"re-ad-be/internal/service"
	"re-ad-be/pkg/annotation"

	"github.com/gofiber/fiber/v2"
)

type IWorkspaceController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Export(ctx *fiber.Ctx) error
	Import(ctx *fiber.Ctx) error
	Save(ctx *fiber.Ctx) error
	Load(ctx *fiber.Ctx) error
	DeleteSaved(ctx *fiber.Ctx) error
}

type workspaceController struct {
	workspaceService service.IWorkspaceService
}

func NewWorkspaceController(workspaceService service.IWorkspaceService) IWorkspaceController {
	return &workspaceController{
		workspaceService: workspaceService,
	}
}

func (c *workspaceController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/workspace/v1")
	h.Use(auth)
	h.Get("", c.Export)
	h.Put("", c.Import)
	h.Post("save", c.Save)
	h.Delete("save", c.DeleteSaved)
	h.Post("load", c.Load)
}

func (c *workspaceController) Export(ctx *fiber.Ctx) error {
	userId, err := userIdFrom(ctx)
	if err != nil {
		return err
	}

	res, err := c.workspaceService.Export(ctx.UserContext(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success export workspace", res))
}

func (c *workspaceController) Import(ctx *fiber.Ctx) error {
	userId, err := userIdFrom(ctx)
	if err != nil {
		return err
	}

	var req annotation.Snapshot
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.workspaceService.Import(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success import workspace", res))
}

func (c *workspaceController) Save(ctx *fiber.Ctx) error {
	userId, err := userIdFrom(ctx)
	if err != nil {
		return err
	}

	res, err := c.workspaceService.Save(ctx.UserContext(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success save workspace", res))
}

func (c *workspaceController) Load(ctx *fiber.Ctx) error {
	userId, err := userIdFrom(ctx)
	if err != nil {
		return err
	}

	res, err := c.workspaceService.Load(ctx.UserContext(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success load workspace", res))
}

func (c *workspaceController) DeleteSaved(ctx *fiber.Ctx) error {
	userId, err := userIdFrom(ctx)
	if err != nil {
		return err
	}

	if err := c.workspaceService.DeleteSaved(ctx.UserContext(), userId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete saved workspace", nil))
}
