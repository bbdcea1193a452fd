package controllers

import (
	"warehouse-app/locales"
	"warehouse-app/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type InviteController struct {
	base
	invites *services.InviteService
}

func NewInviteController(invites *services.InviteService, log *zap.Logger, i18n *locales.Localizer) *InviteController {
	return &InviteController{base: base{log: log, i18n: i18n}, invites: invites}
}

func (c *InviteController) CreateInviteCode(ctx *fiber.Ctx) error {
	var input services.InviteInput
	if err := ctx.BodyParser(&input); err != nil {
		return c.badRequest(ctx, "invalid request body")
	}
	invite, err := c.invites.CreateInviteCode(ctx.UserContext(), input)
	if err != nil {
		return c.fail(ctx, err)
	}
	return c.success(ctx, fiber.StatusCreated, invite)
}

func (c *InviteController) GetAllInviteCodes(ctx *fiber.Ctx) error {
	rows, err := c.invites.ListInviteCodes(ctx.UserContext())
	if err != nil {
		return c.fail(ctx, err)
	}
	return c.success(ctx, fiber.StatusOK, rows)
}

func (c *InviteController) RevokeInviteCode(ctx *fiber.Ctx) error {
	id, err := paramID(ctx)
	if err != nil {
		return c.badRequest(ctx, err.Error())
	}
	if err := c.invites.RevokeInviteCode(ctx.UserContext(), id); err != nil {
		return c.fail(ctx, err)
	}
	return c.success(ctx, fiber.StatusOK, nil)
}
