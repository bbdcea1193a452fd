package controllers

import (
	"warehouse-app/locales"
	"warehouse-app/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type UserController struct {
	base
	users *services.UserService
}

func NewUserController(users *services.UserService, log *zap.Logger, i18n *locales.Localizer) *UserController {
	return &UserController{base: base{log: log, i18n: i18n}, users: users}
}

func (c *UserController) GetAllUsers(ctx *fiber.Ctx) error {
	users, err := c.users.ListUsers(ctx.UserContext())
	if err != nil {
		return c.fail(ctx, err)
	}
	return c.success(ctx, fiber.StatusOK, users)
}

func (c *UserController) GetUserByLogin(ctx *fiber.Ctx) error {
	user, err := c.users.GetUserByLogin(ctx.UserContext(), ctx.Params("login"))
	if err != nil {
		return c.fail(ctx, err)
	}
	return c.success(ctx, fiber.StatusOK, user)
}

func (c *UserController) UpdateUser(ctx *fiber.Ctx) error {
	var input services.UpdateUserInput
	if err := ctx.BodyParser(&input); err != nil {
		return c.badRequest(ctx, "invalid request body")
	}
	user, err := c.users.UpdateUser(ctx.UserContext(), ctx.Params("login"), input)
	if err != nil {
		return c.fail(ctx, err)
	}
	return c.success(ctx, fiber.StatusOK, user)
}

func (c *UserController) GetAllRoles(ctx *fiber.Ctx) error {
	roles, err := c.users.ListRoles(ctx.UserContext())
	if err != nil {
		return c.fail(ctx, err)
	}
	return c.success(ctx, fiber.StatusOK, roles)
}
