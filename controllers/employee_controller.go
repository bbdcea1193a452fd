package controllers

import (
	"warehouse-app/locales"
	"warehouse-app/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type EmployeeController struct {
	base
	employees *services.EmployeeService
}

func NewEmployeeController(employees *services.EmployeeService, log *zap.Logger, i18n *locales.Localizer) *EmployeeController {
	return &EmployeeController{base: base{log: log, i18n: i18n}, employees: employees}
}

func (c *EmployeeController) GetAllEmployees(ctx *fiber.Ctx) error {
	employees, err := c.employees.ListEmployees(ctx.UserContext())
	if err != nil {
		return c.fail(ctx, err)
	}
	return c.success(ctx, fiber.StatusOK, employees)
}

func (c *EmployeeController) CreateEmployee(ctx *fiber.Ctx) error {
	var input services.EmployeeInput
	if err := ctx.BodyParser(&input); err != nil {
		return c.badRequest(ctx, "invalid request body")
	}
	employee, err := c.employees.AddEmployee(ctx.UserContext(), input)
	if err != nil {
		return c.fail(ctx, err)
	}
	return c.success(ctx, fiber.StatusCreated, employee)
}

func (c *EmployeeController) UpdateEmployee(ctx *fiber.Ctx) error {
	id, err := paramID(ctx)
	if err != nil {
		return c.badRequest(ctx, err.Error())
	}
	var input services.UpdateEmployeeInput
	if err := ctx.BodyParser(&input); err != nil {
		return c.badRequest(ctx, "invalid request body")
	}
	employee, err := c.employees.UpdateEmployee(ctx.UserContext(), id, input)
	if err != nil {
		return c.fail(ctx, err)
	}
	return c.success(ctx, fiber.StatusOK, employee)
}

func (c *EmployeeController) GetAllPosts(ctx *fiber.Ctx) error {
	posts, err := c.employees.ListPosts(ctx.UserContext())
	if err != nil {
		return c.fail(ctx, err)
	}
	return c.success(ctx, fiber.StatusOK, posts)
}

func (c *EmployeeController) CreatePost(ctx *fiber.Ctx) error {
	var input services.PostInput
	if err := ctx.BodyParser(&input); err != nil {
		return c.badRequest(ctx, "invalid request body")
	}
	post, err := c.employees.AddPost(ctx.UserContext(), input)
	if err != nil {
		return c.fail(ctx, err)
	}
	return c.success(ctx, fiber.StatusCreated, post)
}
