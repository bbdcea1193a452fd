package controllers

import (
	"warehouse-app/locales"
	"warehouse-app/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ProductController struct {
	base
	inventory *services.InventoryService
}

func NewProductController(inventory *services.InventoryService, log *zap.Logger, i18n *locales.Localizer) *ProductController {
	return &ProductController{base: base{log: log, i18n: i18n}, inventory: inventory}
}

func (c *ProductController) GetAllProducts(ctx *fiber.Ctx) error {
	products, err := c.inventory.ListProducts(ctx.UserContext())
	if err != nil {
		return c.fail(ctx, err)
	}
	return c.success(ctx, fiber.StatusOK, products)
}

func (c *ProductController) CreateProduct(ctx *fiber.Ctx) error {
	var input services.ProductInput
	if err := ctx.BodyParser(&input); err != nil {
		return c.badRequest(ctx, "invalid request body")
	}
	product, err := c.inventory.AddProduct(ctx.UserContext(), input)
	if err != nil {
		return c.fail(ctx, err)
	}
	return c.success(ctx, fiber.StatusCreated, product)
}

func (c *ProductController) DeleteProduct(ctx *fiber.Ctx) error {
	id, err := paramID(ctx)
	if err != nil {
		return c.badRequest(ctx, err.Error())
	}
	if err := c.inventory.DeleteProduct(ctx.UserContext(), id); err != nil {
		return c.fail(ctx, err)
	}
	return c.success(ctx, fiber.StatusOK, nil)
}
