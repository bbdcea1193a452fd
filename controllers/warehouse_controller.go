package controllers

import (
	"warehouse-app/locales"
	"warehouse-app/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type WarehouseController struct {
	base
	warehouses *services.WarehouseService
}

func NewWarehouseController(warehouses *services.WarehouseService, log *zap.Logger, i18n *locales.Localizer) *WarehouseController {
	return &WarehouseController{base: base{log: log, i18n: i18n}, warehouses: warehouses}
}

func (c *WarehouseController) GetAllWarehouses(ctx *fiber.Ctx) error {
	warehouses, err := c.warehouses.ListWarehouses(ctx.UserContext())
	if err != nil {
		return c.fail(ctx, err)
	}
	return c.success(ctx, fiber.StatusOK, warehouses)
}

func (c *WarehouseController) CreateWarehouse(ctx *fiber.Ctx) error {
	var input services.WarehouseInput
	if err := ctx.BodyParser(&input); err != nil {
		return c.badRequest(ctx, "invalid request body")
	}
	warehouse, err := c.warehouses.AddWarehouse(ctx.UserContext(), input)
	if err != nil {
		return c.fail(ctx, err)
	}
	return c.success(ctx, fiber.StatusCreated, warehouse)
}
