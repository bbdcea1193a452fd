package controllers

import (
	"warehouse-app/locales"
	"warehouse-app/repositories"
	"warehouse-app/services"
	"warehouse-app/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type InventoryController struct {
	base
	inventory *services.InventoryService
}

func NewInventoryController(inventory *services.InventoryService, log *zap.Logger, i18n *locales.Localizer) *InventoryController {
	return &InventoryController{base: base{log: log, i18n: i18n}, inventory: inventory}
}

func (c *InventoryController) GetInventory(ctx *fiber.Ctx) error {
	ids, err := queryIDs(ctx, "warehouse_ids")
	if err != nil {
		return c.badRequest(ctx, err.Error())
	}
	rows, err := c.inventory.GetInventory(ctx.UserContext(), sessionFrom(ctx), ids)
	if err != nil {
		return c.fail(ctx, err)
	}
	return c.success(ctx, fiber.StatusOK, fiber.Map{"inventories": rows})
}

func (c *InventoryController) Adjust(ctx *fiber.Ctx) error {
	var input services.AdjustInput
	if err := ctx.BodyParser(&input); err != nil {
		return c.badRequest(ctx, "invalid request body")
	}
	inv, err := c.inventory.ApplyDelta(ctx.UserContext(), sessionFrom(ctx), input)
	if err != nil {
		return c.fail(ctx, err)
	}
	return c.success(ctx, fiber.StatusOK, inv)
}

func (c *InventoryController) AddStock(ctx *fiber.Ctx) error {
	var input services.StockInput
	if err := ctx.BodyParser(&input); err != nil {
		return c.badRequest(ctx, "invalid request body")
	}
	inv, err := c.inventory.AddProductToWarehouse(ctx.UserContext(), sessionFrom(ctx), input)
	if err != nil {
		return c.fail(ctx, err)
	}
	return c.success(ctx, fiber.StatusCreated, inv)
}

func (c *InventoryController) RemoveStock(ctx *fiber.Ctx) error {
	var input services.StockInput
	if err := ctx.BodyParser(&input); err != nil {
		return c.badRequest(ctx, "invalid request body")
	}
	if err := c.inventory.RemoveProductFromWarehouse(ctx.UserContext(), sessionFrom(ctx), input); err != nil {
		return c.fail(ctx, err)
	}
	return c.success(ctx, fiber.StatusOK, nil)
}

func (c *InventoryController) Movements(ctx *fiber.Ctx) error {
	ids, err := queryIDs(ctx, "warehouse_ids")
	if err != nil {
		return c.badRequest(ctx, err.Error())
	}
	filter := repositories.MovementFilter{
		WarehouseIDs: ids,
		ProductID:    uint(ctx.QueryInt("product_id", 0)),
		Limit:        ctx.QueryInt("limit", 100),
		Offset:       ctx.QueryInt("offset", 0),
	}
	rows, err := c.inventory.ListMovements(ctx.UserContext(), sessionFrom(ctx), filter)
	if err != nil {
		return c.fail(ctx, err)
	}
	return c.success(ctx, fiber.StatusOK, fiber.Map{"movements": rows})
}

func (c *InventoryController) ExportExcel(ctx *fiber.Ctx) error {
	ids, err := queryIDs(ctx, "warehouse_ids")
	if err != nil {
		return c.badRequest(ctx, err.Error())
	}
	rows, err := c.inventory.GetInventory(ctx.UserContext(), sessionFrom(ctx), ids)
	if err != nil {
		return c.fail(ctx, err)
	}

	data := make([][]interface{}, 0, len(rows))
	for _, r := range rows {
		data = append(data, []interface{}{r.WarehouseName, r.SKU, r.ProductName, r.Quantity, r.UpdatedAt.Format("2006-01-02 15:04:05")})
	}
	return c.sendWorkbook(ctx, "inventory", []string{"Warehouse", "SKU", "Product", "Quantity", "Updated At"}, data)
}

func (b *base) sendWorkbook(ctx *fiber.Ctx, name string, headers []string, rows [][]interface{}) error {
	buf, err := utils.BuildWorkbook(name, headers, rows)
	if err != nil {
		b.log.Error("failed to build workbook", zap.String("sheet", name), zap.Error(err))
		return b.fail(ctx, &services.AppError{Kind: services.KindInternal, Code: services.CodeInternal, Message: "internal error", Err: err})
	}
	ctx.Set(fiber.HeaderContentType, utils.XLSXContentType)
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`.xlsx"`)
	return ctx.Status(fiber.StatusOK).Send(buf.Bytes())
}
