package controllers

import (
	"warehouse-app/locales"
	"warehouse-app/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type TransferController struct {
	base
	transfers *services.TransferService
}

func NewTransferController(transfers *services.TransferService, log *zap.Logger, i18n *locales.Localizer) *TransferController {
	return &TransferController{base: base{log: log, i18n: i18n}, transfers: transfers}
}

func (c *TransferController) CreateTransfer(ctx *fiber.Ctx) error {
	var input services.TransferInput
	if err := ctx.BodyParser(&input); err != nil {
		return c.badRequest(ctx, "invalid request body")
	}
	details, err := c.transfers.CreateTransfer(ctx.UserContext(), sessionFrom(ctx), input)
	if err != nil {
		return c.fail(ctx, err)
	}
	return c.success(ctx, fiber.StatusCreated, details)
}

func (c *TransferController) GetTransfers(ctx *fiber.Ctx) error {
	ids, err := queryIDs(ctx, "warehouse_ids")
	if err != nil {
		return c.badRequest(ctx, err.Error())
	}
	rows, err := c.transfers.GetTransfers(ctx.UserContext(), sessionFrom(ctx), ids)
	if err != nil {
		return c.fail(ctx, err)
	}
	return c.success(ctx, fiber.StatusOK, rows)
}

func (c *TransferController) GetDetails(ctx *fiber.Ctx) error {
	id, err := paramID(ctx)
	if err != nil {
		return c.badRequest(ctx, err.Error())
	}
	details, err := c.transfers.GetTransferDetails(ctx.UserContext(), sessionFrom(ctx), id)
	if err != nil {
		return c.fail(ctx, err)
	}
	return c.success(ctx, fiber.StatusOK, details)
}

func (c *TransferController) ExportExcel(ctx *fiber.Ctx) error {
	ids, err := queryIDs(ctx, "warehouse_ids")
	if err != nil {
		return c.badRequest(ctx, err.Error())
	}
	rows, err := c.transfers.GetTransfers(ctx.UserContext(), sessionFrom(ctx), ids)
	if err != nil {
		return c.fail(ctx, err)
	}
	data := make([][]interface{}, 0, len(rows))
	for _, r := range rows {
		data = append(data, []interface{}{r.DocumentNo, r.Date.Format("2006-01-02"), r.FromWarehouseName, r.ToWarehouseName, r.EmployeeName})
	}
	return c.sendWorkbook(ctx, "transfers", []string{"Document No", "Date", "From", "To", "Employee"}, data)
}
