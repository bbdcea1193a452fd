package controllers

import (
	"warehouse-app/locales"
	"warehouse-app/services"
	"warehouse-app/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ShippingController struct {
	base
	shipments *services.ShipmentService
	mailer    *utils.Mailer
}

func NewShippingController(shipments *services.ShipmentService, mailer *utils.Mailer, log *zap.Logger, i18n *locales.Localizer) *ShippingController {
	return &ShippingController{base: base{log: log, i18n: i18n}, shipments: shipments, mailer: mailer}
}

func (c *ShippingController) CreateShipment(ctx *fiber.Ctx) error {
	var input services.ShipmentInput
	if err := ctx.BodyParser(&input); err != nil {
		return c.badRequest(ctx, "invalid request body")
	}
	receipt, err := c.shipments.CreateShipment(ctx.UserContext(), sessionFrom(ctx), input)
	if err != nil {
		return c.fail(ctx, err)
	}

	if c.mailer.Enabled() && receipt.SupplierEmail != "" {
		go c.sendReceipt(*receipt)
	}
	return c.success(ctx, fiber.StatusCreated, receipt)
}

// sendReceipt runs after commit; a mail failure never undoes the shipment.
func (c *ShippingController) sendReceipt(receipt services.ShipmentReceipt) {
	lines := make([]utils.ReceiptLine, 0, len(receipt.Lines))
	for _, l := range receipt.Lines {
		lines = append(lines, utils.ReceiptLine{ProductName: l.ProductName, SKU: l.SKU, Quantity: l.Quantity})
	}
	body := utils.ShipmentReceiptBody(receipt.Shipment.DocumentNo, receipt.SupplierName, receipt.WarehouseName, receipt.Shipment.Date, lines)
	if err := c.mailer.Send([]string{receipt.SupplierEmail}, "Shipment "+receipt.Shipment.DocumentNo+" received", body); err != nil {
		c.log.Warn("failed to send shipment receipt", zap.String("document_no", receipt.Shipment.DocumentNo), zap.Error(err))
		return
	}
	c.log.Info("shipment receipt sent", zap.String("document_no", receipt.Shipment.DocumentNo))
}

func (c *ShippingController) GetShipments(ctx *fiber.Ctx) error {
	ids, err := queryIDs(ctx, "warehouse_ids")
	if err != nil {
		return c.badRequest(ctx, err.Error())
	}
	rows, err := c.shipments.GetShipments(ctx.UserContext(), sessionFrom(ctx), ids)
	if err != nil {
		return c.fail(ctx, err)
	}
	return c.success(ctx, fiber.StatusOK, rows)
}

func (c *ShippingController) GetUpcoming(ctx *fiber.Ctx) error {
	rows, err := c.shipments.GetUpcomingShipments(ctx.UserContext(), sessionFrom(ctx))
	if err != nil {
		return c.fail(ctx, err)
	}
	return c.success(ctx, fiber.StatusOK, rows)
}

func (c *ShippingController) GetLines(ctx *fiber.Ctx) error {
	id, err := paramID(ctx)
	if err != nil {
		return c.badRequest(ctx, err.Error())
	}
	rows, err := c.shipments.GetShipmentLines(ctx.UserContext(), sessionFrom(ctx), id)
	if err != nil {
		return c.fail(ctx, err)
	}
	return c.success(ctx, fiber.StatusOK, rows)
}

func (c *ShippingController) ExportExcel(ctx *fiber.Ctx) error {
	ids, err := queryIDs(ctx, "warehouse_ids")
	if err != nil {
		return c.badRequest(ctx, err.Error())
	}
	rows, err := c.shipments.GetShipments(ctx.UserContext(), sessionFrom(ctx), ids)
	if err != nil {
		return c.fail(ctx, err)
	}
	data := make([][]interface{}, 0, len(rows))
	for _, r := range rows {
		data = append(data, []interface{}{r.DocumentNo, r.Date.Format("2006-01-02"), r.SupplierName, r.WarehouseName, r.EmployeeName})
	}
	return c.sendWorkbook(ctx, "shipments", []string{"Document No", "Date", "Supplier", "Warehouse", "Employee"}, data)
}
