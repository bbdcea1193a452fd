package controllers

import (
	"warehouse-app/locales"
	"warehouse-app/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type SupplierController struct {
	base
	suppliers *services.SupplierService
}

func NewSupplierController(suppliers *services.SupplierService, log *zap.Logger, i18n *locales.Localizer) *SupplierController {
	return &SupplierController{base: base{log: log, i18n: i18n}, suppliers: suppliers}
}

func (c *SupplierController) CreateSupplier(ctx *fiber.Ctx) error {
	var input services.SupplierInput
	if err := ctx.BodyParser(&input); err != nil {
		return c.badRequest(ctx, "invalid request body")
	}
	supplier, err := c.suppliers.AddSupplier(ctx.UserContext(), input)
	if err != nil {
		return c.fail(ctx, err)
	}
	return c.success(ctx, fiber.StatusCreated, supplier)
}

func (c *SupplierController) GetAllSuppliers(ctx *fiber.Ctx) error {
	suppliers, err := c.suppliers.ListSuppliers(ctx.UserContext())
	if err != nil {
		return c.fail(ctx, err)
	}
	return c.success(ctx, fiber.StatusOK, suppliers)
}

func (c *SupplierController) ExportSuppliers(ctx *fiber.Ctx) error {
	suppliers, err := c.suppliers.ListSuppliers(ctx.UserContext())
	if err != nil {
		return c.fail(ctx, err)
	}
	data := make([][]interface{}, 0, len(suppliers))
	for _, s := range suppliers {
		data = append(data, []interface{}{s.Name, s.Phone, s.Email})
	}
	return c.sendWorkbook(ctx, "suppliers", []string{"Name", "Phone", "Email"}, data)
}
