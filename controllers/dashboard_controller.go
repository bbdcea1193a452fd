package controllers

import (
	"warehouse-app/locales"
	"warehouse-app/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type DashboardController struct {
	base
	dashboard *services.DashboardService
}

func NewDashboardController(dashboard *services.DashboardService, log *zap.Logger, i18n *locales.Localizer) *DashboardController {
	return &DashboardController{base: base{log: log, i18n: i18n}, dashboard: dashboard}
}

func (c *DashboardController) GetDashboard(ctx *fiber.Ctx) error {
	dashboard, err := c.dashboard.GetDashboard(ctx.UserContext(), sessionFrom(ctx))
	if err != nil {
		return c.fail(ctx, err)
	}
	return c.success(ctx, fiber.StatusOK, dashboard)
}
