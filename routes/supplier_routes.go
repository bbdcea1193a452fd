package routes

import (
	"warehouse-app/config"
	"warehouse-app/controllers"
	"warehouse-app/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupSupplierRoutes(app *fiber.App, controller *controllers.SupplierController) {
	api := app.Group(config.MAIN_ROUTES+"/suppliers", middleware.AuthMiddleware)
	api.Get("/", controller.GetAllSuppliers)
	api.Get("/export", middleware.RequireAdmin, controller.ExportSuppliers)
	api.Post("/", middleware.RequireAdmin, controller.CreateSupplier)
}
