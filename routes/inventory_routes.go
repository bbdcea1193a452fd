package routes

import (
	"warehouse-app/config"
	"warehouse-app/controllers"
	"warehouse-app/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupInventoryRoutes(app *fiber.App, controller *controllers.InventoryController) {
	api := app.Group(config.MAIN_ROUTES+"/inventory", middleware.AuthMiddleware)
	api.Get("/", controller.GetInventory)
	api.Get("/movements", controller.Movements)
	api.Get("/export", controller.ExportExcel)
	api.Post("/adjust", controller.Adjust)
	api.Post("/stock", middleware.RequireAdmin, controller.AddStock)
	api.Delete("/stock", middleware.RequireAdmin, controller.RemoveStock)
}
