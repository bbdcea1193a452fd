package routes

import (
	"warehouse-app/config"
	"warehouse-app/controllers"
	"warehouse-app/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupShippingRoutes(app *fiber.App, controller *controllers.ShippingController) {
	api := app.Group(config.MAIN_ROUTES+"/shipments", middleware.AuthMiddleware)
	api.Get("/", controller.GetShipments)
	api.Get("/upcoming", controller.GetUpcoming)
	api.Get("/export", controller.ExportExcel)
	api.Get("/:id/lines", controller.GetLines)
	api.Post("/", controller.CreateShipment)
}
