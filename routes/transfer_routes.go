package routes

import (
	"warehouse-app/config"
	"warehouse-app/controllers"
	"warehouse-app/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupTransferRoutes(app *fiber.App, controller *controllers.TransferController) {
	api := app.Group(config.MAIN_ROUTES+"/transfers", middleware.AuthMiddleware)
	api.Get("/", controller.GetTransfers)
	api.Get("/export", controller.ExportExcel)
	api.Get("/:id/lines", controller.GetDetails)
	api.Post("/", controller.CreateTransfer)
}
