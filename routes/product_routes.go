package routes

import (
	"warehouse-app/config"
	"warehouse-app/controllers"
	"warehouse-app/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupProductRoutes(app *fiber.App, controller *controllers.ProductController) {
	api := app.Group(config.MAIN_ROUTES+"/products", middleware.AuthMiddleware)
	api.Get("/", controller.GetAllProducts)
	api.Post("/", middleware.RequireAdmin, controller.CreateProduct)
	api.Delete("/:id", middleware.RequireAdmin, controller.DeleteProduct)
}
