package routes

import (
	"warehouse-app/config"
	"warehouse-app/controllers"
	"warehouse-app/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupEmployeeRoutes(app *fiber.App, controller *controllers.EmployeeController) {
	employees := app.Group(config.MAIN_ROUTES+"/employees", middleware.AuthMiddleware, middleware.RequireAdmin)
	employees.Get("/", controller.GetAllEmployees)
	employees.Post("/", controller.CreateEmployee)
	employees.Put("/:id", controller.UpdateEmployee)

	posts := app.Group(config.MAIN_ROUTES+"/posts", middleware.AuthMiddleware, middleware.RequireAdmin)
	posts.Get("/", controller.GetAllPosts)
	posts.Post("/", controller.CreatePost)
}
