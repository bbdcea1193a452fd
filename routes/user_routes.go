package routes

import (
	"warehouse-app/config"
	"warehouse-app/controllers"
	"warehouse-app/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App, controller *controllers.UserController) {
	users := app.Group(config.MAIN_ROUTES+"/users", middleware.AuthMiddleware, middleware.RequireAdmin)
	users.Get("/", controller.GetAllUsers)
	users.Get("/:login", controller.GetUserByLogin)
	users.Put("/:login", controller.UpdateUser)

	roles := app.Group(config.MAIN_ROUTES+"/roles", middleware.AuthMiddleware, middleware.RequireAdmin)
	roles.Get("/", controller.GetAllRoles)
}
