package routes

import (
	"warehouse-app/config"
	"warehouse-app/controllers"
	"warehouse-app/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupInviteRoutes(app *fiber.App, controller *controllers.InviteController) {
	api := app.Group(config.MAIN_ROUTES+"/invite-codes", middleware.AuthMiddleware, middleware.RequireAdmin)
	api.Get("/", controller.GetAllInviteCodes)
	api.Post("/", controller.CreateInviteCode)
	api.Delete("/:id", controller.RevokeInviteCode)
}
