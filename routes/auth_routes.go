package routes

import (
	"warehouse-app/config"
	"warehouse-app/controllers"
	"warehouse-app/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func SetupAuthRoutes(app *fiber.App, controller *controllers.AuthController, log *zap.Logger) error {
	limit, err := middleware.RateLimit(config.LoginRateLimit, log)
	if err != nil {
		return err
	}

	api := app.Group(config.MAIN_ROUTES + "/auth")
	api.Post("/register", limit, controller.Register)
	api.Post("/login", limit, controller.Login)
	api.Get("/me", middleware.AuthMiddleware, controller.Me)
	api.Post("/logout", middleware.AuthMiddleware, controller.Logout)
	return nil
}
