package routes

import (
	"warehouse-app/config"
	"warehouse-app/controllers"
	"warehouse-app/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handlers bundles every controller the API exposes.
type Handlers struct {
	Auth      *controllers.AuthController
	Inventory *controllers.InventoryController
	Product   *controllers.ProductController
	Shipping  *controllers.ShippingController
	Transfer  *controllers.TransferController
	Employee  *controllers.EmployeeController
	User      *controllers.UserController
	Supplier  *controllers.SupplierController
	Warehouse *controllers.WarehouseController
	Invite    *controllers.InviteController
	Dashboard *controllers.DashboardController

	Accounts middleware.AccountChecker
}

func Setup(app *fiber.App, h Handlers, log *zap.Logger) error {
	middleware.UseAccountChecker(h.Accounts)
	if err := SetupAuthRoutes(app, h.Auth, log); err != nil {
		return err
	}
	SetupInventoryRoutes(app, h.Inventory)
	SetupProductRoutes(app, h.Product)
	SetupShippingRoutes(app, h.Shipping)
	SetupTransferRoutes(app, h.Transfer)
	SetupEmployeeRoutes(app, h.Employee)
	SetupUserRoutes(app, h.User)
	SetupSupplierRoutes(app, h.Supplier)
	SetupWarehouseRoutes(app, h.Warehouse)
	SetupInviteRoutes(app, h.Invite)
	SetupDashboardRoutes(app, h.Dashboard)
	return nil
}

func SetupWarehouseRoutes(app *fiber.App, controller *controllers.WarehouseController) {
	api := app.Group(config.MAIN_ROUTES+"/warehouses", middleware.AuthMiddleware)
	api.Get("/", controller.GetAllWarehouses)
	api.Post("/", middleware.RequireAdmin, controller.CreateWarehouse)
}
