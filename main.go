package main

import (
	"warehouse-app/cache"
	"warehouse-app/config"
	"warehouse-app/controllers"
	"warehouse-app/controllers/idgen"
	"warehouse-app/database"
	"warehouse-app/locales"
	"warehouse-app/logger"
	"warehouse-app/middleware"
	"warehouse-app/migration"
	"warehouse-app/routes"
	seed "warehouse-app/seeder"
	"warehouse-app/services"
	"warehouse-app/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()

	log := logger.NewZapLogger(&logger.ZapLoggerConfig{
		IsDevelopment: config.IsDevelopment(),
		Encoding:      config.LogEncoding,
		Level:         config.LogLevel,
	})
	defer log.Sync()

	if err := idgen.Init(config.SnowflakeNode); err != nil {
		log.Fatal("invalid snowflake node", zap.Int64("node", config.SnowflakeNode), zap.Error(err))
	}

	// Pastikan database ada
	if err := database.EnsureDatabaseExists(log, config.DBName); err != nil {
		log.Fatal("failed to ensure database", zap.Error(err))
	}

	db, err := database.Open(log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := migration.Migrate(db); err != nil {
		log.Fatal("failed to auto migrate", zap.Error(err))
	}
	if err := database.RunSeeders(db, log); err != nil {
		log.Fatal("failed to seed", zap.Error(err))
	}
	if config.IsDevelopment() {
		if err := seed.SeedDemoData(db); err != nil {
			log.Warn("demo data not seeded", zap.Error(err))
		}
	}

	var lookups *cache.Cache
	if config.RedisAddr != "" {
		rdb, err := cache.NewRedisClient(cache.RedisConfig{
			Addr:     config.RedisAddr,
			Password: config.RedisPassword,
			DB:       config.RedisDB,
		})
		if err != nil {
			log.Warn("redis unavailable, running without cache", zap.Error(err))
		} else {
			defer rdb.Close()
			lookups = cache.New(rdb, config.RedisTTL, log.Named("cache"))
		}
	}

	mailer := utils.NewMailer(config.SMTPHost, config.SMTPPort, config.SMTPUser, config.SMTPPassword, config.SMTPSender)

	i18n, err := locales.New()
	if err != nil {
		log.Fatal("failed to load translations", zap.Error(err))
	}

	authService := services.NewAuthService(db, log)
	inventoryService := services.NewInventoryService(db, log, lookups)
	shipmentService := services.NewShipmentService(db, log)
	transferService := services.NewTransferService(db, log)
	employeeService := services.NewEmployeeService(db, log, lookups)
	userService := services.NewUserService(db, log, lookups)
	supplierService := services.NewSupplierService(db, log, lookups)
	warehouseService := services.NewWarehouseService(db, log, lookups)
	inviteService := services.NewInviteService(db, log)
	dashboardService := services.NewDashboardService(db, log)

	app := fiber.New(fiber.Config{
		AppName:               "warehouse-app",
		DisableStartupMessage: !config.IsDevelopment(),
	})
	app.Use(middleware.RequestLogger(log))
	config.SetupCORS(app)

	err = routes.Setup(app, routes.Handlers{
		Auth:      controllers.NewAuthController(authService, log, i18n),
		Inventory: controllers.NewInventoryController(inventoryService, log, i18n),
		Product:   controllers.NewProductController(inventoryService, log, i18n),
		Shipping:  controllers.NewShippingController(shipmentService, mailer, log, i18n),
		Transfer:  controllers.NewTransferController(transferService, log, i18n),
		Employee:  controllers.NewEmployeeController(employeeService, log, i18n),
		User:      controllers.NewUserController(userService, log, i18n),
		Supplier:  controllers.NewSupplierController(supplierService, log, i18n),
		Warehouse: controllers.NewWarehouseController(warehouseService, log, i18n),
		Invite:    controllers.NewInviteController(inviteService, log, i18n),
		Dashboard: controllers.NewDashboardController(dashboardService, log, i18n),
		Accounts:  authService,
	}, log)
	if err != nil {
		log.Fatal("failed to set up routes", zap.Error(err))
	}

	port := config.APP_PORT
	log.Info("server starting", zap.String("port", port), zap.String("env", config.APP_ENV))
	if err := app.Listen(":" + port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
