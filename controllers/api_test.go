package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"warehouse-app/config"
	"warehouse-app/controllers"
	"warehouse-app/database"
	"warehouse-app/locales"
	"warehouse-app/middleware"
	"warehouse-app/migration"
	"warehouse-app/models"
	"warehouse-app/routes"
	"warehouse-app/services"
	"warehouse-app/utils"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type envelope struct {
	Success bool            `json:"success"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type apiClient struct {
	t     *testing.T
	app   *fiber.App
	db    *gorm.DB
	token string
	lang  string
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()
	config.BcryptCost = bcrypt.MinCost
	config.MAIN_ROUTES = "/api/v1"
	config.JWTSecret = "test-secret"
	config.JWTExpiration = 3600
	config.LoginRateLimit = "1000-M"
	config.BootstrapInviteCode = "BOOTSTRAP1"
	t.Cleanup(func() { config.BootstrapInviteCode = "" })

	log := zap.NewNop()
	db, err := gorm.Open(sqlite.Open(":memory:"), database.GormConfig(log))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, migration.Migrate(db))
	require.NoError(t, database.RunSeeders(db, log))

	i18n, err := locales.New()
	require.NoError(t, err)

	auth := services.NewAuthService(db, log)
	inventory := services.NewInventoryService(db, log, nil)
	app := fiber.New()
	require.NoError(t, routes.Setup(app, routes.Handlers{
		Auth:      controllers.NewAuthController(auth, log, i18n),
		Inventory: controllers.NewInventoryController(inventory, log, i18n),
		Product:   controllers.NewProductController(inventory, log, i18n),
		Shipping:  controllers.NewShippingController(services.NewShipmentService(db, log), utils.NewMailer("", 0, "", "", ""), log, i18n),
		Transfer:  controllers.NewTransferController(services.NewTransferService(db, log), log, i18n),
		Employee:  controllers.NewEmployeeController(services.NewEmployeeService(db, log, nil), log, i18n),
		User:      controllers.NewUserController(services.NewUserService(db, log, nil), log, i18n),
		Supplier:  controllers.NewSupplierController(services.NewSupplierService(db, log, nil), log, i18n),
		Warehouse: controllers.NewWarehouseController(services.NewWarehouseService(db, log, nil), log, i18n),
		Invite:    controllers.NewInviteController(services.NewInviteService(db, log), log, i18n),
		Dashboard: controllers.NewDashboardController(services.NewDashboardService(db, log), log, i18n),
		Accounts:  auth,
	}, log))
	t.Cleanup(func() { middleware.UseAccountChecker(nil) })

	return &apiClient{t: t, app: app, db: db}
}

func (c *apiClient) do(method, path string, body interface{}) (int, envelope) {
	c.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, config.MAIN_ROUTES+path, reader)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.lang != "" {
		req.Header.Set("Accept-Language", c.lang)
	}
	resp, err := c.app.Test(req, -1)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	var env envelope
	if strings.HasPrefix(resp.Header.Get("Content-Type"), fiber.MIMEApplicationJSON) {
		require.NoError(c.t, json.NewDecoder(resp.Body).Decode(&env))
	}
	return resp.StatusCode, env
}

func (c *apiClient) decode(env envelope, dst interface{}) {
	c.t.Helper()
	require.NoError(c.t, json.Unmarshal(env.Data, dst))
}

// registerAdmin redeems the bootstrap invite and keeps the issued token.
func (c *apiClient) registerAdmin() {
	c.t.Helper()
	status, env := c.do(http.MethodPost, "/auth/register", fiber.Map{
		"invite_code":      "BOOTSTRAP1",
		"login":            "root_admin",
		"password":         "secret1",
		"password_confirm": "secret1",
	})
	require.Equal(c.t, fiber.StatusCreated, status, env.Message)
	var data struct {
		AccessToken string           `json:"access_token"`
		Session     services.Session `json:"session"`
	}
	c.decode(env, &data)
	require.True(c.t, data.Session.IsAdmin)
	c.token = data.AccessToken
}

func TestRegisterAndLogin(t *testing.T) {
	api := newAPI(t)

	status, env := api.do(http.MethodPost, "/auth/register", fiber.Map{
		"invite_code": "BOOTSTRAP1", "login": "root_admin", "password": "secret1", "password_confirm": "other",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, services.CodeValidation, env.Code)

	api.registerAdmin()

	api.token = ""
	status, env = api.do(http.MethodPost, "/auth/register", fiber.Map{
		"invite_code": "BOOTSTRAP1", "login": "second", "password": "secret1",
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, services.CodeInvalidInvite, env.Code)
	assert.False(t, env.Success)

	status, env = api.do(http.MethodPost, "/auth/login", fiber.Map{"login": "root_admin", "password": "wrong"})
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, services.CodeInvalidCredentials, env.Code)

	status, env = api.do(http.MethodPost, "/auth/login", fiber.Map{"login": "root_admin", "password": "secret1"})
	require.Equal(t, fiber.StatusOK, status)
	assert.True(t, env.Success)
	var data struct {
		AccessToken string `json:"access_token"`
	}
	api.decode(env, &data)
	api.token = data.AccessToken

	status, env = api.do(http.MethodGet, "/auth/me", nil)
	require.Equal(t, fiber.StatusOK, status)
	var session services.Session
	api.decode(env, &session)
	assert.Equal(t, "root_admin", session.Login)
}

func TestProtectedRoutes(t *testing.T) {
	api := newAPI(t)

	status, _ := api.do(http.MethodGet, "/inventory", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	api.registerAdmin()
	status, env := api.do(http.MethodPost, "/warehouses", fiber.Map{"name": "Central", "address": "1 Main", "floor_space": 100})
	require.Equal(t, fiber.StatusCreated, status, env.Message)
	var warehouse models.Warehouse
	api.decode(env, &warehouse)

	status, env = api.do(http.MethodPost, "/employees", fiber.Map{
		"first_name": "Anna", "last_name": "Smirnova", "passport_series": "4321", "passport_number": "098765",
		"phone": "79991112233", "post": "Loader", "warehouse_ids": []uint{warehouse.ID},
	})
	require.Equal(t, fiber.StatusCreated, status, env.Message)
	var employee models.Employee
	api.decode(env, &employee)

	status, env = api.do(http.MethodPost, "/invite-codes", fiber.Map{"code": "ANNA12345", "employee_id": employee.ID, "role": "employee"})
	require.Equal(t, fiber.StatusCreated, status, env.Message)

	adminToken := api.token
	api.token = ""
	status, env = api.do(http.MethodPost, "/auth/register", fiber.Map{"invite_code": "ANNA12345", "login": "anna", "password": "secret1"})
	require.Equal(t, fiber.StatusCreated, status, env.Message)
	var data struct {
		AccessToken string `json:"access_token"`
	}
	api.decode(env, &data)
	api.token = data.AccessToken

	status, env = api.do(http.MethodGet, "/users", nil)
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "forbidden", env.Code)

	status, _ = api.do(http.MethodGet, "/inventory", nil)
	assert.Equal(t, fiber.StatusOK, status)

	api.token = adminToken
	status, env = api.do(http.MethodGet, "/users", nil)
	require.Equal(t, fiber.StatusOK, status)
	var users []map[string]interface{}
	api.decode(env, &users)
	assert.Len(t, users, 2)

	status, env = api.do(http.MethodPut, "/users/anna", fiber.Map{"role": "employee", "is_active": false})
	require.Equal(t, fiber.StatusOK, status, env.Message)

	api.token = data.AccessToken
	status, env = api.do(http.MethodGet, "/inventory", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, services.CodeAccountDeactivated, env.Code)
}

func TestInventoryFlow(t *testing.T) {
	api := newAPI(t)
	api.registerAdmin()

	status, env := api.do(http.MethodPost, "/warehouses", fiber.Map{"name": "Central", "address": "1 Main", "floor_space": 100})
	require.Equal(t, fiber.StatusCreated, status, env.Message)
	var central models.Warehouse
	api.decode(env, &central)

	status, env = api.do(http.MethodPost, "/warehouses", fiber.Map{"name": "North", "address": "2 Main", "floor_space": 50})
	require.Equal(t, fiber.StatusCreated, status, env.Message)
	var north models.Warehouse
	api.decode(env, &north)

	status, env = api.do(http.MethodPost, "/warehouses", fiber.Map{"name": "North", "address": "3 Main", "floor_space": 50})
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, services.CodeWarehouseExists, env.Code)

	status, env = api.do(http.MethodPost, "/products", fiber.Map{"name": "Bolt", "sku": "B-1"})
	require.Equal(t, fiber.StatusCreated, status, env.Message)
	var bolt models.Product
	api.decode(env, &bolt)

	status, env = api.do(http.MethodPost, "/suppliers", fiber.Map{"name": "Acme", "phone": "70000000000", "email": "acme@example.com"})
	require.Equal(t, fiber.StatusCreated, status, env.Message)
	var supplier models.Supplier
	api.decode(env, &supplier)

	status, env = api.do(http.MethodPost, "/inventory/stock", fiber.Map{"product_id": bolt.ID, "warehouse_id": central.ID})
	require.Equal(t, fiber.StatusCreated, status, env.Message)

	status, env = api.do(http.MethodPost, "/shipments", fiber.Map{
		"supplier_id": supplier.ID, "warehouse_id": central.ID,
		"lines": []fiber.Map{{"product_id": bolt.ID, "quantity": 10}},
	})
	require.Equal(t, fiber.StatusCreated, status, env.Message)

	status, env = api.do(http.MethodPost, "/inventory/adjust", fiber.Map{"product_name": "Bolt", "warehouse_name": "Central", "delta": 5})
	require.Equal(t, fiber.StatusOK, status, env.Message)
	var inv models.Inventory
	api.decode(env, &inv)
	assert.Equal(t, int64(15), inv.Quantity)

	status, env = api.do(http.MethodPost, "/inventory/adjust", fiber.Map{"product_name": "Bolt", "warehouse_name": "Central", "delta": -20})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, services.CodeInsufficientQuantity, env.Code)
	assert.Equal(t, "Insufficient quantity", env.Message)

	api.lang = "ru"
	_, ruEnv := api.do(http.MethodPost, "/inventory/adjust", fiber.Map{"product_name": "Bolt", "warehouse_name": "Central", "delta": -20})
	assert.Equal(t, "Недостаточное количество", ruEnv.Message)
	api.lang = ""

	status, env = api.do(http.MethodPost, "/transfers", fiber.Map{
		"from_warehouse_id": central.ID, "to_warehouse_id": north.ID,
		"lines": []fiber.Map{{"product_id": bolt.ID, "quantity": 100}},
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, services.CodeNotEnoughAtSource, env.Code)

	status, env = api.do(http.MethodPost, "/transfers", fiber.Map{
		"from_warehouse_id": central.ID, "to_warehouse_id": north.ID,
		"lines": []fiber.Map{{"product_id": bolt.ID, "quantity": 4}},
	})
	require.Equal(t, fiber.StatusCreated, status, env.Message)
	var details services.TransferDetails
	api.decode(env, &details)

	status, env = api.do(http.MethodGet, fmt.Sprintf("/transfers/%d/lines", details.Transfer.ID), nil)
	require.Equal(t, fiber.StatusOK, status, env.Message)

	status, env = api.do(http.MethodGet, fmt.Sprintf("/inventory?warehouse_ids=%d", north.ID), nil)
	require.Equal(t, fiber.StatusOK, status)
	var listing struct {
		Inventories []struct {
			ProductName string `json:"product_name"`
			Quantity    int64  `json:"quantity"`
		} `json:"inventories"`
	}
	api.decode(env, &listing)
	require.Len(t, listing.Inventories, 1)
	assert.Equal(t, int64(4), listing.Inventories[0].Quantity)

	status, _ = api.do(http.MethodGet, "/inventory?warehouse_ids=abc", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, env = api.do(http.MethodDelete, fmt.Sprintf("/products/%d", bolt.ID), nil)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, services.CodeProductInUse, env.Code)

	status, env = api.do(http.MethodGet, "/inventory/movements", nil)
	require.Equal(t, fiber.StatusOK, status)
	var history struct {
		Movements []map[string]interface{} `json:"movements"`
	}
	api.decode(env, &history)
	assert.Len(t, history.Movements, 4)
}

func TestExportReturnsWorkbook(t *testing.T) {
	api := newAPI(t)
	api.registerAdmin()

	req := httptest.NewRequest(http.MethodGet, config.MAIN_ROUTES+"/inventory/export", nil)
	req.Header.Set("Authorization", "Bearer "+api.token)
	resp, err := api.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, utils.XLSXContentType, resp.Header.Get("Content-Type"))
}
