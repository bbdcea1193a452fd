package services

import (
	"testing"
	"time"
	"warehouse-app/config"
	"warehouse-app/database"
	"warehouse-app/migration"
	"warehouse-app/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	central  models.Warehouse
	north    models.Warehouse
	bolt     models.Product
	nut      models.Product
	supplier models.Supplier
	keeper   models.Employee
	admin    Session
	staff    Session
}

// newFixture opens a private in-memory database with two warehouses, two
// products, one supplier and a storekeeper assigned to Central.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	config.BcryptCost = bcrypt.MinCost

	db, err := gorm.Open(sqlite.Open(":memory:"), database.GormConfig(zap.NewNop()))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, migration.Migrate(db))
	require.NoError(t, database.RunSeeders(db, zap.NewNop()))

	f := &fixture{db: db}
	f.central = models.Warehouse{Name: "Central", Address: "1 Central Street", FloorSpace: 1000}
	f.north = models.Warehouse{Name: "North", Address: "2 North Street", FloorSpace: 500}
	require.NoError(t, db.Create(&f.central).Error)
	require.NoError(t, db.Create(&f.north).Error)

	f.bolt = models.Product{Name: "Bolt", SKU: "B-1"}
	f.nut = models.Product{Name: "Nut", SKU: "N-1"}
	require.NoError(t, db.Create(&f.bolt).Error)
	require.NoError(t, db.Create(&f.nut).Error)

	f.supplier = models.Supplier{Name: "Acme", Phone: "70000000000", Email: "acme@example.com"}
	require.NoError(t, db.Create(&f.supplier).Error)

	var post models.Post
	require.NoError(t, db.Where("name = ?", "Storekeeper").First(&post).Error)
	f.keeper = models.Employee{
		FirstName:        "Ivan",
		LastName:         "Petrov",
		PassportSeries:   "1234",
		PassportNumber:   "567890",
		Phone:            "79990000000",
		PostID:           post.ID,
		DateOfEmployment: time.Now(),
		IsActive:         true,
		Warehouses:       []models.Warehouse{f.central},
	}
	require.NoError(t, db.Create(&f.keeper).Error)

	f.admin = Session{UserID: 1, EmployeeID: f.keeper.ID, Login: "admin", Role: config.AdminRole, IsAdmin: true}
	f.staff = Session{UserID: 2, EmployeeID: f.keeper.ID, Login: "keeper", Role: database.EmployeeRole, WarehouseIDs: []uint{f.central.ID}}
	return f
}

func (f *fixture) stock(t *testing.T, product models.Product, warehouse models.Warehouse, qty int64) {
	t.Helper()
	inv := models.Inventory{ProductID: product.ID, WarehouseID: warehouse.ID, Quantity: qty, UpdatedAt: time.Now()}
	require.NoError(t, f.db.Create(&inv).Error)
}

// quantity returns -1 when the row does not exist.
func (f *fixture) quantity(t *testing.T, product models.Product, warehouse models.Warehouse) int64 {
	t.Helper()
	var inv models.Inventory
	err := f.db.Where("product_id = ? AND warehouse_id = ?", product.ID, warehouse.ID).First(&inv).Error
	if err == gorm.ErrRecordNotFound {
		return -1
	}
	require.NoError(t, err)
	return inv.Quantity
}

func (f *fixture) count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(model).Count(&n).Error)
	return n
}

func requireCode(t *testing.T, err error, code string) *AppError {
	t.Helper()
	require.Error(t, err)
	appErr := AsAppError(err)
	require.NotNil(t, appErr, "expected *AppError, got %v", err)
	require.Equal(t, code, appErr.Code)
	return appErr
}
