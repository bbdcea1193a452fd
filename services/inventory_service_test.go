package services

import (
	"context"
	"testing"
	"warehouse-app/models"
	"warehouse-app/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestApplyDeltaAddsAndRejectsShortfall(t *testing.T) {
	f := newFixture(t)
	svc := NewInventoryService(f.db, zap.NewNop(), nil)
	ctx := context.Background()
	f.stock(t, f.bolt, f.central, 10)

	inv, err := svc.ApplyDelta(ctx, f.staff, AdjustInput{ProductName: "Bolt", WarehouseName: "Central", Delta: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(15), inv.Quantity)

	_, err = svc.ApplyDelta(ctx, f.staff, AdjustInput{ProductName: "Bolt", WarehouseName: "Central", Delta: -20})
	appErr := requireCode(t, err, CodeInsufficientQuantity)
	assert.Equal(t, KindBusiness, appErr.Kind)
	assert.Equal(t, int64(15), f.quantity(t, f.bolt, f.central))
}

func TestApplyDeltaCeiling(t *testing.T) {
	f := newFixture(t)
	svc := NewInventoryService(f.db, zap.NewNop(), nil)
	ctx := context.Background()
	f.stock(t, f.bolt, f.central, models.MaxQuantity-1)

	_, err := svc.ApplyDelta(ctx, f.admin, AdjustInput{ProductName: "Bolt", WarehouseName: "Central", Delta: 2})
	requireCode(t, err, CodeResultTooLarge)
	assert.Equal(t, models.MaxQuantity-1, f.quantity(t, f.bolt, f.central))

	inv, err := svc.ApplyDelta(ctx, f.admin, AdjustInput{ProductName: "Bolt", WarehouseName: "Central", Delta: 1})
	require.NoError(t, err)
	assert.Equal(t, models.MaxQuantity, inv.Quantity)

	_, err = svc.ApplyDelta(ctx, f.admin, AdjustInput{ProductName: "Bolt", WarehouseName: "Central", Delta: models.MaxQuantity + 1})
	requireCode(t, err, CodeResultTooLarge)
}

func TestApplyDeltaDrainsToZero(t *testing.T) {
	f := newFixture(t)
	svc := NewInventoryService(f.db, zap.NewNop(), nil)
	f.stock(t, f.nut, f.central, 7)

	inv, err := svc.ApplyDelta(context.Background(), f.admin, AdjustInput{ProductName: "Nut", WarehouseName: "Central", Delta: -7})
	require.NoError(t, err)
	assert.Zero(t, inv.Quantity)
}

func TestApplyDeltaRejections(t *testing.T) {
	f := newFixture(t)
	svc := NewInventoryService(f.db, zap.NewNop(), nil)
	ctx := context.Background()
	f.stock(t, f.bolt, f.north, 3)

	_, err := svc.ApplyDelta(ctx, f.admin, AdjustInput{ProductName: "Bolt", WarehouseName: "North", Delta: 0})
	appErr := requireCode(t, err, CodeValidation)
	assert.Equal(t, KindValidation, appErr.Kind)

	_, err = svc.ApplyDelta(ctx, f.admin, AdjustInput{ProductName: "Nut", WarehouseName: "North", Delta: 1})
	requireCode(t, err, CodeInventoryNotFound)

	_, err = svc.ApplyDelta(ctx, f.admin, AdjustInput{ProductName: "Screw", WarehouseName: "North", Delta: 1})
	requireCode(t, err, CodeInventoryNotFound)

	_, err = svc.ApplyDelta(ctx, f.staff, AdjustInput{ProductName: "Bolt", WarehouseName: "North", Delta: 1})
	requireCode(t, err, CodeWarehouseForbidden)

	_, err = svc.ApplyDelta(ctx, f.admin, AdjustInput{ProductName: "Bolt", WarehouseName: "North", Delta: -3_000_000_000})
	requireCode(t, err, CodeInsufficientQuantity)
	_, err = svc.ApplyDelta(ctx, f.admin, AdjustInput{ProductName: "Bolt", WarehouseName: "North", Delta: 3_000_000_000})
	requireCode(t, err, CodeResultTooLarge)
	assert.Equal(t, int64(3), f.quantity(t, f.bolt, f.north))
}

func TestApplyDeltaRecordsMovement(t *testing.T) {
	f := newFixture(t)
	svc := NewInventoryService(f.db, zap.NewNop(), nil)
	ctx := context.Background()
	f.stock(t, f.bolt, f.central, 10)

	_, err := svc.ApplyDelta(ctx, f.staff, AdjustInput{ProductName: "Bolt", WarehouseName: "Central", Delta: -4})
	require.NoError(t, err)
	_, err = svc.ApplyDelta(ctx, f.staff, AdjustInput{ProductName: "Bolt", WarehouseName: "Central", Delta: -40})
	require.Error(t, err)

	rows, err := svc.ListMovements(ctx, f.staff, repositories.MovementFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(-4), rows[0].QuantityChange)
	assert.Equal(t, int64(6), rows[0].QuantityAfter)
	assert.Equal(t, models.MovementAdjustment, rows[0].Reason)
	assert.Equal(t, "Central", rows[0].WarehouseName)
}

func TestGetInventoryScopesToSession(t *testing.T) {
	f := newFixture(t)
	svc := NewInventoryService(f.db, zap.NewNop(), nil)
	ctx := context.Background()
	f.stock(t, f.bolt, f.central, 1)
	f.stock(t, f.nut, f.central, 2)
	f.stock(t, f.bolt, f.north, 3)

	all, err := svc.GetInventory(ctx, f.admin, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "Central", all[0].WarehouseName)
	assert.Equal(t, "Bolt", all[0].ProductName)

	north, err := svc.GetInventory(ctx, f.admin, []uint{f.north.ID})
	require.NoError(t, err)
	require.Len(t, north, 1)
	assert.Equal(t, int64(3), north[0].Quantity)

	own, err := svc.GetInventory(ctx, f.staff, nil)
	require.NoError(t, err)
	assert.Len(t, own, 2)

	hidden, err := svc.GetInventory(ctx, f.staff, []uint{f.north.ID})
	require.NoError(t, err)
	assert.Empty(t, hidden)

	again, err := svc.GetInventory(ctx, f.admin, nil)
	require.NoError(t, err)
	assert.Equal(t, all, again)
}

func TestStockMembership(t *testing.T) {
	f := newFixture(t)
	svc := NewInventoryService(f.db, zap.NewNop(), nil)
	ctx := context.Background()
	in := StockInput{ProductID: f.nut.ID, WarehouseID: f.central.ID}

	inv, err := svc.AddProductToWarehouse(ctx, f.staff, in)
	require.NoError(t, err)
	assert.Zero(t, inv.Quantity)

	_, err = svc.AddProductToWarehouse(ctx, f.staff, in)
	requireCode(t, err, CodeStockExists)

	_, err = svc.AddProductToWarehouse(ctx, f.staff, StockInput{ProductID: f.nut.ID, WarehouseID: f.north.ID})
	requireCode(t, err, CodeWarehouseForbidden)

	_, err = svc.AddProductToWarehouse(ctx, f.admin, StockInput{ProductID: 999, WarehouseID: f.north.ID})
	requireCode(t, err, CodeProductNotFound)

	require.NoError(t, svc.RemoveProductFromWarehouse(ctx, f.staff, in))
	assert.Equal(t, int64(-1), f.quantity(t, f.nut, f.central))

	err = svc.RemoveProductFromWarehouse(ctx, f.staff, in)
	requireCode(t, err, CodeStockNotPresent)
}

func TestProductCatalog(t *testing.T) {
	f := newFixture(t)
	svc := NewInventoryService(f.db, zap.NewNop(), nil)
	ctx := context.Background()

	screw, err := svc.AddProduct(ctx, ProductInput{Name: "  Screw ", SKU: "S-1"})
	require.NoError(t, err)
	assert.Equal(t, "Screw", screw.Name)

	_, err = svc.AddProduct(ctx, ProductInput{Name: "Other", SKU: "S-1"})
	requireCode(t, err, CodeProductExists)

	_, err = svc.AddProduct(ctx, ProductInput{Name: "", SKU: "X"})
	requireCode(t, err, CodeValidation)

	products, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 3)

	f.stock(t, f.bolt, f.central, 0)
	err = svc.DeleteProduct(ctx, f.bolt.ID)
	requireCode(t, err, CodeProductInUse)

	require.NoError(t, svc.DeleteProduct(ctx, screw.ID))
	err = svc.DeleteProduct(ctx, screw.ID)
	requireCode(t, err, CodeProductNotFound)
}
