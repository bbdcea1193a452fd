package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDashboard(t *testing.T) {
	f := newFixture(t)
	shipments := NewShipmentService(f.db, zap.NewNop())
	transfers := NewTransferService(f.db, zap.NewNop())
	svc := NewDashboardService(f.db, zap.NewNop())
	ctx := context.Background()

	_, err := shipments.CreateShipment(ctx, f.admin, ShipmentInput{
		SupplierID:  f.supplier.ID,
		WarehouseID: f.central.ID,
		Lines:       []LineInput{{ProductID: f.bolt.ID, Quantity: 10}, {ProductID: f.nut.ID, Quantity: 4}},
	})
	require.NoError(t, err)
	_, err = transfers.CreateTransfer(ctx, f.admin, TransferInput{
		FromWarehouseID: f.central.ID,
		ToWarehouseID:   f.north.ID,
		Lines:           []LineInput{{ProductID: f.bolt.ID, Quantity: 3}},
	})
	require.NoError(t, err)

	dashboard, err := svc.GetDashboard(ctx, f.admin)
	require.NoError(t, err)
	require.Len(t, dashboard.Stock, 2)
	assert.Equal(t, "Central", dashboard.Stock[0].WarehouseName)
	assert.Equal(t, 2, dashboard.Stock[0].Products)
	assert.Equal(t, int64(11), dashboard.Stock[0].TotalQuantity)
	assert.Equal(t, int64(3), dashboard.Stock[1].TotalQuantity)

	require.Len(t, dashboard.Documents, 2)
	byType := map[string]int64{}
	for _, d := range dashboard.Documents {
		byType[d.DocType] = d.TotQty
	}
	assert.Equal(t, map[string]int64{"shipment": 14, "transfer": 3}, byType)

	staff := Session{EmployeeID: f.keeper.ID, WarehouseIDs: []uint{f.north.ID}}
	dashboard, err = svc.GetDashboard(ctx, staff)
	require.NoError(t, err)
	require.Len(t, dashboard.Stock, 1)
	require.Len(t, dashboard.Documents, 1)
	assert.Equal(t, "transfer", dashboard.Documents[0].DocType)

	dashboard, err = svc.GetDashboard(ctx, Session{})
	require.NoError(t, err)
	assert.Empty(t, dashboard.Stock)
	assert.Empty(t, dashboard.Documents)
}
