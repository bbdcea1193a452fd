package models

import (
	"time"
	"warehouse-app/controllers/idgen"
	"warehouse-app/types"

	"gorm.io/gorm"
)

const (
	MovementAdjustment  = "adjustment"
	MovementShipment    = "shipment"
	MovementTransferOut = "transfer_out"
	MovementTransferIn  = "transfer_in"
)

// InventoryMovement records one applied change to an inventory row.
type InventoryMovement struct {
	ID             types.SnowflakeID `json:"id" gorm:"primaryKey;autoIncrement:false"`
	ProductID      uint              `json:"product_id" gorm:"not null;index"`
	WarehouseID    uint              `json:"warehouse_id" gorm:"not null;index"`
	QuantityChange int64             `json:"quantity_change" gorm:"not null"`
	QuantityAfter  int64             `json:"quantity_after" gorm:"not null"`
	Reason         string            `json:"reason" gorm:"size:20;not null"`
	ReferenceNo    string            `json:"reference_no" gorm:"size:32;index"`
	EmployeeID     uint              `json:"employee_id"`
	CreatedAt      time.Time         `json:"created_at" gorm:"index"`
}

func (m *InventoryMovement) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == 0 {
		m.ID = types.SnowflakeID(idgen.GenerateID())
	}
	return
}
