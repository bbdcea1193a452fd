package models

import "time"

// MaxQuantity is the ceiling for any inventory row.
const MaxQuantity int64 = 2_000_000_000

// Inventory holds the count of one product at one warehouse.
type Inventory struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	ProductID   uint       `json:"product_id" gorm:"not null;uniqueIndex:idx_inventory_product_warehouse"`
	Product     *Product   `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	WarehouseID uint       `json:"warehouse_id" gorm:"not null;uniqueIndex:idx_inventory_product_warehouse"`
	Warehouse   *Warehouse `json:"warehouse,omitempty" gorm:"foreignKey:WarehouseID"`
	Quantity    int64      `json:"quantity" gorm:"not null;default:0"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
