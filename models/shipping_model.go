package models

import "time"

// Shipment is a receipt of goods from a supplier into one warehouse.
type Shipment struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	DocumentNo  string         `json:"document_no" gorm:"size:32;uniqueIndex;not null"`
	SupplierID  uint           `json:"supplier_id" gorm:"not null;index"`
	Supplier    *Supplier      `json:"supplier,omitempty" gorm:"foreignKey:SupplierID"`
	EmployeeID  uint           `json:"employee_id" gorm:"not null"`
	Employee    *Employee      `json:"employee,omitempty" gorm:"foreignKey:EmployeeID"`
	WarehouseID uint           `json:"warehouse_id" gorm:"not null;index"`
	Warehouse   *Warehouse     `json:"warehouse,omitempty" gorm:"foreignKey:WarehouseID"`
	Date        time.Time      `json:"date" gorm:"not null;index"`
	Lines       []ShipmentLine `json:"lines,omitempty" gorm:"foreignKey:ShipmentID"`
	CreatedAt   time.Time      `json:"created_at"`
}

type ShipmentLine struct {
	ID         uint     `json:"id" gorm:"primaryKey"`
	ShipmentID uint     `json:"shipment_id" gorm:"not null;index"`
	ProductID  uint     `json:"product_id" gorm:"not null"`
	Product    *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Quantity   int64    `json:"quantity" gorm:"not null"`
}

// Transfer moves stock between two warehouses.
type Transfer struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	DocumentNo      string         `json:"document_no" gorm:"size:32;uniqueIndex;not null"`
	FromWarehouseID uint           `json:"from_warehouse_id" gorm:"not null;index"`
	FromWarehouse   *Warehouse     `json:"from_warehouse,omitempty" gorm:"foreignKey:FromWarehouseID"`
	ToWarehouseID   uint           `json:"to_warehouse_id" gorm:"not null;index"`
	ToWarehouse     *Warehouse     `json:"to_warehouse,omitempty" gorm:"foreignKey:ToWarehouseID"`
	EmployeeID      uint           `json:"employee_id" gorm:"not null"`
	Employee        *Employee      `json:"employee,omitempty" gorm:"foreignKey:EmployeeID"`
	Date            time.Time      `json:"date" gorm:"not null;index"`
	Lines           []TransferLine `json:"lines,omitempty" gorm:"foreignKey:TransferID"`
	CreatedAt       time.Time      `json:"created_at"`
}

type TransferLine struct {
	ID         uint     `json:"id" gorm:"primaryKey"`
	TransferID uint     `json:"transfer_id" gorm:"not null;index"`
	ProductID  uint     `json:"product_id" gorm:"not null"`
	Product    *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Quantity   int64    `json:"quantity" gorm:"not null"`
}
