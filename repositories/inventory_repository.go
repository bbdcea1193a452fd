package repositories

import (
	"time"
	"warehouse-app/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db}
}

type InventoryRow struct {
	ProductID     uint      `json:"product_id"`
	ProductName   string    `json:"product_name"`
	SKU           string    `json:"sku"`
	WarehouseID   uint      `json:"warehouse_id"`
	WarehouseName string    `json:"warehouse_name"`
	Quantity      int64     `json:"quantity"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// List returns inventory rows, limited to warehouseIDs when it is not empty.
func (r *InventoryRepository) List(warehouseIDs []uint) ([]InventoryRow, error) {
	q := r.db.Table("inventory AS i").
		Select("i.product_id, p.name AS product_name, p.sku, i.warehouse_id, w.name AS warehouse_name, i.quantity, i.updated_at").
		Joins("INNER JOIN product p ON p.id = i.product_id").
		Joins("INNER JOIN warehouse w ON w.id = i.warehouse_id")
	if len(warehouseIDs) > 0 {
		q = q.Where("i.warehouse_id IN ?", warehouseIDs)
	}

	var rows []InventoryRow
	if err := q.Order("w.name, p.name").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *InventoryRepository) Find(productID, warehouseID uint) (*models.Inventory, error) {
	var inv models.Inventory
	err := r.db.Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).First(&inv).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *InventoryRepository) Create(inv *models.Inventory) error {
	return r.db.Create(inv).Error
}

// Ensure creates the row at zero when it does not exist yet.
func (r *InventoryRepository) Ensure(productID, warehouseID uint, now time.Time) error {
	inv := models.Inventory{ProductID: productID, WarehouseID: warehouseID, Quantity: 0, UpdatedAt: now}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}, {Name: "warehouse_id"}},
		DoNothing: true,
	}).Create(&inv).Error
}

// ApplyDelta adds delta to the row in a single conditional statement. It
// reports false, without writing, when the row is missing or the result would
// leave [0, MaxQuantity].
func (r *InventoryRepository) ApplyDelta(productID, warehouseID uint, delta int64, now time.Time) (bool, error) {
	res := r.db.Model(&models.Inventory{}).
		Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).
		Where("quantity + ? BETWEEN ? AND ?", delta, 0, models.MaxQuantity).
		Updates(map[string]interface{}{
			"quantity":   gorm.Expr("quantity + ?", delta),
			"updated_at": now,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *InventoryRepository) Delete(productID, warehouseID uint) (int64, error) {
	res := r.db.Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).Delete(&models.Inventory{})
	return res.RowsAffected, res.Error
}

func (r *InventoryRepository) CountByProduct(productID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Inventory{}).Where("product_id = ?", productID).Count(&count).Error
	return count, err
}

// InsertMovement records an applied inventory change. Use the repository
// bound to the transaction that changed the row.
func (r *InventoryRepository) InsertMovement(productID, warehouseID uint, change, after int64, reason, refNo string, actor uint) error {
	movement := models.InventoryMovement{
		ProductID:      productID,
		WarehouseID:    warehouseID,
		QuantityChange: change,
		QuantityAfter:  after,
		Reason:         reason,
		ReferenceNo:    refNo,
		EmployeeID:     actor,
		CreatedAt:      time.Now(),
	}
	return r.db.Create(&movement).Error
}

type MovementFilter struct {
	WarehouseIDs []uint
	ProductID    uint
	Limit        int
	Offset       int
}

type MovementRow struct {
	ID             int64     `json:"id,string"`
	ProductID      uint      `json:"product_id"`
	ProductName    string    `json:"product_name"`
	WarehouseID    uint      `json:"warehouse_id"`
	WarehouseName  string    `json:"warehouse_name"`
	QuantityChange int64     `json:"quantity_change"`
	QuantityAfter  int64     `json:"quantity_after"`
	Reason         string    `json:"reason"`
	ReferenceNo    string    `json:"reference_no"`
	EmployeeID     uint      `json:"employee_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// ListMovements returns the movement history, newest first.
func (r *InventoryRepository) ListMovements(f MovementFilter) ([]MovementRow, error) {
	q := r.db.Table("inventory_movement AS m").
		Select("m.id, m.product_id, p.name AS product_name, m.warehouse_id, w.name AS warehouse_name, m.quantity_change, m.quantity_after, m.reason, m.reference_no, m.employee_id, m.created_at").
		Joins("INNER JOIN product p ON p.id = m.product_id").
		Joins("INNER JOIN warehouse w ON w.id = m.warehouse_id")
	if len(f.WarehouseIDs) > 0 {
		q = q.Where("m.warehouse_id IN ?", f.WarehouseIDs)
	}
	if f.ProductID != 0 {
		q = q.Where("m.product_id = ?", f.ProductID)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}

	var rows []MovementRow
	if err := q.Order("m.created_at DESC, m.id DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
