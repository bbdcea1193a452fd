package repositories

import (
	"time"
	"warehouse-app/models"

	"gorm.io/gorm"
)

type ShippingRepository struct {
	db *gorm.DB
}

func NewShippingRepository(db *gorm.DB) *ShippingRepository {
	return &ShippingRepository{db}
}

func (r *ShippingRepository) Create(shipment *models.Shipment) error {
	return r.db.Omit("Lines").Create(shipment).Error
}

func (r *ShippingRepository) CreateLine(line *models.ShipmentLine) error {
	return r.db.Create(line).Error
}

func (r *ShippingRepository) FindByID(id uint) (*models.Shipment, error) {
	var s models.Shipment
	if err := r.db.First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

type ShipmentRow struct {
	ID            uint      `json:"id"`
	DocumentNo    string    `json:"document_no"`
	Date          time.Time `json:"date"`
	SupplierID    uint      `json:"supplier_id"`
	SupplierName  string    `json:"supplier_name"`
	WarehouseID   uint      `json:"warehouse_id"`
	WarehouseName string    `json:"warehouse_name"`
	EmployeeID    uint      `json:"employee_id"`
	EmployeeName  string    `json:"employee_name"`
	FirstName     string    `json:"-"`
	LastName      string    `json:"-"`
}

func (r *ShippingRepository) baseQuery() *gorm.DB {
	return r.db.Table("shipment AS s").
		Select("s.id, s.document_no, s.date, s.supplier_id, sp.name AS supplier_name, s.warehouse_id, w.name AS warehouse_name, s.employee_id, e.first_name, e.last_name").
		Joins("INNER JOIN supplier sp ON sp.id = s.supplier_id").
		Joins("INNER JOIN warehouse w ON w.id = s.warehouse_id").
		Joins("INNER JOIN employee e ON e.id = s.employee_id")
}

// List returns shipments newest first, limited to warehouseIDs when it is not empty.
func (r *ShippingRepository) List(warehouseIDs []uint) ([]ShipmentRow, error) {
	q := r.baseQuery()
	if len(warehouseIDs) > 0 {
		q = q.Where("s.warehouse_id IN ?", warehouseIDs)
	}
	return scanShipments(q.Order("s.date DESC, s.id DESC"))
}

// Upcoming returns shipments dated after the given day, soonest first.
func (r *ShippingRepository) Upcoming(after time.Time, warehouseIDs []uint) ([]ShipmentRow, error) {
	q := r.baseQuery().Where("s.date >= ?", after)
	if len(warehouseIDs) > 0 {
		q = q.Where("s.warehouse_id IN ?", warehouseIDs)
	}
	return scanShipments(q.Order("s.date ASC, s.id ASC"))
}

func scanShipments(q *gorm.DB) ([]ShipmentRow, error) {
	var rows []ShipmentRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].EmployeeName = rows[i].LastName + " " + rows[i].FirstName
	}
	return rows, nil
}

type LineRow struct {
	ID          uint   `json:"id"`
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	SKU         string `json:"sku"`
	Quantity    int64  `json:"quantity"`
}

func (r *ShippingRepository) Lines(shipmentID uint) ([]LineRow, error) {
	var rows []LineRow
	err := r.db.Table("shipment_line AS l").
		Select("l.id, l.product_id, p.name AS product_name, p.sku, l.quantity").
		Joins("INNER JOIN product p ON p.id = l.product_id").
		Where("l.shipment_id = ?", shipmentID).
		Order("l.id").
		Scan(&rows).Error
	return rows, err
}
