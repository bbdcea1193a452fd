package repositories

import (
	"time"
	"warehouse-app/models"

	"gorm.io/gorm"
)

type TransferRepository struct {
	db *gorm.DB
}

func NewTransferRepository(db *gorm.DB) *TransferRepository {
	return &TransferRepository{db}
}

func (r *TransferRepository) Create(transfer *models.Transfer) error {
	return r.db.Omit("Lines").Create(transfer).Error
}

func (r *TransferRepository) CreateLine(line *models.TransferLine) error {
	return r.db.Create(line).Error
}

func (r *TransferRepository) FindByID(id uint) (*models.Transfer, error) {
	var t models.Transfer
	if err := r.db.First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

type TransferRow struct {
	ID                uint      `json:"id"`
	DocumentNo        string    `json:"document_no"`
	Date              time.Time `json:"date"`
	FromWarehouseID   uint      `json:"from_warehouse_id"`
	FromWarehouseName string    `json:"from_warehouse_name"`
	ToWarehouseID     uint      `json:"to_warehouse_id"`
	ToWarehouseName   string    `json:"to_warehouse_name"`
	EmployeeID        uint      `json:"employee_id"`
	EmployeeName      string    `json:"employee_name"`
	FirstName         string    `json:"-"`
	LastName          string    `json:"-"`
}

// List returns transfers newest first. When warehouseIDs is not empty a
// transfer is included if either side is in the set.
func (r *TransferRepository) List(warehouseIDs []uint) ([]TransferRow, error) {
	q := r.db.Table("transfer AS t").
		Select("t.id, t.document_no, t.date, t.from_warehouse_id, fw.name AS from_warehouse_name, t.to_warehouse_id, tw.name AS to_warehouse_name, t.employee_id, e.first_name, e.last_name").
		Joins("INNER JOIN warehouse fw ON fw.id = t.from_warehouse_id").
		Joins("INNER JOIN warehouse tw ON tw.id = t.to_warehouse_id").
		Joins("INNER JOIN employee e ON e.id = t.employee_id")
	if len(warehouseIDs) > 0 {
		q = q.Where("t.from_warehouse_id IN ? OR t.to_warehouse_id IN ?", warehouseIDs, warehouseIDs)
	}

	var rows []TransferRow
	if err := q.Order("t.date DESC, t.id DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].EmployeeName = rows[i].LastName + " " + rows[i].FirstName
	}
	return rows, nil
}

func (r *TransferRepository) Lines(transferID uint) ([]LineRow, error) {
	var rows []LineRow
	err := r.db.Table("transfer_line AS l").
		Select("l.id, l.product_id, p.name AS product_name, p.sku, l.quantity").
		Joins("INNER JOIN product p ON p.id = l.product_id").
		Where("l.transfer_id = ?", transferID).
		Order("l.id").
		Scan(&rows).Error
	return rows, err
}
