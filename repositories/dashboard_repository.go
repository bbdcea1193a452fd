package repositories

import (
	"time"

	"gorm.io/gorm"
)

type DashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) *DashboardRepository {
	return &DashboardRepository{db}
}

type DocumentSummary struct {
	ID            uint      `json:"id"`
	DocumentNo    string    `json:"document_no"`
	DocType       string    `json:"doc_type"`
	DocDate       string    `json:"doc_date"`
	WarehouseName string    `json:"warehouse_name"`
	TotItem       int       `json:"tot_item"`
	TotQty        int64     `json:"tot_qty"`
}

// RecentDocuments lists shipments and transfers dated on or after since,
// with their line counts and quantity totals, newest first.
func (r *DashboardRepository) RecentDocuments(since time.Time, warehouseIDs []uint) ([]DocumentSummary, error) {
	shipmentFilter, transferFilter := "", ""
	args := []interface{}{since}
	if len(warehouseIDs) > 0 {
		shipmentFilter = " AND s.warehouse_id IN ?"
		args = append(args, warehouseIDs)
	}
	args = append(args, since)
	if len(warehouseIDs) > 0 {
		transferFilter = " AND (t.from_warehouse_id IN ? OR t.to_warehouse_id IN ?)"
		args = append(args, warehouseIDs, warehouseIDs)
	}

	sql := `SELECT s.id, s.document_no, 'shipment' AS doc_type, s.date AS doc_date, w.name AS warehouse_name,
			COUNT(l.id) AS tot_item, SUM(l.quantity) AS tot_qty
		FROM shipment s
		INNER JOIN warehouse w ON w.id = s.warehouse_id
		INNER JOIN shipment_line l ON l.shipment_id = s.id
		WHERE s.date >= ?` + shipmentFilter + `
		GROUP BY s.id, s.document_no, s.date, w.name
		UNION ALL
		SELECT t.id, t.document_no, 'transfer' AS doc_type, t.date AS doc_date, w.name AS warehouse_name,
			COUNT(l.id) AS tot_item, SUM(l.quantity) AS tot_qty
		FROM transfer t
		INNER JOIN warehouse w ON w.id = t.from_warehouse_id
		INNER JOIN transfer_line l ON l.transfer_id = t.id
		WHERE t.date >= ?` + transferFilter + `
		GROUP BY t.id, t.document_no, t.date, w.name
		ORDER BY doc_date DESC, document_no DESC`

	var docs []DocumentSummary
	if err := r.db.Raw(sql, args...).Scan(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

type WarehouseStock struct {
	WarehouseID   uint   `json:"warehouse_id"`
	WarehouseName string `json:"warehouse_name"`
	Products      int    `json:"products"`
	TotalQuantity int64  `json:"total_quantity"`
}

// StockTotals sums inventory per warehouse. Warehouses without stock are included.
func (r *DashboardRepository) StockTotals(warehouseIDs []uint) ([]WarehouseStock, error) {
	q := r.db.Table("warehouse AS w").
		Select("w.id AS warehouse_id, w.name AS warehouse_name, COUNT(i.id) AS products, COALESCE(SUM(i.quantity), 0) AS total_quantity").
		Joins("LEFT JOIN inventory i ON i.warehouse_id = w.id")
	if len(warehouseIDs) > 0 {
		q = q.Where("w.id IN ?", warehouseIDs)
	}

	var rows []WarehouseStock
	if err := q.Group("w.id, w.name").Order("w.name").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
