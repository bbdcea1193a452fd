package services

import (
	"context"
	"time"
	"warehouse-app/controllers/idgen"
	"warehouse-app/models"
	"warehouse-app/repositories"
	"warehouse-app/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ShipmentService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewShipmentService(db *gorm.DB, log *zap.Logger) *ShipmentService {
	return &ShipmentService{db: db, log: log.Named("shipment")}
}

type LineInput struct {
	ProductID uint  `json:"product_id" validate:"required"`
	Quantity  int64 `json:"quantity" validate:"gt=0,lte=2000000000"`
}

type ShipmentInput struct {
	SupplierID  uint        `json:"supplier_id" validate:"required"`
	WarehouseID uint        `json:"warehouse_id" validate:"required"`
	Date        *time.Time  `json:"date"`
	Lines       []LineInput `json:"lines" validate:"required,min=1,dive"`
}

// ShipmentReceipt is what CreateShipment hands back for display and mailing.
type ShipmentReceipt struct {
	Shipment      models.Shipment       `json:"shipment"`
	SupplierName  string                `json:"supplier_name"`
	SupplierEmail string                `json:"-"`
	WarehouseName string                `json:"warehouse_name"`
	Lines         []repositories.LineRow `json:"lines"`
}

func validateLines(lines []LineInput) *AppError {
	ids := make([]uint, len(lines))
	for i, l := range lines {
		ids[i] = l.ProductID
	}
	if utils.HasDuplicates(ids) {
		return validationErrorCode(CodeDuplicateProduct, "the same product appears more than once")
	}
	return nil
}

// CreateShipment records a supplier delivery and raises the destination
// counts. Header, lines and count changes commit together or not at all.
func (s *ShipmentService) CreateShipment(ctx context.Context, session Session, in ShipmentInput) (*ShipmentReceipt, error) {
	if err := utils.ValidateStruct(in); err != nil {
		return nil, validationError(err.Error())
	}
	if appErr := validateLines(in.Lines); appErr != nil {
		return nil, appErr
	}
	if !session.CanAccess(in.WarehouseID) {
		return nil, businessError(CodeWarehouseForbidden, "no access to warehouse", nil)
	}

	date := time.Now()
	if in.Date != nil && !in.Date.IsZero() {
		date = *in.Date
	}

	receipt := &ShipmentReceipt{}
	err := runInTx(ctx, s.db, s.log, "create_shipment", func(tx *gorm.DB) error {
		master := repositories.NewMasterRepository(tx)
		inventory := repositories.NewInventoryRepository(tx)
		shipping := repositories.NewShippingRepository(tx)

		supplier, err := master.FindSupplier(in.SupplierID)
		if err != nil {
			if isNotFound(err) {
				return businessError(CodeSupplierNotFound, "supplier not found", nil)
			}
			return err
		}
		warehouse, err := master.FindWarehouse(in.WarehouseID)
		if err != nil {
			if isNotFound(err) {
				return businessError(CodeWarehouseNotFound, "warehouse not found", nil)
			}
			return err
		}
		if _, err := repositories.NewEmployeeRepository(tx).FindByID(session.EmployeeID); err != nil {
			if isNotFound(err) {
				return businessError(CodeEmployeeNotFound, "employee not found", nil)
			}
			return err
		}

		products, err := productsByID(master, in.Lines)
		if err != nil {
			return err
		}

		// projected ceiling check before anything is written
		for _, line := range in.Lines {
			current := int64(0)
			if inv, err := inventory.Find(line.ProductID, warehouse.ID); err == nil {
				current = inv.Quantity
			} else if !isNotFound(err) {
				return err
			}
			if line.Quantity > models.MaxQuantity-current {
				return businessError(CodeResultTooLarge, "result too large", map[string]interface{}{"Product": products[line.ProductID].Name})
			}
		}

		shipment := models.Shipment{
			DocumentNo:  idgen.DocumentNo("SHP"),
			SupplierID:  supplier.ID,
			EmployeeID:  session.EmployeeID,
			WarehouseID: warehouse.ID,
			Date:        date,
		}
		if err := shipping.Create(&shipment); err != nil {
			return err
		}

		now := time.Now()
		for _, line := range in.Lines {
			if err := inventory.Ensure(line.ProductID, warehouse.ID, now); err != nil {
				return err
			}
			if _, err := adjust(tx, line.ProductID, warehouse.ID, line.Quantity, models.MovementShipment, shipment.DocumentNo, session.EmployeeID); err != nil {
				if appErr := AsAppError(err); appErr != nil && appErr.Params == nil {
					appErr.Params = map[string]interface{}{"Product": products[line.ProductID].Name}
				}
				return err
			}

			sl := models.ShipmentLine{ShipmentID: shipment.ID, ProductID: line.ProductID, Quantity: line.Quantity}
			if err := shipping.CreateLine(&sl); err != nil {
				return err
			}
			p := products[line.ProductID]
			receipt.Lines = append(receipt.Lines, repositories.LineRow{
				ID: sl.ID, ProductID: p.ID, ProductName: p.Name, SKU: p.SKU, Quantity: sl.Quantity,
			})
		}

		receipt.Shipment = shipment
		receipt.SupplierName = supplier.Name
		receipt.SupplierEmail = supplier.Email
		receipt.WarehouseName = warehouse.Name
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("shipment created",
		zap.String("document_no", receipt.Shipment.DocumentNo),
		zap.Uint("warehouse_id", receipt.Shipment.WarehouseID),
		zap.Int("lines", len(receipt.Lines)))
	return receipt, nil
}

// GetShipments lists shipments newest first.
func (s *ShipmentService) GetShipments(ctx context.Context, session Session, warehouseIDs []uint) ([]repositories.ShipmentRow, error) {
	ids, visible := session.scope(warehouseIDs)
	if !visible {
		return []repositories.ShipmentRow{}, nil
	}
	rows, err := repositories.NewShippingRepository(s.db.WithContext(ctx)).List(ids)
	if err != nil {
		return nil, classify(s.log, "get_shipments", err)
	}
	return rows, nil
}

// GetUpcomingShipments lists shipments dated after today.
func (s *ShipmentService) GetUpcomingShipments(ctx context.Context, session Session) ([]repositories.ShipmentRow, error) {
	ids, visible := session.scope(nil)
	if !visible {
		return []repositories.ShipmentRow{}, nil
	}
	now := time.Now()
	tomorrow := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
	rows, err := repositories.NewShippingRepository(s.db.WithContext(ctx)).Upcoming(tomorrow, ids)
	if err != nil {
		return nil, classify(s.log, "get_upcoming_shipments", err)
	}
	return rows, nil
}

func (s *ShipmentService) GetShipmentLines(ctx context.Context, session Session, shipmentID uint) ([]repositories.LineRow, error) {
	repo := repositories.NewShippingRepository(s.db.WithContext(ctx))
	shipment, err := repo.FindByID(shipmentID)
	if err != nil {
		if isNotFound(err) {
			return nil, businessError(CodeShipmentNotFound, "shipment not found", nil)
		}
		return nil, classify(s.log, "get_shipment_lines", err)
	}
	if !session.CanAccess(shipment.WarehouseID) {
		return nil, businessError(CodeShipmentNotFound, "shipment not found", nil)
	}
	rows, err := repo.Lines(shipmentID)
	if err != nil {
		return nil, classify(s.log, "get_shipment_lines", err)
	}
	return rows, nil
}

func productsByID(master *repositories.MasterRepository, lines []LineInput) (map[uint]models.Product, error) {
	ids := make([]uint, len(lines))
	for i, l := range lines {
		ids[i] = l.ProductID
	}
	products, err := master.ProductsByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			return nil, businessError(CodeProductNotFound, "product not found", map[string]interface{}{"ID": id})
		}
	}
	return byID, nil
}
