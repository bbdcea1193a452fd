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

type TransferService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewTransferService(db *gorm.DB, log *zap.Logger) *TransferService {
	return &TransferService{db: db, log: log.Named("transfer")}
}

type TransferInput struct {
	FromWarehouseID uint        `json:"from_warehouse_id" validate:"required"`
	ToWarehouseID   uint        `json:"to_warehouse_id" validate:"required"`
	Date            *time.Time  `json:"date"`
	Lines           []LineInput `json:"lines" validate:"required,min=1,dive"`
}

type TransferDetails struct {
	Transfer models.Transfer       `json:"transfer"`
	Lines    []repositories.LineRow `json:"lines"`
}

// CreateTransfer moves stock line by line from one warehouse to another.
// Any failing line aborts the transaction, so no header, line or count
// change from this call survives.
func (s *TransferService) CreateTransfer(ctx context.Context, session Session, in TransferInput) (*TransferDetails, error) {
	if err := utils.ValidateStruct(in); err != nil {
		return nil, validationError(err.Error())
	}
	if in.FromWarehouseID == in.ToWarehouseID {
		return nil, validationErrorCode(CodeSameWarehouse, "source and destination warehouses must differ")
	}
	if appErr := validateLines(in.Lines); appErr != nil {
		return nil, appErr
	}
	if !session.CanAccess(in.FromWarehouseID) {
		return nil, businessError(CodeWarehouseForbidden, "no access to warehouse", nil)
	}

	date := time.Now()
	if in.Date != nil && !in.Date.IsZero() {
		date = *in.Date
	}

	details := &TransferDetails{}
	err := runInTx(ctx, s.db, s.log, "create_transfer", func(tx *gorm.DB) error {
		master := repositories.NewMasterRepository(tx)
		inventory := repositories.NewInventoryRepository(tx)
		transfers := repositories.NewTransferRepository(tx)

		for _, id := range []uint{in.FromWarehouseID, in.ToWarehouseID} {
			if _, err := master.FindWarehouse(id); err != nil {
				if isNotFound(err) {
					return businessError(CodeWarehouseNotFound, "warehouse not found", nil)
				}
				return err
			}
		}
		products, err := productsByID(master, in.Lines)
		if err != nil {
			return err
		}

		transfer := models.Transfer{
			DocumentNo:      idgen.DocumentNo("TRF"),
			FromWarehouseID: in.FromWarehouseID,
			ToWarehouseID:   in.ToWarehouseID,
			EmployeeID:      session.EmployeeID,
			Date:            date,
		}
		if err := transfers.Create(&transfer); err != nil {
			return err
		}

		now := time.Now()
		for _, line := range in.Lines {
			product := products[line.ProductID]
			params := map[string]interface{}{"Product": product.Name}

			ok, err := inventory.ApplyDelta(line.ProductID, in.FromWarehouseID, -line.Quantity, now)
			if err != nil {
				return err
			}
			if !ok {
				return businessError(CodeNotEnoughAtSource, "requesting more than available", params)
			}
			source, err := inventory.Find(line.ProductID, in.FromWarehouseID)
			if err != nil {
				return err
			}

			if err := inventory.Ensure(line.ProductID, in.ToWarehouseID, now); err != nil {
				return err
			}
			ok, err = inventory.ApplyDelta(line.ProductID, in.ToWarehouseID, line.Quantity, now)
			if err != nil {
				return err
			}
			if !ok {
				return businessError(CodeTooLargeAtDest, "result too large at destination", params)
			}
			dest, err := inventory.Find(line.ProductID, in.ToWarehouseID)
			if err != nil {
				return err
			}

			tl := models.TransferLine{TransferID: transfer.ID, ProductID: line.ProductID, Quantity: line.Quantity}
			if err := transfers.CreateLine(&tl); err != nil {
				return err
			}
			if err := inventory.InsertMovement(line.ProductID, in.FromWarehouseID, -line.Quantity, source.Quantity, models.MovementTransferOut, transfer.DocumentNo, session.EmployeeID); err != nil {
				return err
			}
			if err := inventory.InsertMovement(line.ProductID, in.ToWarehouseID, line.Quantity, dest.Quantity, models.MovementTransferIn, transfer.DocumentNo, session.EmployeeID); err != nil {
				return err
			}

			details.Lines = append(details.Lines, repositories.LineRow{
				ID: tl.ID, ProductID: product.ID, ProductName: product.Name, SKU: product.SKU, Quantity: tl.Quantity,
			})
		}

		details.Transfer = transfer
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("transfer created",
		zap.String("document_no", details.Transfer.DocumentNo),
		zap.Uint("from_warehouse_id", in.FromWarehouseID),
		zap.Uint("to_warehouse_id", in.ToWarehouseID),
		zap.Int("lines", len(details.Lines)))
	return details, nil
}

// GetTransfers lists transfers touching any visible warehouse, newest first.
func (s *TransferService) GetTransfers(ctx context.Context, session Session, warehouseIDs []uint) ([]repositories.TransferRow, error) {
	ids, visible := session.scope(warehouseIDs)
	if !visible {
		return []repositories.TransferRow{}, nil
	}
	rows, err := repositories.NewTransferRepository(s.db.WithContext(ctx)).List(ids)
	if err != nil {
		return nil, classify(s.log, "get_transfers", err)
	}
	return rows, nil
}

func (s *TransferService) GetTransferDetails(ctx context.Context, session Session, transferID uint) (*TransferDetails, error) {
	repo := repositories.NewTransferRepository(s.db.WithContext(ctx))
	transfer, err := repo.FindByID(transferID)
	if err != nil {
		if isNotFound(err) {
			return nil, businessError(CodeTransferNotFound, "transfer not found", nil)
		}
		return nil, classify(s.log, "get_transfer_details", err)
	}
	if !session.CanAccess(transfer.FromWarehouseID) && !session.CanAccess(transfer.ToWarehouseID) {
		return nil, businessError(CodeTransferNotFound, "transfer not found", nil)
	}
	lines, err := repo.Lines(transferID)
	if err != nil {
		return nil, classify(s.log, "get_transfer_details", err)
	}
	return &TransferDetails{Transfer: *transfer, Lines: lines}, nil
}
