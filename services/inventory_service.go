package services

import (
	"context"
	"strings"
	"time"
	"warehouse-app/cache"
	"warehouse-app/models"
	"warehouse-app/repositories"
	"warehouse-app/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type InventoryService struct {
	db    *gorm.DB
	log   *zap.Logger
	cache *cache.Cache
}

func NewInventoryService(db *gorm.DB, log *zap.Logger, c *cache.Cache) *InventoryService {
	return &InventoryService{db: db, log: log.Named("inventory"), cache: c}
}

type AdjustInput struct {
	ProductName   string `json:"product_name" validate:"required,notblank"`
	WarehouseName string `json:"warehouse_name" validate:"required,notblank"`
	Delta         int64  `json:"delta"`
}

type StockInput struct {
	ProductID   uint `json:"product_id" validate:"required"`
	WarehouseID uint `json:"warehouse_id" validate:"required"`
}

type ProductInput struct {
	Name string `json:"name" validate:"required,notblank,max=150"`
	SKU  string `json:"sku" validate:"required,notblank,max=64"`
}

// GetInventory lists counts the session may see, optionally narrowed to warehouseIDs.
func (s *InventoryService) GetInventory(ctx context.Context, session Session, warehouseIDs []uint) ([]repositories.InventoryRow, error) {
	ids, visible := session.scope(warehouseIDs)
	if !visible {
		return []repositories.InventoryRow{}, nil
	}
	rows, err := repositories.NewInventoryRepository(s.db.WithContext(ctx)).List(ids)
	if err != nil {
		return nil, classify(s.log, "get_inventory", err)
	}
	return rows, nil
}

// ApplyDelta adds a signed amount to one (product, warehouse) count.
func (s *InventoryService) ApplyDelta(ctx context.Context, session Session, in AdjustInput) (*models.Inventory, error) {
	in.ProductName = strings.TrimSpace(in.ProductName)
	in.WarehouseName = strings.TrimSpace(in.WarehouseName)
	if err := utils.ValidateStruct(in); err != nil {
		return nil, validationError(err.Error())
	}
	if in.Delta == 0 {
		return nil, validationError("delta: must not be zero")
	}
	if in.Delta > models.MaxQuantity {
		return nil, businessError(CodeResultTooLarge, "result too large", nil)
	}
	if in.Delta < -models.MaxQuantity {
		return nil, businessError(CodeInsufficientQuantity, "insufficient quantity", nil)
	}

	var result *models.Inventory
	err := runInTx(ctx, s.db, s.log, "apply_delta", func(tx *gorm.DB) error {
		master := repositories.NewMasterRepository(tx)
		product, err := master.FindProductByName(in.ProductName)
		if err != nil {
			if isNotFound(err) {
				return businessError(CodeInventoryNotFound, "inventory row not found", nil)
			}
			return err
		}
		warehouse, err := master.FindWarehouseByName(in.WarehouseName)
		if err != nil {
			if isNotFound(err) {
				return businessError(CodeInventoryNotFound, "inventory row not found", nil)
			}
			return err
		}
		if !session.CanAccess(warehouse.ID) {
			return businessError(CodeWarehouseForbidden, "no access to warehouse", map[string]interface{}{"Warehouse": warehouse.Name})
		}

		inv, err := adjust(tx, product.ID, warehouse.ID, in.Delta, models.MovementAdjustment, "", session.EmployeeID)
		if err != nil {
			return err
		}
		result = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// adjust applies delta through the conditional update, then records the
// movement. On refusal it re-reads the row to name the reason; nothing was written.
func adjust(tx *gorm.DB, productID, warehouseID uint, delta int64, reason, refNo string, actor uint) (*models.Inventory, error) {
	repo := repositories.NewInventoryRepository(tx)
	applied, err := repo.ApplyDelta(productID, warehouseID, delta, time.Now())
	if err != nil {
		return nil, err
	}

	inv, err := repo.Find(productID, warehouseID)
	if err != nil {
		if isNotFound(err) {
			return nil, businessError(CodeInventoryNotFound, "inventory row not found", nil)
		}
		return nil, err
	}
	if !applied {
		if delta > 0 {
			return nil, businessError(CodeResultTooLarge, "result too large", map[string]interface{}{"Quantity": inv.Quantity})
		}
		return nil, businessError(CodeInsufficientQuantity, "insufficient quantity", map[string]interface{}{"Quantity": inv.Quantity})
	}

	if err := repo.InsertMovement(productID, warehouseID, delta, inv.Quantity, reason, refNo, actor); err != nil {
		return nil, err
	}
	return inv, nil
}

// AddProductToWarehouse starts stocking a product at a warehouse with a zero count.
func (s *InventoryService) AddProductToWarehouse(ctx context.Context, session Session, in StockInput) (*models.Inventory, error) {
	if err := utils.ValidateStruct(in); err != nil {
		return nil, validationError(err.Error())
	}
	if !session.CanAccess(in.WarehouseID) {
		return nil, businessError(CodeWarehouseForbidden, "no access to warehouse", nil)
	}

	var inv *models.Inventory
	err := runInTx(ctx, s.db, s.log, "add_product_to_warehouse", func(tx *gorm.DB) error {
		if err := requireProductAndWarehouse(tx, in.ProductID, in.WarehouseID); err != nil {
			return err
		}
		repo := repositories.NewInventoryRepository(tx)
		if _, err := repo.Find(in.ProductID, in.WarehouseID); err == nil {
			return businessError(CodeStockExists, "product is already stocked at this warehouse", nil)
		} else if !isNotFound(err) {
			return err
		}

		inv = &models.Inventory{ProductID: in.ProductID, WarehouseID: in.WarehouseID, Quantity: 0, UpdatedAt: time.Now()}
		return repo.Create(inv)
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// RemoveProductFromWarehouse deletes the (product, warehouse) row.
func (s *InventoryService) RemoveProductFromWarehouse(ctx context.Context, session Session, in StockInput) error {
	if err := utils.ValidateStruct(in); err != nil {
		return validationError(err.Error())
	}
	if !session.CanAccess(in.WarehouseID) {
		return businessError(CodeWarehouseForbidden, "no access to warehouse", nil)
	}

	return runInTx(ctx, s.db, s.log, "remove_product_from_warehouse", func(tx *gorm.DB) error {
		deleted, err := repositories.NewInventoryRepository(tx).Delete(in.ProductID, in.WarehouseID)
		if err != nil {
			return err
		}
		if deleted == 0 {
			return businessError(CodeStockNotPresent, "product is not present at this warehouse", nil)
		}
		return nil
	})
}

func (s *InventoryService) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if s.cache.GetJSON(ctx, cache.PRODUCTS_CACHE_KEY, &products) {
		return products, nil
	}
	products, err := repositories.NewMasterRepository(s.db.WithContext(ctx)).ListProducts()
	if err != nil {
		return nil, classify(s.log, "list_products", err)
	}
	s.cache.SetJSON(ctx, cache.PRODUCTS_CACHE_KEY, products)
	return products, nil
}

func (s *InventoryService) AddProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.SKU = strings.TrimSpace(in.SKU)
	if err := utils.ValidateStruct(in); err != nil {
		return nil, validationError(err.Error())
	}

	product := &models.Product{Name: in.Name, SKU: in.SKU}
	err := runInTx(ctx, s.db, s.log, "add_product", func(tx *gorm.DB) error {
		master := repositories.NewMasterRepository(tx)
		exists, err := master.ProductExists(in.Name, in.SKU)
		if err != nil {
			return err
		}
		if exists {
			return businessError(CodeProductExists, "product with this name or SKU already exists", nil)
		}
		return master.CreateProduct(product)
	})
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, cache.PRODUCTS_CACHE_KEY)
	return product, nil
}

// DeleteProduct refuses while any inventory row still references the product.
func (s *InventoryService) DeleteProduct(ctx context.Context, productID uint) error {
	if productID == 0 {
		return validationError("id: is required")
	}
	err := runInTx(ctx, s.db, s.log, "delete_product", func(tx *gorm.DB) error {
		inUse, err := repositories.NewInventoryRepository(tx).CountByProduct(productID)
		if err != nil {
			return err
		}
		if inUse > 0 {
			return businessError(CodeProductInUse, "product in use", nil)
		}
		var lines int64
		if err := tx.Model(&models.ShipmentLine{}).Where("product_id = ?", productID).Count(&lines).Error; err != nil {
			return err
		}
		if lines == 0 {
			if err := tx.Model(&models.TransferLine{}).Where("product_id = ?", productID).Count(&lines).Error; err != nil {
				return err
			}
		}
		if lines > 0 {
			return businessError(CodeProductInUse, "product in use", nil)
		}

		deleted, err := repositories.NewMasterRepository(tx).DeleteProduct(productID)
		if err != nil {
			return err
		}
		if deleted == 0 {
			return businessError(CodeProductNotFound, "product not found", nil)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.cache.Invalidate(ctx, cache.PRODUCTS_CACHE_KEY)
	return nil
}

// ListMovements returns the movement history visible to the session.
func (s *InventoryService) ListMovements(ctx context.Context, session Session, filter repositories.MovementFilter) ([]repositories.MovementRow, error) {
	ids, visible := session.scope(filter.WarehouseIDs)
	if !visible {
		return []repositories.MovementRow{}, nil
	}
	filter.WarehouseIDs = ids
	if filter.Limit <= 0 || filter.Limit > 500 {
		filter.Limit = 100
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	rows, err := repositories.NewInventoryRepository(s.db.WithContext(ctx)).ListMovements(filter)
	if err != nil {
		return nil, classify(s.log, "list_movements", err)
	}
	return rows, nil
}

func requireProductAndWarehouse(tx *gorm.DB, productID, warehouseID uint) error {
	master := repositories.NewMasterRepository(tx)
	if _, err := master.FindProduct(productID); err != nil {
		if isNotFound(err) {
			return businessError(CodeProductNotFound, "product not found", nil)
		}
		return err
	}
	if _, err := master.FindWarehouse(warehouseID); err != nil {
		if isNotFound(err) {
			return businessError(CodeWarehouseNotFound, "warehouse not found", nil)
		}
		return err
	}
	return nil
}
