package services

import (
	"context"
	"strings"
	"warehouse-app/cache"
	"warehouse-app/models"
	"warehouse-app/repositories"
	"warehouse-app/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type WarehouseService struct {
	db    *gorm.DB
	log   *zap.Logger
	cache *cache.Cache
}

func NewWarehouseService(db *gorm.DB, log *zap.Logger, c *cache.Cache) *WarehouseService {
	return &WarehouseService{db: db, log: log.Named("warehouse"), cache: c}
}

type WarehouseInput struct {
	Name       string `json:"name" validate:"required,notblank,max=100"`
	Address    string `json:"address" validate:"required,notblank,max=255"`
	FloorSpace int    `json:"floor_space" validate:"gt=0"`
}

func (s *WarehouseService) ListWarehouses(ctx context.Context) ([]models.Warehouse, error) {
	var warehouses []models.Warehouse
	if s.cache.GetJSON(ctx, cache.WAREHOUSES_CACHE_KEY, &warehouses) {
		return warehouses, nil
	}
	warehouses, err := repositories.NewMasterRepository(s.db.WithContext(ctx)).ListWarehouses()
	if err != nil {
		return nil, classify(s.log, "list_warehouses", err)
	}
	s.cache.SetJSON(ctx, cache.WAREHOUSES_CACHE_KEY, warehouses)
	return warehouses, nil
}

// AddWarehouse rejects a name or address that is already taken.
func (s *WarehouseService) AddWarehouse(ctx context.Context, in WarehouseInput) (*models.Warehouse, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Address = strings.TrimSpace(in.Address)
	if err := utils.ValidateStruct(in); err != nil {
		return nil, validationError(err.Error())
	}

	warehouse := &models.Warehouse{Name: in.Name, Address: in.Address, FloorSpace: in.FloorSpace}
	err := runInTx(ctx, s.db, s.log, "add_warehouse", func(tx *gorm.DB) error {
		master := repositories.NewMasterRepository(tx)
		exists, err := master.WarehouseNameOrAddressExists(in.Name, in.Address)
		if err != nil {
			return err
		}
		if exists {
			return businessError(CodeWarehouseExists, "warehouse with this name or address already exists", nil)
		}
		return master.CreateWarehouse(warehouse)
	})
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, cache.WAREHOUSES_CACHE_KEY)
	return warehouse, nil
}
