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

type SupplierService struct {
	db    *gorm.DB
	log   *zap.Logger
	cache *cache.Cache
}

func NewSupplierService(db *gorm.DB, log *zap.Logger, c *cache.Cache) *SupplierService {
	return &SupplierService{db: db, log: log.Named("supplier"), cache: c}
}

type SupplierInput struct {
	Name  string `json:"name" validate:"required,notblank,max=150"`
	Phone string `json:"phone" validate:"required,numeric,min=5,max=20"`
	Email string `json:"email" validate:"required,email,max=150"`
}

func (s *SupplierService) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	var suppliers []models.Supplier
	if s.cache.GetJSON(ctx, cache.SUPPLIERS_CACHE_KEY, &suppliers) {
		return suppliers, nil
	}
	suppliers, err := repositories.NewMasterRepository(s.db.WithContext(ctx)).ListSuppliers()
	if err != nil {
		return nil, classify(s.log, "list_suppliers", err)
	}
	s.cache.SetJSON(ctx, cache.SUPPLIERS_CACHE_KEY, suppliers)
	return suppliers, nil
}

// AddSupplier rejects a name, phone or email that is already registered.
func (s *SupplierService) AddSupplier(ctx context.Context, in SupplierInput) (*models.Supplier, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := utils.ValidateStruct(in); err != nil {
		return nil, validationError(err.Error())
	}

	supplier := &models.Supplier{Name: in.Name, Phone: in.Phone, Email: in.Email}
	err := runInTx(ctx, s.db, s.log, "add_supplier", func(tx *gorm.DB) error {
		master := repositories.NewMasterRepository(tx)
		exists, err := master.SupplierExists(in.Name, in.Phone, in.Email)
		if err != nil {
			return err
		}
		if exists {
			return businessError(CodeSupplierExists, "supplier with this name, phone or email already exists", nil)
		}
		return master.CreateSupplier(supplier)
	})
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, cache.SUPPLIERS_CACHE_KEY)
	return supplier, nil
}
