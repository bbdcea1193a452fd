package repositories

import (
	"warehouse-app/models"

	"gorm.io/gorm"
)

// MasterRepository covers the reference tables: warehouses, suppliers and products.
type MasterRepository struct {
	db *gorm.DB
}

func NewMasterRepository(db *gorm.DB) *MasterRepository {
	return &MasterRepository{db}
}

func (r *MasterRepository) ListWarehouses() ([]models.Warehouse, error) {
	var warehouses []models.Warehouse
	err := r.db.Order("name").Find(&warehouses).Error
	return warehouses, err
}

func (r *MasterRepository) WarehousesByIDs(ids []uint) ([]models.Warehouse, error) {
	var warehouses []models.Warehouse
	err := r.db.Where("id IN ?", ids).Find(&warehouses).Error
	return warehouses, err
}

func (r *MasterRepository) AllWarehouseIDs() ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Warehouse{}).Order("id").Pluck("id", &ids).Error
	return ids, err
}

func (r *MasterRepository) FindWarehouse(id uint) (*models.Warehouse, error) {
	var w models.Warehouse
	if err := r.db.First(&w, id).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *MasterRepository) FindWarehouseByName(name string) (*models.Warehouse, error) {
	var w models.Warehouse
	if err := r.db.Where("name = ?", name).First(&w).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

// WarehouseNameOrAddressExists matches either column.
func (r *MasterRepository) WarehouseNameOrAddressExists(name, address string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Warehouse{}).Where("name = ? OR address = ?", name, address).Count(&count).Error
	return count > 0, err
}

func (r *MasterRepository) CreateWarehouse(w *models.Warehouse) error {
	return r.db.Create(w).Error
}

func (r *MasterRepository) ListSuppliers() ([]models.Supplier, error) {
	var suppliers []models.Supplier
	err := r.db.Order("name").Find(&suppliers).Error
	return suppliers, err
}

func (r *MasterRepository) FindSupplier(id uint) (*models.Supplier, error) {
	var s models.Supplier
	if err := r.db.First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *MasterRepository) SupplierExists(name, phone, email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Supplier{}).
		Where("name = ? OR phone = ? OR email = ?", name, phone, email).
		Count(&count).Error
	return count > 0, err
}

func (r *MasterRepository) CreateSupplier(s *models.Supplier) error {
	return r.db.Create(s).Error
}

func (r *MasterRepository) ListProducts() ([]models.Product, error) {
	var products []models.Product
	err := r.db.Order("name").Find(&products).Error
	return products, err
}

func (r *MasterRepository) FindProduct(id uint) (*models.Product, error) {
	var p models.Product
	if err := r.db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *MasterRepository) FindProductByName(name string) (*models.Product, error) {
	var p models.Product
	if err := r.db.Where("name = ?", name).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *MasterRepository) ProductsByIDs(ids []uint) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Where("id IN ?", ids).Find(&products).Error
	return products, err
}

func (r *MasterRepository) ProductExists(name, sku string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Product{}).Where("name = ? OR sku = ?", name, sku).Count(&count).Error
	return count > 0, err
}

func (r *MasterRepository) CreateProduct(p *models.Product) error {
	return r.db.Create(p).Error
}

func (r *MasterRepository) DeleteProduct(id uint) (int64, error) {
	res := r.db.Delete(&models.Product{}, id)
	return res.RowsAffected, res.Error
}
