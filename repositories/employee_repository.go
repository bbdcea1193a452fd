package repositories

import (
	"warehouse-app/models"

	"gorm.io/gorm"
)

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db}
}

func (r *EmployeeRepository) List() ([]models.Employee, error) {
	var employees []models.Employee
	err := r.db.Preload("Post").Preload("Warehouses").Order("last_name, first_name").Find(&employees).Error
	return employees, err
}

func (r *EmployeeRepository) FindByID(id uint) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.Preload("Post").Preload("Warehouses").First(&employee, id).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *EmployeeRepository) PassportExists(series, number string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Employee{}).
		Where("passport_series = ? AND passport_number = ?", series, number).
		Count(&count).Error
	return count > 0, err
}

func (r *EmployeeRepository) Create(employee *models.Employee) error {
	return r.db.Create(employee).Error
}

func (r *EmployeeRepository) Update(employee *models.Employee, fields map[string]interface{}) error {
	return r.db.Model(employee).Updates(fields).Error
}

// ReplaceWarehouses swaps the employee's warehouse set for the given one.
func (r *EmployeeRepository) ReplaceWarehouses(employee *models.Employee, warehouses []models.Warehouse) error {
	return r.db.Model(employee).Association("Warehouses").Replace(warehouses)
}

// WarehouseIDs returns the ids of the warehouses the employee is assigned to.
func (r *EmployeeRepository) WarehouseIDs(employeeID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Table("employee_warehouse").
		Where("employee_id = ?", employeeID).
		Pluck("warehouse_id", &ids).Error
	return ids, err
}

func (r *EmployeeRepository) FindPostByName(name string) (*models.Post, error) {
	var post models.Post
	if err := r.db.Where("name = ?", name).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *EmployeeRepository) ListPosts() ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Order("name").Find(&posts).Error
	return posts, err
}

func (r *EmployeeRepository) CreatePost(post *models.Post) error {
	return r.db.Create(post).Error
}
