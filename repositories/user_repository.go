package repositories

import (
	"time"
	"warehouse-app/models"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(DB *gorm.DB) *UserRepository {
	return &UserRepository{DB: DB}
}

func (r *UserRepository) Create(user *models.UserAccount) error {
	return r.DB.Create(user).Error
}

// FindByLogin loads the account with its role.
func (r *UserRepository) FindByLogin(login string) (*models.UserAccount, error) {
	var user models.UserAccount
	err := r.DB.Preload("Role").Where("login = ?", login).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByID(id uint) (*models.UserAccount, error) {
	var user models.UserAccount
	if err := r.DB.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) LoginExists(login string) (bool, error) {
	var count int64
	err := r.DB.Model(&models.UserAccount{}).Where("login = ?", login).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) ExistsForEmployee(employeeID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&models.UserAccount{}).Where("employee_id = ?", employeeID).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) TouchLastLogin(id uint, at time.Time) error {
	return r.DB.Model(&models.UserAccount{}).Where("id = ?", id).Update("last_login_at", at).Error
}

func (r *UserRepository) UpdateRoleAndStatus(id, roleID uint, isActive bool) error {
	return r.DB.Model(&models.UserAccount{}).Where("id = ?", id).
		Updates(map[string]interface{}{"role_id": roleID, "is_active": isActive, "updated_at": time.Now()}).Error
}

type UserRow struct {
	ID          uint       `json:"id"`
	Login       string     `json:"login"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"is_active"`
	EmployeeID  uint       `json:"employee_id"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	LastLoginAt *time.Time `json:"last_login_at"`
}

func (r *UserRepository) List() ([]UserRow, error) {
	var rows []UserRow
	err := r.DB.Table("user_account AS u").
		Select("u.id, u.login, r.name AS role, u.is_active, u.employee_id, e.first_name, e.last_name, u.last_login_at").
		Joins("INNER JOIN role r ON r.id = u.role_id").
		Joins("INNER JOIN employee e ON e.id = u.employee_id").
		Order("u.login").
		Scan(&rows).Error
	return rows, err
}

func (r *UserRepository) FindRoleByName(name string) (*models.Role, error) {
	var role models.Role
	if err := r.DB.Where("name = ?", name).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *UserRepository) ListRoles() ([]models.Role, error) {
	var roles []models.Role
	err := r.DB.Order("name").Find(&roles).Error
	return roles, err
}
