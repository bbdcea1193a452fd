package repositories

import (
	"time"
	"warehouse-app/models"

	"gorm.io/gorm"
)

type InviteRepository struct {
	db *gorm.DB
}

func NewInviteRepository(db *gorm.DB) *InviteRepository {
	return &InviteRepository{db}
}

func (r *InviteRepository) Create(invite *models.InviteCode) error {
	return r.db.Create(invite).Error
}

func (r *InviteRepository) FindActiveByCode(code string) (*models.InviteCode, error) {
	var invite models.InviteCode
	err := r.db.Preload("Role").Where("code = ? AND is_active = ?", code, true).First(&invite).Error
	if err != nil {
		return nil, err
	}
	return &invite, nil
}

func (r *InviteRepository) FindByID(id uint) (*models.InviteCode, error) {
	var invite models.InviteCode
	if err := r.db.First(&invite, id).Error; err != nil {
		return nil, err
	}
	return &invite, nil
}

func (r *InviteRepository) CodeExists(code string) (bool, error) {
	var count int64
	err := r.db.Model(&models.InviteCode{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

func (r *InviteRepository) ActiveExistsForEmployee(employeeID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.InviteCode{}).Where("employee_id = ? AND is_active = ?", employeeID, true).Count(&count).Error
	return count > 0, err
}

// Consume deactivates an active invite. It reports false when another
// session got there first.
func (r *InviteRepository) Consume(id uint, at time.Time) (bool, error) {
	res := r.db.Model(&models.InviteCode{}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(map[string]interface{}{"is_active": false, "used_at": at})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

type InviteRow struct {
	ID           uint       `json:"id"`
	Code         string     `json:"code"`
	Role         string     `json:"role"`
	EmployeeID   uint       `json:"employee_id"`
	EmployeeName string     `json:"employee_name"`
	IsActive     bool       `json:"is_active"`
	UsedAt       *time.Time `json:"used_at"`
	CreatedAt    time.Time  `json:"created_at"`
	FirstName    string     `json:"-"`
	LastName     string     `json:"-"`
}

func (r *InviteRepository) List() ([]InviteRow, error) {
	var rows []InviteRow
	err := r.db.Table("invite_code AS i").
		Select("i.id, i.code, r.name AS role, i.employee_id, e.first_name, e.last_name, i.is_active, i.used_at, i.created_at").
		Joins("INNER JOIN role r ON r.id = i.role_id").
		Joins("INNER JOIN employee e ON e.id = i.employee_id").
		Order("i.created_at DESC, i.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].EmployeeName = rows[i].LastName + " " + rows[i].FirstName
	}
	return rows, nil
}
