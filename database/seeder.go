package database

import (
	"errors"
	"time"
	"warehouse-app/config"
	"warehouse-app/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const EmployeeRole = "employee"

func RunSeeders(db *gorm.DB, log *zap.Logger) error {
	if err := SeedRoles(db); err != nil {
		return err
	}
	if err := SeedPosts(db); err != nil {
		return err
	}
	return SeedBootstrapInvite(db, log)
}

func SeedRoles(db *gorm.DB) error {
	for _, name := range []string{config.AdminRole, EmployeeRole} {
		role := models.Role{Name: name}
		if err := db.Where("name = ?", name).FirstOrCreate(&role).Error; err != nil {
			return err
		}
	}
	return nil
}

func SeedPosts(db *gorm.DB) error {
	posts := []models.Post{
		{Name: "Administrator", Salary: decimal.NewFromInt(0)},
		{Name: "Storekeeper", Salary: decimal.NewFromInt(0)},
		{Name: "Loader", Salary: decimal.NewFromInt(0)},
	}

	for _, p := range posts {
		var existing models.Post
		err := db.Where("name = ?", p.Name).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&p).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}
	return nil
}

// SeedBootstrapInvite issues an admin invite for a placeholder employee while
// no account exists yet, so the first administrator can register.
func SeedBootstrapInvite(db *gorm.DB, log *zap.Logger) error {
	if config.BootstrapInviteCode == "" {
		return nil
	}

	var accounts int64
	if err := db.Model(&models.UserAccount{}).Count(&accounts).Error; err != nil {
		return err
	}
	if accounts > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var existing models.InviteCode
		err := tx.Where("code = ?", config.BootstrapInviteCode).First(&existing).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var role models.Role
		if err := tx.Where("name = ?", config.AdminRole).First(&role).Error; err != nil {
			return err
		}
		var post models.Post
		if err := tx.Where("name = ?", "Administrator").First(&post).Error; err != nil {
			return err
		}

		employee := models.Employee{
			FirstName:        "Administrator",
			LastName:         "System",
			PassportSeries:   "0000",
			PassportNumber:   "000000",
			Phone:            "00000000000",
			PostID:           post.ID,
			DateOfEmployment: time.Now(),
			IsActive:         true,
		}
		if err := tx.Where("passport_series = ? AND passport_number = ?", employee.PassportSeries, employee.PassportNumber).
			FirstOrCreate(&employee).Error; err != nil {
			return err
		}

		invite := models.InviteCode{
			Code:       config.BootstrapInviteCode,
			EmployeeID: employee.ID,
			RoleID:     role.ID,
			IsActive:   true,
		}
		if err := tx.Create(&invite).Error; err != nil {
			return err
		}
		log.Info("bootstrap invite issued", zap.Uint("employee_id", employee.ID))
		return nil
	})
}
