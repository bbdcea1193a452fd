package migration

import (
	"warehouse-app/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Role{},
		&models.Post{},
		&models.Warehouse{},
		&models.Employee{},
		&models.UserAccount{},
		&models.InviteCode{},
		&models.Product{},
		&models.Inventory{},
		&models.Supplier{},
		&models.Shipment{},
		&models.ShipmentLine{},
		&models.Transfer{},
		&models.TransferLine{},
		&models.InventoryMovement{},
	)
}
