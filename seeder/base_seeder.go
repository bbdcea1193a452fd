package seed

import (
	"warehouse-app/models"

	"gorm.io/gorm"
)

// SeedDemoData fills an empty development database with a few warehouses,
// products and suppliers.
func SeedDemoData(db *gorm.DB) error {
	warehouses := []models.Warehouse{
		{Name: "Central", Address: "1 Central Street", FloorSpace: 1200},
		{Name: "North", Address: "15 North Avenue", FloorSpace: 800},
	}
	for _, w := range warehouses {
		var existing models.Warehouse
		if err := db.Where("name = ?", w.Name).First(&existing).Error; err != nil {
			if err != gorm.ErrRecordNotFound {
				return err
			}
			if err := db.Create(&w).Error; err != nil {
				return err
			}
		}
	}

	products := []models.Product{
		{Name: "Pallet wrap", SKU: "PW-001"},
		{Name: "Cardboard box M", SKU: "CB-M"},
		{Name: "Cardboard box L", SKU: "CB-L"},
	}
	for _, p := range products {
		var existing models.Product
		if err := db.Where("sku = ?", p.SKU).First(&existing).Error; err != nil {
			if err != gorm.ErrRecordNotFound {
				return err
			}
			if err := db.Create(&p).Error; err != nil {
				return err
			}
		}
	}

	suppliers := []models.Supplier{
		{Name: "Packaging Co", Phone: "70000000001", Email: "orders@packaging.example"},
	}
	for _, s := range suppliers {
		var existing models.Supplier
		if err := db.Where("name = ?", s.Name).First(&existing).Error; err != nil {
			if err != gorm.ErrRecordNotFound {
				return err
			}
			if err := db.Create(&s).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
