package models

import "time"

type Product struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:150;uniqueIndex;not null"`
	SKU       string    `json:"sku" gorm:"column:sku;size:64;uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Warehouse struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Name       string    `json:"name" gorm:"size:100;uniqueIndex;not null"`
	Address    string    `json:"address" gorm:"size:255;uniqueIndex;not null"`
	FloorSpace int       `json:"floor_space" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Supplier struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:150;uniqueIndex;not null"`
	Phone     string    `json:"phone" gorm:"size:20;uniqueIndex;not null"`
	Email     string    `json:"email" gorm:"size:150;uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
