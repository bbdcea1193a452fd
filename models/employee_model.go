package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Post struct {
	ID     uint            `json:"id" gorm:"primaryKey"`
	Name   string          `json:"name" gorm:"size:100;uniqueIndex;not null"`
	Salary decimal.Decimal `json:"salary" gorm:"type:decimal(12,2);not null;default:0"`
}

type Employee struct {
	ID               uint        `json:"id" gorm:"primaryKey"`
	FirstName        string      `json:"first_name" gorm:"size:100;not null"`
	LastName         string      `json:"last_name" gorm:"size:100;not null"`
	MiddleName       string      `json:"middle_name" gorm:"size:100"`
	PassportSeries   string      `json:"passport_series" gorm:"size:4;not null;uniqueIndex:idx_employee_passport"`
	PassportNumber   string      `json:"passport_number" gorm:"size:6;not null;uniqueIndex:idx_employee_passport"`
	Phone            string      `json:"phone" gorm:"size:11;not null"`
	PostID           uint        `json:"post_id" gorm:"not null"`
	Post             *Post       `json:"post,omitempty" gorm:"foreignKey:PostID"`
	DateOfEmployment time.Time   `json:"date_of_employment"`
	IsActive         bool        `json:"is_active" gorm:"not null;default:true"`
	Warehouses       []Warehouse `json:"warehouses,omitempty" gorm:"many2many:employee_warehouse;"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// FullName renders "Last First Middle" the way listings display employees.
func (e Employee) FullName() string {
	name := e.LastName + " " + e.FirstName
	if e.MiddleName != "" {
		name += " " + e.MiddleName
	}
	return name
}
