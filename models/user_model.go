package models

import "time"

type Role struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:50;uniqueIndex;not null"`
}

// UserAccount is the login identity of an employee. An employee owns at most one.
type UserAccount struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Login        string     `json:"login" gorm:"size:20;uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"size:255;not null"`
	EmployeeID   uint       `json:"employee_id" gorm:"uniqueIndex;not null"`
	Employee     *Employee  `json:"employee,omitempty" gorm:"foreignKey:EmployeeID"`
	RoleID       uint       `json:"role_id" gorm:"not null"`
	Role         *Role      `json:"role,omitempty" gorm:"foreignKey:RoleID"`
	IsActive     bool       `json:"is_active" gorm:"not null;default:true"`
	LastLoginAt  *time.Time `json:"last_login_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// InviteCode is single use: IsActive flips to false when redeemed or revoked.
type InviteCode struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	Code       string     `json:"code" gorm:"size:64;uniqueIndex;not null"`
	EmployeeID uint       `json:"employee_id" gorm:"index;not null"`
	Employee   *Employee  `json:"employee,omitempty" gorm:"foreignKey:EmployeeID"`
	RoleID     uint       `json:"role_id" gorm:"not null"`
	Role       *Role      `json:"role,omitempty" gorm:"foreignKey:RoleID"`
	IsActive   bool       `json:"is_active" gorm:"not null;default:true"`
	UsedAt     *time.Time `json:"used_at"`
	CreatedAt  time.Time  `json:"created_at"`
}
