package models

import (
	"time"
)

// User is an account holder. Income and TotalBudget are account-level
// aggregates; TotalBudget is recomputed server-side from the accepted budget
// allocations, never taken from a client.
type User struct {
	ID             uint `gorm:"primaryKey"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time `gorm:"index"`
	Name           string     `gorm:"size:255;not null"`
	Email          string     `gorm:"size:255;not null;unique"`
	HashedPassword []byte     `gorm:"not null" json:"-"`
	Income         float64    `gorm:"not null;default:0"`
	TotalBudget    float64    `gorm:"not null;default:0"`
	Budget         *Budget    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Expenses       []Expense
	RoleID         *uint `gorm:"index"`
	Role           Role  `gorm:"foreignKey:RoleID;references:ID"`
}
