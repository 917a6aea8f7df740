package models

import (
	"time"

	"finbud/pkg/ledger"
)

// Budget holds one user's per-category allocations (one-to-one with User).
// Columns are nullable: a null allocation means the category was never set,
// which is distinct from an explicit zero. Version backs optimistic locking
// on concurrent acceptances.
type Budget struct {
	ID                 uint `gorm:"primaryKey"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
	UserID             uint `gorm:"uniqueIndex;not null"`
	User               User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	FoodBudget         *float64
	ElectricityBudget  *float64
	TransportBudget    *float64
	SubscriptionBudget *float64
	PropertyBudget     *float64
	MedicalBudget      *float64
	OtherBudget        *float64
	Version            uint `gorm:"not null;default:0"`
}

// slot maps a category to the struct field backing it. Exhaustive over the
// closed category set; an unknown category returns nil.
func (b *Budget) slot(c ledger.Category) **float64 {
	switch c {
	case ledger.Food:
		return &b.FoodBudget
	case ledger.Electricity:
		return &b.ElectricityBudget
	case ledger.Transport:
		return &b.TransportBudget
	case ledger.Subscription:
		return &b.SubscriptionBudget
	case ledger.Property:
		return &b.PropertyBudget
	case ledger.Medical:
		return &b.MedicalBudget
	case ledger.Other:
		return &b.OtherBudget
	}
	return nil
}

// Allocations converts the row into ledger allocations. Null columns are
// skipped so their absence survives the round trip.
func (b *Budget) Allocations() ledger.Allocations {
	a := make(ledger.Allocations, len(ledger.Categories()))
	for _, c := range ledger.Categories() {
		if p := *b.slot(c); p != nil {
			a[c] = *p
		}
	}
	return a
}

// SetAllocations overwrites every category column from a. Categories absent
// from a become null.
func (b *Budget) SetAllocations(a ledger.Allocations) {
	for _, c := range ledger.Categories() {
		slot := b.slot(c)
		if v, ok := a[c]; ok {
			val := v
			*slot = &val
		} else {
			*slot = nil
		}
	}
}
