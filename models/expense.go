package models

import (
	"strings"
	"time"

	"finbud/pkg/ledger"
)

// ModeOfPayment is how an expense was paid.
type ModeOfPayment string

const (
	PaymentCash       ModeOfPayment = "CASH"
	PaymentCreditCard ModeOfPayment = "CREDIT_CARD"
	PaymentDebitCard  ModeOfPayment = "DEBIT_CARD"
)

// ParseModeOfPayment resolves a payment mode case-insensitively.
func ParseModeOfPayment(s string) (ModeOfPayment, bool) {
	switch ModeOfPayment(strings.ToUpper(strings.TrimSpace(s))) {
	case PaymentCash:
		return PaymentCash, true
	case PaymentCreditCard:
		return PaymentCreditCard, true
	case PaymentDebitCard:
		return PaymentDebitCard, true
	}
	return "", false
}

// Expense is a single recorded transaction belonging to a user. Rows are
// immutable once written: created by manual entry, bulk import or receipt
// OCR, and only ever deleted by their owner.
type Expense struct {
	ID            uint `gorm:"primaryKey"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	UserID        uint            `gorm:"index;not null"`
	Amount        float64         `gorm:"not null"`
	Category      ledger.Category `gorm:"size:32;not null;index"`
	ModeOfPayment ModeOfPayment   `gorm:"size:32;not null"`
	IsIncome      bool            `gorm:"not null;default:false"`
	Date          time.Time       `gorm:"not null;index"`
	Description   string          `gorm:"size:512"`
}
