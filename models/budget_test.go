package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finbud/pkg/ledger"
)

func TestBudgetAllocationsRoundTrip(t *testing.T) {
	var b Budget
	in := ledger.Allocations{
		ledger.Food:     1000,
		ledger.Property: 2000,
		ledger.Other:    0, // explicit zero is preserved, not treated as unset
	}
	b.SetAllocations(in)
	assert.Equal(t, in, b.Allocations())

	// unset categories stay null
	assert.Nil(t, b.ElectricityBudget)
	require.NotNil(t, b.OtherBudget)
	assert.Equal(t, 0.0, *b.OtherBudget)
}

func TestBudgetSetAllocationsOverwrites(t *testing.T) {
	var b Budget
	b.SetAllocations(ledger.Allocations{ledger.Food: 500, ledger.Medical: 100})
	b.SetAllocations(ledger.Allocations{ledger.Transport: 300})

	assert.Nil(t, b.FoodBudget)
	assert.Nil(t, b.MedicalBudget)
	require.NotNil(t, b.TransportBudget)
	assert.Equal(t, 300.0, *b.TransportBudget)
}

func TestBudgetSlotCoversAllCategories(t *testing.T) {
	var b Budget
	for _, c := range ledger.Categories() {
		assert.NotNil(t, b.slot(c), "no column slot for %s", c)
	}
}

func TestParseModeOfPayment(t *testing.T) {
	m, ok := ParseModeOfPayment("cash")
	require.True(t, ok)
	assert.Equal(t, PaymentCash, m)

	m, ok = ParseModeOfPayment(" CREDIT_CARD ")
	require.True(t, ok)
	assert.Equal(t, PaymentCreditCard, m)

	_, ok = ParseModeOfPayment("UPI")
	assert.False(t, ok)
}
