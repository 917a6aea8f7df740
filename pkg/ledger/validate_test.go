package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRejectsIffSumExceedsIncome(t *testing.T) {
	tests := []struct {
		name   string
		alloc  Allocations
		income float64
		ok     bool
	}{
		{"empty allocations", Allocations{}, 0, true},
		{"sum below income", Allocations{Food: 100, Property: 200}, 500, true},
		{"sum equals income", Allocations{Food: 300, Property: 200}, 500, true},
		{"sum just above income", Allocations{Food: 300.01, Property: 200}, 500, false},
		{"zero income nonzero budget", Allocations{Food: 6000}, 0, false},
		{"all categories within income", Allocations{
			Food: 1000, Electricity: 500, Transport: 300, Subscription: 200,
			Property: 2000, Medical: 150, Other: 100,
		}, 50000, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.alloc, tt.income)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrExceedsIncome)
			}
		})
	}
}

func TestValidateRejectsNegativeAllocation(t *testing.T) {
	err := Validate(Allocations{Food: -1, Property: 100}, 1000)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrExceedsIncome)
	assert.Contains(t, err.Error(), "negative")
}

func TestValidateIsPure(t *testing.T) {
	a := Allocations{Food: 100}
	_ = Validate(a, 50)
	_ = Validate(a, 50)
	assert.Equal(t, Allocations{Food: 100}, a)
}
