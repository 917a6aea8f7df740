package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoriesOrderIsFixed(t *testing.T) {
	want := []Category{Food, Electricity, Transport, Subscription, Property, Medical, Other}
	assert.Equal(t, want, Categories())
}

func TestCategoryMappingsAreTotalAndUnique(t *testing.T) {
	labels := map[string]bool{}
	fields := map[string]bool{}
	columns := map[string]bool{}
	for _, c := range Categories() {
		require.True(t, c.Valid())
		require.NotEmpty(t, c.Label())
		require.NotEmpty(t, c.UpstreamField())
		require.NotEmpty(t, c.Column())
		assert.False(t, labels[c.Label()], "duplicate label %q", c.Label())
		assert.False(t, fields[c.UpstreamField()], "duplicate upstream field %q", c.UpstreamField())
		assert.False(t, columns[c.Column()], "duplicate column %q", c.Column())
		labels[c.Label()] = true
		fields[c.UpstreamField()] = true
		columns[c.Column()] = true
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
		ok   bool
	}{
		{"FOOD", Food, true},
		{"food", Food, true},
		{"Rent", Property, true},
		{"rent", Property, true},
		{"PROPERTY", Property, true},
		{"Others", Other, true},
		{"other", Other, true},
		{"Medical", Medical, true},
		{"Insurance", "", false},
		{"groceries", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseCategory(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, got, "input %q", tt.in)
		}
	}
}

func TestParseCategoryOrOtherFallsBack(t *testing.T) {
	assert.Equal(t, Transport, ParseCategoryOrOther("transport"))
	assert.Equal(t, Other, ParseCategoryOrOther("groceries"))
	assert.Equal(t, Other, ParseCategoryOrOther(""))
}

func TestLedgerShapeAndOrder(t *testing.T) {
	l := FromAllocations(Allocations{Property: 2000, Food: 1000})
	require.Len(t, l, 7)
	assert.Equal(t, Entry{Category: "Food", Budget: 1000}, l[0])
	assert.Equal(t, Entry{Category: "Rent", Budget: 2000}, l[4])
	// absent categories come back zero-valued, never missing
	assert.Equal(t, Entry{Category: "Electricity", Budget: 0}, l[1])
}

func TestParseEntries(t *testing.T) {
	a, err := ParseEntries([]Entry{{Category: "Food", Budget: 10}, {Category: "rent", Budget: 20}})
	require.NoError(t, err)
	assert.Equal(t, Allocations{Food: 10, Property: 20}, a)

	_, err = ParseEntries([]Entry{{Category: "vacations", Budget: 5}})
	assert.Error(t, err)
}
