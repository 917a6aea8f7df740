package ledger

import "fmt"

// Allocations maps categories to allocated amounts. A missing key means the
// category has no allocation (distinct from zero).
type Allocations map[Category]float64

// Entry is one category's allocation as exposed over the API.
type Entry struct {
	Category string  `json:"category"`
	Budget   float64 `json:"budget"`
}

// Ledger is an ordered list of allocations, one entry per category in
// canonical order.
type Ledger []Entry

// FromAllocations builds a Ledger in canonical order. Categories absent from
// a carry a zero budget so the shape is always stable for clients.
func FromAllocations(a Allocations) Ledger {
	out := make(Ledger, 0, len(Categories()))
	for _, c := range Categories() {
		out = append(out, Entry{Category: c.Label(), Budget: a[c]})
	}
	return out
}

// ParseEntries converts client-submitted entries back into Allocations. An
// unrecognized category name is an error: acceptance must never guess.
func ParseEntries(entries []Entry) (Allocations, error) {
	a := make(Allocations, len(entries))
	for _, e := range entries {
		c, ok := ParseCategory(e.Category)
		if !ok {
			return nil, fmt.Errorf("unknown category %q", e.Category)
		}
		a[c] = e.Budget
	}
	return a, nil
}

// Sum returns the total of all allocations.
func Sum(a Allocations) float64 {
	var total float64
	for _, v := range a {
		total += v
	}
	return total
}
