// Package ledger holds the canonical spending-category vocabulary and the
// pure budget logic built on it: allocation validation and daily aggregation.
// Every other representation of a category (budget table column, API label,
// prediction-service field) is derived from the one Category type here so no
// code ever matches category strings ad hoc.
package ledger

import "strings"

// Category identifies a spending category. The set is closed.
type Category string

const (
	Food         Category = "FOOD"
	Electricity  Category = "ELECTRICITY"
	Transport    Category = "TRANSPORT"
	Subscription Category = "SUBSCRIPTION"
	Property     Category = "PROPERTY"
	Medical      Category = "MEDICAL"
	Other        Category = "OTHER"
)

// Categories returns all categories in canonical order. Ledgers returned to
// clients always follow this order.
func Categories() []Category {
	return []Category{Food, Electricity, Transport, Subscription, Property, Medical, Other}
}

// Valid reports whether c is a member of the closed set.
func (c Category) Valid() bool {
	switch c {
	case Food, Electricity, Transport, Subscription, Property, Medical, Other:
		return true
	}
	return false
}

// Label returns the user-facing name. Note the historical drift from the enum
// names: PROPERTY is shown as "Rent" and OTHER as "Others".
func (c Category) Label() string {
	switch c {
	case Food:
		return "Food"
	case Electricity:
		return "Electricity"
	case Transport:
		return "Transport"
	case Subscription:
		return "Subscription"
	case Property:
		return "Rent"
	case Medical:
		return "Medical"
	case Other:
		return "Others"
	}
	return string(c)
}

// UpstreamField returns the JSON field name the prediction service uses for
// this category.
func (c Category) UpstreamField() string {
	switch c {
	case Food:
		return "Food"
	case Electricity:
		return "Electricity"
	case Transport:
		return "Transportation"
	case Subscription:
		return "Paid_services_subscription"
	case Property:
		return "Rent_EMI"
	case Medical:
		return "Insurance"
	case Other:
		return "Others"
	}
	return string(c)
}

// Column returns the budgets table column holding this category's allocation.
func (c Category) Column() string {
	switch c {
	case Food:
		return "food_budget"
	case Electricity:
		return "electricity_budget"
	case Transport:
		return "transport_budget"
	case Subscription:
		return "subscription_budget"
	case Property:
		return "property_budget"
	case Medical:
		return "medical_budget"
	case Other:
		return "other_budget"
	}
	return strings.ToLower(string(c)) + "_budget"
}

// ParseCategory resolves a category from either the enum name or the
// user-facing label, case-insensitively.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	if c := Category(strings.ToUpper(s)); c.Valid() {
		return c, true
	}
	for _, c := range Categories() {
		if strings.EqualFold(s, c.Label()) {
			return c, true
		}
	}
	return "", false
}

// ParseCategoryOrOther is ParseCategory with OTHER as the fallback for
// unrecognized input. Bulk imports use it so a misread category never drops a
// whole batch.
func ParseCategoryOrOther(s string) Category {
	if c, ok := ParseCategory(s); ok {
		return c
	}
	return Other
}
