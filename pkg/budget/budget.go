package budget

import (
	"time"
)

// Category is the closed set of spending buckets used across budget items
// and expenses. The values are the labels persisted by the product, so they
// stay in the source domain's language.
type Category string

const (
	CategoryTransport Category = "교통비"
	CategoryLodging   Category = "숙박비"
	CategoryFood      Category = "식비"
	CategoryActivity  Category = "액티비티"
	CategoryShopping  Category = "쇼핑"
	CategoryOther     Category = "기타"
)

// Categories returns all categories in their canonical display order.
func Categories() []Category {
	return []Category{
		CategoryTransport,
		CategoryLodging,
		CategoryFood,
		CategoryActivity,
		CategoryShopping,
		CategoryOther,
	}
}

// Known reports whether c is one of the six canonical categories.
func (c Category) Known() bool {
	switch c {
	case CategoryTransport, CategoryLodging, CategoryFood, CategoryActivity, CategoryShopping, CategoryOther:
		return true
	}
	return false
}

// ParseCategory coerces an arbitrary string to a Category, falling back to
// CategoryOther for anything unrecognized. Aggregation deliberately does NOT
// use this coercion: unknown categories are ignored there, not folded into 기타.
func ParseCategory(s string) Category {
	if c := Category(s); c.Known() {
		return c
	}
	return CategoryOther
}

// BudgetItem is a planned (pre-trip) allocation of money to a category
// within a travel plan.
type BudgetItem struct {
	ID            string
	TravelPlanID  string
	Name          string
	Category      Category
	PlannedAmount float64
	CreatedAt     time.Time
}
