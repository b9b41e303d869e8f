package stats

import (
	"fmt"

	"github.com/lovetrip/lovetrip/pkg/budget"
	"github.com/lovetrip/lovetrip/pkg/expense"
)

// CategoryTotals holds the planned and actual spend of one category.
type CategoryTotals struct {
	Planned float64
	Actual  float64
}

// Summary is the planned-vs-actual picture of a whole travel plan. ByCategory
// always contains every canonical category, even when nothing was recorded
// for it.
type Summary struct {
	TotalPlanned float64
	TotalActual  float64
	Remaining    float64
	ByCategory   map[budget.Category]CategoryTotals
}

// Summarize reduces budget items and expenses into a Summary. Items and
// expenses with unrecognized categories count towards nothing: they are
// tolerated and skipped, not folded into 기타.
func Summarize(items []budget.BudgetItem, expenses []expense.Expense) Summary {
	byCategory := make(map[budget.Category]CategoryTotals, 6)
	for _, c := range budget.Categories() {
		byCategory[c] = CategoryTotals{}
	}

	for _, item := range items {
		if totals, ok := byCategory[item.Category]; ok {
			totals.Planned += item.PlannedAmount
			byCategory[item.Category] = totals
		}
	}

	for _, exp := range expenses {
		if totals, ok := byCategory[exp.Category]; ok {
			totals.Actual += exp.Amount
			byCategory[exp.Category] = totals
		}
	}

	// Totals are derived from the buckets so that the per-category sums and
	// the totals can never drift apart.
	totalPlanned := 0.0
	totalActual := 0.0
	for _, totals := range byCategory {
		totalPlanned += totals.Planned
		totalActual += totals.Actual
	}

	return Summary{
		TotalPlanned: totalPlanned,
		TotalActual:  totalActual,
		Remaining:    totalPlanned - totalActual,
		ByCategory:   byCategory,
	}
}

// OverspendStatus is the outcome of an overspend check against a plan's
// total budget.
type OverspendStatus struct {
	Exceeded   bool
	Percentage float64
	Message    string
}

// CheckOverspend compares actual spend against a total budget. The threshold
// is a fraction (0.10 = warn above 10% overspend). A zero or negative budget
// cannot be evaluated and never counts as exceeded.
func CheckOverspend(totalBudget float64, totalActual float64, threshold float64) OverspendStatus {
	if totalBudget <= 0 {
		return OverspendStatus{Exceeded: false, Percentage: 0}
	}

	percentage := (totalActual - totalBudget) / totalBudget * 100
	exceeded := percentage > threshold*100

	status := OverspendStatus{Exceeded: exceeded, Percentage: percentage}
	if exceeded {
		status.Message = fmt.Sprintf("예산을 %.1f%% 초과했습니다. 대안 코스를 확인해보세요.", percentage)
	}
	return status
}
