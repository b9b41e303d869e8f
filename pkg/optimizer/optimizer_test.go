package optimizer

import (
	"testing"

	"github.com/lovetrip/lovetrip/pkg/budget"
	"github.com/lovetrip/lovetrip/pkg/expense"
	"github.com/lovetrip/lovetrip/pkg/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSummary(planned map[budget.Category]float64, actual map[budget.Category]float64) stats.Summary {
	var items []budget.BudgetItem
	for category, amount := range planned {
		items = append(items, budget.BudgetItem{TravelPlanID: "plan-1", Category: category, PlannedAmount: amount})
	}
	var expenses []expense.Expense
	for category, amount := range actual {
		expenses = append(expenses, expense.Expense{TravelPlanID: "plan-1", Category: category, Amount: amount})
	}
	return stats.Summarize(items, expenses)
}

func totalReduction(suggestions []Suggestion) float64 {
	total := 0.0
	for _, s := range suggestions {
		total += s.Reduction
	}
	return total
}

func TestOptimize(t *testing.T) {
	t.Run("should suggest nothing for a plan within budget and no target", func(t *testing.T) {
		// given
		summary := buildSummary(
			map[budget.Category]float64{budget.CategoryFood: 100000},
			map[budget.Category]float64{budget.CategoryFood: 60000},
		)

		// when
		result := Optimize(summary, nil)

		// then
		assert.False(t, result.IsOverBudget)
		assert.Equal(t, 0.0, result.OverAmount)
		assert.Empty(t, result.Suggestions)
		assert.Equal(t, 100000.0, result.OptimizedDistribution[budget.CategoryFood])
	})

	t.Run("should suggest nothing for an over-budget plan without a target", func(t *testing.T) {
		// Without an explicit target the required reduction is zero even when
		// spend already exceeds the plan, so the over-budget flag comes back
		// set while the suggestion list stays empty. Shipped behavior, kept
		// as is; see DESIGN.md.
		// given
		summary := buildSummary(
			map[budget.Category]float64{budget.CategoryTransport: 100000, budget.CategoryFood: 50000},
			map[budget.Category]float64{budget.CategoryTransport: 150000, budget.CategoryFood: 20000},
		)

		// when
		result := Optimize(summary, nil)

		// then
		assert.True(t, result.IsOverBudget)
		assert.Equal(t, 20000.0, result.OverAmount)
		assert.Empty(t, result.Suggestions)
		assert.Equal(t, 100000.0, result.OptimizedDistribution[budget.CategoryTransport])
		assert.Equal(t, 50000.0, result.OptimizedDistribution[budget.CategoryFood])
	})

	t.Run("should suggest nothing when the target is above the planned total", func(t *testing.T) {
		// given
		summary := buildSummary(
			map[budget.Category]float64{budget.CategoryLodging: 200000},
			map[budget.Category]float64{},
		)
		target := 250000.0

		// when
		result := Optimize(summary, &target)

		// then
		assert.Empty(t, result.Suggestions)
		assert.Equal(t, 200000.0, result.OptimizedDistribution[budget.CategoryLodging])
	})

	t.Run("should cut overspending categories first, biggest overage first", func(t *testing.T) {
		// given
		summary := buildSummary(
			map[budget.Category]float64{
				budget.CategoryTransport: 50000,
				budget.CategoryShopping:  30000,
				budget.CategoryFood:      100000,
			},
			map[budget.Category]float64{
				budget.CategoryTransport: 90000, // 40000 over
				budget.CategoryShopping:  40000, // 10000 over
				budget.CategoryFood:      20000,
			},
		)
		target := 130000.0 // needs 50000, fully covered by the overages

		// when
		result := Optimize(summary, &target)

		// then
		require.Len(t, result.Suggestions, 2)
		assert.Equal(t, budget.CategoryTransport, result.Suggestions[0].Category)
		assert.Equal(t, 40000.0, result.Suggestions[0].Reduction)
		assert.Equal(t, budget.CategoryShopping, result.Suggestions[1].Category)
		assert.Equal(t, 10000.0, result.Suggestions[1].Reduction)
		assert.Contains(t, result.Suggestions[0].Reason, "초과 지출")
	})

	t.Run("should cap savings cuts at 30% of slack and 20% of planned", func(t *testing.T) {
		// given
		summary := buildSummary(
			map[budget.Category]float64{
				budget.CategoryLodging: 100000, // 60000 slack, caps at 18000
				budget.CategoryFood:    50000,
			},
			map[budget.Category]float64{
				budget.CategoryLodging: 40000,
				budget.CategoryFood:    50000,
			},
		)
		target := 120000.0 // needs 30000

		// when
		result := Optimize(summary, &target)

		// then
		require.Len(t, result.Suggestions, 2)

		// lodging takes the capped 18000 plus its 8000 proportional share,
		// food takes its 4000 proportional share
		assert.Equal(t, budget.CategoryLodging, result.Suggestions[0].Category)
		assert.InDelta(t, 26000.0, result.Suggestions[0].Reduction, 1e-9)
		assert.Contains(t, result.Suggestions[0].Reason, "; ")
		assert.Equal(t, budget.CategoryFood, result.Suggestions[1].Category)
		assert.InDelta(t, 4000.0, result.Suggestions[1].Reduction, 1e-9)
	})

	t.Run("should reduce exactly the gap between planned total and target", func(t *testing.T) {
		// given
		summary := buildSummary(
			map[budget.Category]float64{
				budget.CategoryTransport: 80000,
				budget.CategoryLodging:   300000,
				budget.CategoryFood:      120000,
				budget.CategoryActivity:  60000,
			},
			map[budget.Category]float64{
				budget.CategoryTransport: 95000,
				budget.CategoryLodging:   210000,
				budget.CategoryFood:      130000,
				budget.CategoryActivity:  10000,
			},
		)
		target := 450000.0

		// when
		result := Optimize(summary, &target)

		// then
		assert.InDelta(t, summary.TotalPlanned-target, totalReduction(result.Suggestions), 1e-6)
		distributed := 0.0
		for _, c := range budget.Categories() {
			planned := result.OptimizedDistribution[c]
			assert.GreaterOrEqual(t, planned, 0.0)
			distributed += planned
		}
		assert.InDelta(t, target, distributed, 1e-6)
	})

	t.Run("should keep suggested amounts consistent with their reductions", func(t *testing.T) {
		// given
		summary := buildSummary(
			map[budget.Category]float64{
				budget.CategoryLodging: 150000,
				budget.CategoryOther:   30000,
			},
			map[budget.Category]float64{
				budget.CategoryLodging: 50000,
			},
		)
		target := 140000.0

		// when
		result := Optimize(summary, &target)

		// then
		require.NotEmpty(t, result.Suggestions)
		for _, s := range result.Suggestions {
			assert.InDelta(t, s.CurrentPlanned-s.Reduction, s.SuggestedPlanned, 1e-9)
			assert.GreaterOrEqual(t, s.SuggestedPlanned, 0.0)
			assert.Positive(t, s.Reduction)
			assert.NotEmpty(t, s.Reason)
		}
	})
}
