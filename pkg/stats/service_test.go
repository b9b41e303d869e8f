package stats

import (
	"context"
	"testing"

	"github.com/lovetrip/lovetrip/pkg/budget"
	"github.com/lovetrip/lovetrip/pkg/expense"
	"github.com/lovetrip/lovetrip/pkg/trip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

var budgetRepoStub = budget.NewStubRepository()
var expenseRepoStub = expense.NewStubRepository()
var tripRepoStub = trip.NewStubRepository()

var service Service

func setup(t *testing.T) func() {
	service = NewService(budgetRepoStub, expenseRepoStub, tripRepoStub, 0.10)
	return func() {
		t.Log("Teardown after test")
		budgetRepoStub.Cleanup()
		expenseRepoStub.Cleanup()
		tripRepoStub.Cleanup()
	}
}

func TestServiceImpl_GetSummary(t *testing.T) {
	t.Run("should summarize stored items and expenses", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		_, err := budgetRepoStub.Store(ctx, budget.BudgetItem{TravelPlanID: "plan-1", Category: budget.CategoryLodging, PlannedAmount: 200000})
		require.NoError(t, err)
		_, err = expenseRepoStub.Store(ctx, expense.Expense{TravelPlanID: "plan-1", Category: budget.CategoryLodging, Amount: 180000, PaidByUserID: "u1"}, nil)
		require.NoError(t, err)

		// when
		summary, err := service.GetSummary(ctx, "plan-1")

		// then
		assert.NoError(t, err)
		assert.Equal(t, 200000.0, summary.TotalPlanned)
		assert.Equal(t, 180000.0, summary.TotalActual)
		assert.Equal(t, 20000.0, summary.Remaining)
	})

	t.Run("should return an all-zero summary for an empty plan", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		summary, err := service.GetSummary(ctx, "plan-1")

		// then
		assert.NoError(t, err)
		assert.Equal(t, 0.0, summary.TotalPlanned)
		assert.Len(t, summary.ByCategory, 6)
	})
}

func TestServiceImpl_CheckBudgetExceeded(t *testing.T) {
	t.Run("should warn when spend exceeds the threshold", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		tripRepoStub.SetTotalBudget("plan-1", 100000)
		_, err := expenseRepoStub.Store(ctx, expense.Expense{TravelPlanID: "plan-1", Category: budget.CategoryFood, Amount: 120000, PaidByUserID: "u1"}, nil)
		require.NoError(t, err)

		// when
		status, err := service.CheckBudgetExceeded(ctx, "plan-1", 0.10)

		// then
		assert.NoError(t, err)
		assert.True(t, status.Exceeded)
		assert.InDelta(t, 20.0, status.Percentage, 1e-9)
		assert.NotEmpty(t, status.Message)
	})

	t.Run("should not evaluate plans without a total budget", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		_, err := expenseRepoStub.Store(ctx, expense.Expense{TravelPlanID: "plan-1", Category: budget.CategoryFood, Amount: 999999, PaidByUserID: "u1"}, nil)
		require.NoError(t, err)

		// when
		status, err := service.CheckBudgetExceeded(ctx, "plan-1", 0.10)

		// then
		assert.NoError(t, err)
		assert.False(t, status.Exceeded)
		assert.Equal(t, 0.0, status.Percentage)
	})

	t.Run("should fall back to the default threshold when none is given", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		tripRepoStub.SetTotalBudget("plan-1", 100000)
		_, err := expenseRepoStub.Store(ctx, expense.Expense{TravelPlanID: "plan-1", Category: budget.CategoryFood, Amount: 105000, PaidByUserID: "u1"}, nil)
		require.NoError(t, err)

		// when
		status, err := service.CheckBudgetExceeded(ctx, "plan-1", 0)

		// then
		assert.NoError(t, err)
		assert.False(t, status.Exceeded)
		assert.InDelta(t, 5.0, status.Percentage, 1e-9)
	})
}
