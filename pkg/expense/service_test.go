package expense

import (
	"context"
	"testing"
	"time"

	"github.com/lovetrip/lovetrip/internal/event_bus"
	"github.com/lovetrip/lovetrip/internal/utils"
	"github.com/lovetrip/lovetrip/pkg/budget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

var repoStub = NewStubRepository()
var bus *event_bus.EventBus
var mockClock = &utils.MockClock{}

var service *ServiceImpl

func setup(t *testing.T) func() {
	bus = event_bus.NewEventBus()
	mockClock.SetNow(time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC))
	service = NewService(repoStub, bus)
	service.clock = mockClock
	return func() {
		t.Log("Teardown after test")
		repoStub.Cleanup()
	}
}

func TestServiceImpl_Create(t *testing.T) {
	t.Run("should create an expense without splits", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		exp := Expense{
			TravelPlanID: "plan-1",
			Name:         "점심",
			Category:     budget.CategoryFood,
			Amount:       45000,
			PaidByUserID: "u1",
			ExpenseDate:  time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		}

		// when
		created, err := service.Create(ctx, exp, nil)

		// then
		assert.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Empty(t, created.Splits)
		assert.Equal(t, 45000.0, created.Amount)
	})

	t.Run("should split the amount evenly across participants", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		exp := Expense{
			TravelPlanID: "plan-1",
			Category:     budget.CategoryActivity,
			Amount:       100001,
			PaidByUserID: "u1",
		}

		// when
		created, err := service.Create(ctx, exp, []string{"u1", "u2"})

		// then
		assert.NoError(t, err)
		require.Len(t, created.Splits, 2)
		assert.Equal(t, "u1", created.Splits[0].UserID)
		assert.Equal(t, 50001.0, created.Splits[0].Amount)
		assert.Equal(t, "u2", created.Splits[1].UserID)
		assert.Equal(t, 50000.0, created.Splits[1].Amount)
		assert.False(t, created.Splits[0].IsPaid)
	})

	t.Run("should default the expense date to the current time", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		exp := Expense{
			TravelPlanID: "plan-1",
			Category:     budget.CategoryTransport,
			Amount:       12000,
			PaidByUserID: "u1",
		}

		// when
		created, err := service.Create(ctx, exp, nil)

		// then
		assert.NoError(t, err)
		assert.Equal(t, mockClock.FixedNow, created.ExpenseDate)
	})

	t.Run("should publish an event for the recorded expense", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		var recorded *event_bus.ExpenseRecorded
		event_bus.SubscribeTyped(bus, event_bus.EventTypeExpenseRecorded, func(e event_bus.EventT[event_bus.ExpenseRecorded]) error {
			recorded = &e.Data
			return nil
		})
		exp := Expense{
			TravelPlanID: "plan-1",
			Category:     budget.CategoryShopping,
			Amount:       30000,
			PaidByUserID: "u2",
		}

		// when
		created, err := service.Create(ctx, exp, nil)

		// then
		assert.NoError(t, err)
		require.NotNil(t, recorded)
		assert.Equal(t, "plan-1", recorded.TravelPlanID)
		assert.Equal(t, created.ID, recorded.ExpenseID)
		assert.Equal(t, 30000.0, recorded.Amount)
	})
}

func TestServiceImpl_MarkSplitPaid(t *testing.T) {
	t.Run("should mark a split as paid", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		created, err := service.Create(ctx, Expense{
			TravelPlanID: "plan-1",
			Category:     budget.CategoryFood,
			Amount:       60000,
			PaidByUserID: "u1",
		}, []string{"u1", "u2"})
		require.NoError(t, err)

		// when
		updated, err := service.MarkSplitPaid(ctx, created.ID, created.Splits[1].ID, true)

		// then
		assert.NoError(t, err)
		assert.True(t, updated)
		expenses, err := service.List(ctx, "plan-1")
		require.NoError(t, err)
		assert.True(t, expenses[0].Splits[1].IsPaid)
	})

	t.Run("should report an unknown split", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		updated, err := service.MarkSplitPaid(ctx, "missing", "missing", true)

		// then
		assert.NoError(t, err)
		assert.False(t, updated)
	})
}

func TestEvenShares(t *testing.T) {
	t.Run("should divide integral amounts without losing units", func(t *testing.T) {
		cases := []struct {
			amount float64
			n      int
			want   []float64
		}{
			{60000, 2, []float64{30000, 30000}},
			{100001, 2, []float64{50001, 50000}},
			{100, 3, []float64{34, 33, 33}},
			{2, 3, []float64{1, 1, 0}},
		}
		for _, c := range cases {
			assert.Equal(t, c.want, EvenShares(c.amount, c.n))
		}
	})

	t.Run("should return an empty slice for zero shares", func(t *testing.T) {
		assert.Empty(t, EvenShares(100, 0))
	})
}
