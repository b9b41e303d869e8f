package expense

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
)

type StubRepository struct {
	data map[string]WithSplits
	now  time.Time
}

func NewStubRepository() *StubRepository {
	return &StubRepository{
		data: map[string]WithSplits{},
		now:  time.Now(),
	}
}

func (s *StubRepository) ListByPlan(ctx context.Context, travelPlanId string) ([]WithSplits, error) {
	expenses := make([]WithSplits, 0, len(s.data))
	for _, exp := range s.data {
		if exp.TravelPlanID == travelPlanId {
			expenses = append(expenses, exp)
		}
	}
	sort.Slice(expenses, func(i, j int) bool {
		if !expenses[i].ExpenseDate.Equal(expenses[j].ExpenseDate) {
			return expenses[i].ExpenseDate.After(expenses[j].ExpenseDate)
		}
		return expenses[i].CreatedAt.After(expenses[j].CreatedAt)
	})
	return expenses, nil
}

func (s *StubRepository) Store(ctx context.Context, exp Expense, splits []Split) (WithSplits, error) {
	if exp.ID == "" {
		exp.ID = uuid.NewString()
	}
	s.now = s.now.Add(time.Millisecond)
	exp.CreatedAt = s.now
	stored := make([]Split, 0, len(splits))
	for _, split := range splits {
		if split.ID == "" {
			split.ID = uuid.NewString()
		}
		split.ExpenseID = exp.ID
		stored = append(stored, split)
	}
	withSplits := WithSplits{Expense: exp, Splits: stored}
	s.data[exp.ID] = withSplits
	return withSplits, nil
}

func (s *StubRepository) Update(ctx context.Context, exp Expense) (bool, error) {
	existing, ok := s.data[exp.ID]
	if !ok || existing.TravelPlanID != exp.TravelPlanID {
		return false, nil
	}
	exp.CreatedAt = existing.CreatedAt
	s.data[exp.ID] = WithSplits{Expense: exp, Splits: existing.Splits}
	return true, nil
}

func (s *StubRepository) Delete(ctx context.Context, travelPlanId string, expenseId string) (bool, error) {
	existing, ok := s.data[expenseId]
	if !ok || existing.TravelPlanID != travelPlanId {
		return false, nil
	}
	delete(s.data, expenseId)
	return true, nil
}

func (s *StubRepository) SetSplitPaid(ctx context.Context, expenseId string, splitId string, paid bool) (bool, error) {
	existing, ok := s.data[expenseId]
	if !ok {
		return false, nil
	}
	for i, split := range existing.Splits {
		if split.ID == splitId {
			existing.Splits[i].IsPaid = paid
			s.data[expenseId] = existing
			return true, nil
		}
	}
	return false, nil
}

func (s *StubRepository) Cleanup() {
	s.data = map[string]WithSplits{}
}
