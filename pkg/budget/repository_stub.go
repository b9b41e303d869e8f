package budget

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
)

type StubRepository struct {
	data map[string]BudgetItem
	now  time.Time
}

func NewStubRepository() *StubRepository {
	return &StubRepository{
		data: map[string]BudgetItem{},
		now:  time.Now(),
	}
}

func (s *StubRepository) ListByPlan(ctx context.Context, travelPlanId string) ([]BudgetItem, error) {
	items := make([]BudgetItem, 0, len(s.data))
	for _, item := range s.data {
		if item.TravelPlanID == travelPlanId {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) })
	return items, nil
}

func (s *StubRepository) Store(ctx context.Context, item BudgetItem) (BudgetItem, error) {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	s.now = s.now.Add(time.Millisecond)
	item.CreatedAt = s.now
	s.data[item.ID] = item
	return item, nil
}

func (s *StubRepository) Update(ctx context.Context, item BudgetItem) (bool, error) {
	existing, ok := s.data[item.ID]
	if !ok || existing.TravelPlanID != item.TravelPlanID {
		return false, nil
	}
	item.CreatedAt = existing.CreatedAt
	s.data[item.ID] = item
	return true, nil
}

func (s *StubRepository) Delete(ctx context.Context, travelPlanId string, itemId string) (bool, error) {
	existing, ok := s.data[itemId]
	if !ok || existing.TravelPlanID != travelPlanId {
		return false, nil
	}
	delete(s.data, itemId)
	return true, nil
}

func (s *StubRepository) ApplyPlannedAmounts(ctx context.Context, travelPlanId string, amounts map[Category]float64) error {
	for category, newTotal := range amounts {
		items, _ := s.ListByPlan(ctx, travelPlanId)
		var categoryItems []BudgetItem
		oldTotal := 0.0
		for _, item := range items {
			if item.Category == category {
				categoryItems = append(categoryItems, item)
				oldTotal += item.PlannedAmount
			}
		}
		for i, item := range categoryItems {
			newAmount := 0.0
			if oldTotal > 0 {
				newAmount = newTotal * item.PlannedAmount / oldTotal
			} else if i == 0 {
				newAmount = newTotal
			}
			item.PlannedAmount = newAmount
			s.data[item.ID] = item
		}
	}
	return nil
}

func (s *StubRepository) Cleanup() {
	s.data = map[string]BudgetItem{}
}
