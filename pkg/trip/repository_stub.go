package trip

import "context"

type StubRepository struct {
	budgets map[string]float64
}

func NewStubRepository() *StubRepository {
	return &StubRepository{budgets: map[string]float64{}}
}

func (s *StubRepository) SetTotalBudget(travelPlanId string, totalBudget float64) {
	s.budgets[travelPlanId] = totalBudget
}

func (s *StubRepository) GetTotalBudget(ctx context.Context, travelPlanId string) (float64, bool, error) {
	budget, ok := s.budgets[travelPlanId]
	return budget, ok, nil
}

func (s *StubRepository) Cleanup() {
	s.budgets = map[string]float64{}
}
