package settlement

import (
	"context"
	"fmt"

	"github.com/lovetrip/lovetrip/pkg/expense"
)

type Service interface {
	// Calculate settles all expenses of the plan across the given participants.
	Calculate(ctx context.Context, travelPlanId string, participantIds []string) ([]Summary, error)
}

type ServiceImpl struct {
	expenseRepo expense.Repository
}

func NewService(expenseRepo expense.Repository) *ServiceImpl {
	return &ServiceImpl{expenseRepo: expenseRepo}
}

func (s *ServiceImpl) Calculate(ctx context.Context, travelPlanId string, participantIds []string) ([]Summary, error) {
	expenses, err := s.expenseRepo.ListByPlan(ctx, travelPlanId)
	if err != nil {
		return nil, fmt.Errorf("could not load expenses: %w", err)
	}
	return Settle(expenses, participantIds), nil
}
