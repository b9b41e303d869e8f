package stats

import (
	"context"
	"fmt"

	"github.com/lovetrip/lovetrip/pkg/budget"
	"github.com/lovetrip/lovetrip/pkg/expense"
	"github.com/lovetrip/lovetrip/pkg/trip"
	log "github.com/sirupsen/logrus"
)

// DefaultOverspendThreshold is used when the caller does not provide one.
const DefaultOverspendThreshold = 0.10

type Service interface {
	GetSummary(ctx context.Context, travelPlanId string) (Summary, error)
	// CheckBudgetExceeded compares the plan's actual spend against its total
	// budget. A threshold <= 0 falls back to the configured default.
	CheckBudgetExceeded(ctx context.Context, travelPlanId string, threshold float64) (OverspendStatus, error)
}

type ServiceImpl struct {
	budgetRepo       budget.Repository
	expenseRepo      expense.Repository
	tripRepo         trip.Repository
	defaultThreshold float64
}

func NewService(budgetRepo budget.Repository, expenseRepo expense.Repository, tripRepo trip.Repository, defaultThreshold float64) *ServiceImpl {
	if defaultThreshold <= 0 {
		defaultThreshold = DefaultOverspendThreshold
	}
	return &ServiceImpl{
		budgetRepo:       budgetRepo,
		expenseRepo:      expenseRepo,
		tripRepo:         tripRepo,
		defaultThreshold: defaultThreshold,
	}
}

func (s *ServiceImpl) GetSummary(ctx context.Context, travelPlanId string) (Summary, error) {
	items, err := s.budgetRepo.ListByPlan(ctx, travelPlanId)
	if err != nil {
		return Summary{}, fmt.Errorf("could not load budget items: %w", err)
	}

	withSplits, err := s.expenseRepo.ListByPlan(ctx, travelPlanId)
	if err != nil {
		return Summary{}, fmt.Errorf("could not load expenses: %w", err)
	}
	expenses := make([]expense.Expense, 0, len(withSplits))
	for _, exp := range withSplits {
		expenses = append(expenses, exp.Expense)
	}

	return Summarize(items, expenses), nil
}

func (s *ServiceImpl) CheckBudgetExceeded(ctx context.Context, travelPlanId string, threshold float64) (OverspendStatus, error) {
	if threshold <= 0 {
		threshold = s.defaultThreshold
	}

	totalBudget, hasBudget, err := s.tripRepo.GetTotalBudget(ctx, travelPlanId)
	if err != nil {
		return OverspendStatus{}, fmt.Errorf("could not load travel plan budget: %w", err)
	}
	if !hasBudget {
		log.Debugf("travel plan %s has no total budget, skipping overspend check", travelPlanId)
		return OverspendStatus{Exceeded: false, Percentage: 0}, nil
	}

	withSplits, err := s.expenseRepo.ListByPlan(ctx, travelPlanId)
	if err != nil {
		return OverspendStatus{}, fmt.Errorf("could not load expenses: %w", err)
	}
	totalActual := 0.0
	for _, exp := range withSplits {
		totalActual += exp.Amount
	}

	return CheckOverspend(totalBudget, totalActual, threshold), nil
}
