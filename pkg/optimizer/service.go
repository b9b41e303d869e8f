package optimizer

import (
	"context"
	"fmt"

	"github.com/lovetrip/lovetrip/pkg/budget"
	"github.com/lovetrip/lovetrip/pkg/stats"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	// Optimize builds reduction suggestions for the plan. targetBudget is
	// optional; without it only the current planned total is targeted.
	Optimize(ctx context.Context, travelPlanId string, targetBudget *float64) (Result, error)
	// Apply persists the suggested planned amounts in one transaction.
	Apply(ctx context.Context, travelPlanId string, suggestions []Suggestion) error
}

type ServiceImpl struct {
	statsService stats.Service
	budgetRepo   budget.Repository
}

func NewService(statsService stats.Service, budgetRepo budget.Repository) *ServiceImpl {
	return &ServiceImpl{statsService: statsService, budgetRepo: budgetRepo}
}

func (s *ServiceImpl) Optimize(ctx context.Context, travelPlanId string, targetBudget *float64) (Result, error) {
	summary, err := s.statsService.GetSummary(ctx, travelPlanId)
	if err != nil {
		return Result{}, fmt.Errorf("could not load budget summary: %w", err)
	}
	return Optimize(summary, targetBudget), nil
}

func (s *ServiceImpl) Apply(ctx context.Context, travelPlanId string, suggestions []Suggestion) error {
	if len(suggestions) == 0 {
		return nil
	}

	amounts := make(map[budget.Category]float64, len(suggestions))
	for _, suggestion := range suggestions {
		suggested := suggestion.SuggestedPlanned
		if suggested < 0 {
			log.Warnf("clamping negative suggested amount for category %s", suggestion.Category)
			suggested = 0
		}
		amounts[suggestion.Category] = suggested
	}

	if err := s.budgetRepo.ApplyPlannedAmounts(ctx, travelPlanId, amounts); err != nil {
		return fmt.Errorf("could not apply optimization suggestions: %w", err)
	}
	log.Infof("applied %d optimization suggestion(s) to plan %s", len(amounts), travelPlanId)
	return nil
}
