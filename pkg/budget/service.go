package budget

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
)

type Service interface {
	ListItems(ctx context.Context, travelPlanId string) ([]BudgetItem, error)
	CreateItem(ctx context.Context, item BudgetItem) (BudgetItem, error)
	UpdateItem(ctx context.Context, item BudgetItem) (bool, error)
	DeleteItem(ctx context.Context, travelPlanId string, itemId string) (bool, error)
	// EstimateFromPlace estimates a typical cost from a place's price level.
	EstimateFromPlace(priceLevel int, category Category) float64
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) ListItems(ctx context.Context, travelPlanId string) ([]BudgetItem, error) {
	return s.repo.ListByPlan(ctx, travelPlanId)
}

func (s *ServiceImpl) CreateItem(ctx context.Context, item BudgetItem) (BudgetItem, error) {
	if item.PlannedAmount < 0 {
		return BudgetItem{}, fmt.Errorf("planned amount cannot be negative")
	}
	return s.repo.Store(ctx, item)
}

func (s *ServiceImpl) UpdateItem(ctx context.Context, item BudgetItem) (bool, error) {
	if item.PlannedAmount < 0 {
		return false, fmt.Errorf("planned amount cannot be negative")
	}
	updated, err := s.repo.Update(ctx, item)
	if err != nil {
		return false, err
	}
	if !updated {
		log.Warnf("budget item not updated, probably because it does not exist (%s) in plan %s", item.ID, item.TravelPlanID)
	}
	return updated, nil
}

func (s *ServiceImpl) DeleteItem(ctx context.Context, travelPlanId string, itemId string) (bool, error) {
	deleted, err := s.repo.Delete(ctx, travelPlanId, itemId)
	if err != nil {
		return false, err
	}
	if !deleted {
		log.Warnf("budget item not deleted, probably because it does not exist (%s) in plan %s", itemId, travelPlanId)
	}
	return deleted, nil
}

func (s *ServiceImpl) EstimateFromPlace(priceLevel int, category Category) float64 {
	return Estimate(priceLevel, category)
}
