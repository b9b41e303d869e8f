package expense

import (
	"context"
	"fmt"
	"math"

	"github.com/lovetrip/lovetrip/internal/event_bus"
	"github.com/lovetrip/lovetrip/internal/utils"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	List(ctx context.Context, travelPlanId string) ([]WithSplits, error)
	// Create records an expense. When participantIds is non-empty the amount
	// is split evenly across them and the splits are stored with the expense.
	Create(ctx context.Context, exp Expense, participantIds []string) (WithSplits, error)
	Update(ctx context.Context, exp Expense) (bool, error)
	Delete(ctx context.Context, travelPlanId string, expenseId string) (bool, error)
	MarkSplitPaid(ctx context.Context, expenseId string, splitId string, paid bool) (bool, error)
}

type ServiceImpl struct {
	repo  Repository
	bus   *event_bus.EventBus
	clock utils.Clock
}

func NewService(repo Repository, bus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, bus: bus, clock: utils.SystemClock{}}
}

func (s *ServiceImpl) List(ctx context.Context, travelPlanId string) ([]WithSplits, error) {
	return s.repo.ListByPlan(ctx, travelPlanId)
}

func (s *ServiceImpl) Create(ctx context.Context, exp Expense, participantIds []string) (WithSplits, error) {
	if exp.ExpenseDate.IsZero() {
		exp.ExpenseDate = s.clock.Now()
	}

	var splits []Split
	if len(participantIds) > 0 {
		shares := EvenShares(exp.Amount, len(participantIds))
		splits = make([]Split, 0, len(participantIds))
		for i, userId := range participantIds {
			splits = append(splits, Split{
				UserID: userId,
				Amount: shares[i],
				IsPaid: false,
			})
		}
	}

	created, err := s.repo.Store(ctx, exp, splits)
	if err != nil {
		return WithSplits{}, fmt.Errorf("could not create expense: %w", err)
	}

	if s.bus != nil {
		err := s.bus.Publish(event_bus.NewEvent(ctx, event_bus.EventTypeExpenseRecorded, event_bus.ExpenseRecorded{
			TravelPlanID: created.TravelPlanID,
			ExpenseID:    created.ID,
			Category:     string(created.Category),
			Amount:       created.Amount,
		}))
		if err != nil {
			// The expense is already stored; subscriber failures must not fail the request.
			log.Warnf("expense recorded event handling failed: %v", err)
		}
	}

	return created, nil
}

func (s *ServiceImpl) Update(ctx context.Context, exp Expense) (bool, error) {
	updated, err := s.repo.Update(ctx, exp)
	if err != nil {
		return false, err
	}
	if !updated {
		log.Warnf("expense not updated, probably because it does not exist (%s) in plan %s", exp.ID, exp.TravelPlanID)
	}
	return updated, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, travelPlanId string, expenseId string) (bool, error) {
	deleted, err := s.repo.Delete(ctx, travelPlanId, expenseId)
	if err != nil {
		return false, err
	}
	if !deleted {
		log.Warnf("expense not deleted, probably because it does not exist (%s) in plan %s", expenseId, travelPlanId)
	}
	return deleted, nil
}

func (s *ServiceImpl) MarkSplitPaid(ctx context.Context, expenseId string, splitId string, paid bool) (bool, error) {
	return s.repo.SetSplitPaid(ctx, expenseId, splitId, paid)
}

// EvenShares divides amount into n shares using the largest-remainder rule in
// whole currency units: every share gets the floored base amount and the
// leftover units go to the earliest shares, one unit each. For integral
// amounts the shares always sum back to the original amount, which keeps
// settlement ledgers balanced.
func EvenShares(amount float64, n int) []float64 {
	shares := make([]float64, n)
	if n == 0 {
		return shares
	}

	base := math.Floor(amount / float64(n))
	remainder := int(math.Round(amount - base*float64(n)))
	for i := range shares {
		shares[i] = base
		if i < remainder {
			shares[i]++
		}
	}
	return shares
}
