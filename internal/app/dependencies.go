package app

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lovetrip/lovetrip/internal/config"
	"github.com/lovetrip/lovetrip/internal/event_bus"
	"github.com/lovetrip/lovetrip/pkg/budget"
	"github.com/lovetrip/lovetrip/pkg/expense"
	"github.com/lovetrip/lovetrip/pkg/optimizer"
	"github.com/lovetrip/lovetrip/pkg/settlement"
	"github.com/lovetrip/lovetrip/pkg/stats"
	"github.com/lovetrip/lovetrip/pkg/trip"
	log "github.com/sirupsen/logrus"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Bus *event_bus.EventBus

	TripRepo trip.Repository

	BudgetRepo    budget.Repository
	BudgetService budget.Service
	BudgetHandler *budget.Handler

	ExpenseRepo    expense.Repository
	ExpenseService expense.Service
	ExpenseHandler *expense.Handler

	StatsService stats.Service
	StatsHandler *stats.Handler

	OptimizerService optimizer.Service
	OptimizerHandler *optimizer.Handler

	SettlementService settlement.Service
	SettlementHandler *settlement.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(pool *pgxpool.Pool, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Bus = event_bus.NewEventBus()

	deps.TripRepo = trip.NewRepository(pool)

	deps.BudgetRepo = budget.NewRepository(pool)
	deps.BudgetService = budget.NewService(deps.BudgetRepo)
	deps.BudgetHandler = budget.NewHandler(deps.BudgetService)

	deps.ExpenseRepo = expense.NewRepository(pool)
	deps.ExpenseService = expense.NewService(deps.ExpenseRepo, deps.Bus)
	deps.ExpenseHandler = expense.NewHandler(deps.ExpenseService)

	deps.StatsService = stats.NewService(deps.BudgetRepo, deps.ExpenseRepo, deps.TripRepo, cfg.Budget.OverspendThreshold)
	deps.StatsHandler = stats.NewHandler(deps.StatsService)

	deps.OptimizerService = optimizer.NewService(deps.StatsService, deps.BudgetRepo)
	deps.OptimizerHandler = optimizer.NewHandler(deps.OptimizerService)

	deps.SettlementService = settlement.NewService(deps.ExpenseRepo)
	deps.SettlementHandler = settlement.NewHandler(deps.SettlementService)

	// Every recorded expense triggers an overspend check so warnings land in
	// the log as soon as a plan crosses its threshold.
	event_bus.SubscribeTyped[event_bus.ExpenseRecorded](deps.Bus, event_bus.EventTypeExpenseRecorded,
		func(e event_bus.EventT[event_bus.ExpenseRecorded]) error {
			status, err := deps.StatsService.CheckBudgetExceeded(e.Context(), e.Data.TravelPlanID, 0)
			if err != nil {
				return err
			}
			if status.Exceeded {
				log.Warnf("travel plan %s is over budget by %.1f%%: %s", e.Data.TravelPlanID, status.Percentage, status.Message)
			}
			return nil
		})

	return deps
}
