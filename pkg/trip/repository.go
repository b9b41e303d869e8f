// Package trip exposes the narrow slice of the travel plan store the budget
// engine needs. Plan CRUD itself lives elsewhere.
package trip

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	// GetTotalBudget returns the plan's total budget. The second return value
	// is false when the plan has no budget set (or does not exist), in which
	// case overspend checks cannot be evaluated.
	GetTotalBudget(ctx context.Context, travelPlanId string) (float64, bool, error)
}

type RepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{pool: pool}
}

func (r *RepositoryImpl) GetTotalBudget(ctx context.Context, travelPlanId string) (float64, bool, error) {
	var totalBudget *float64
	err := r.pool.QueryRow(ctx,
		`SELECT total_budget FROM travel_plans WHERE id = $1`,
		travelPlanId,
	).Scan(&totalBudget)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		err := fmt.Errorf("could not query travel plan budget: %w", err)
		log.Error(err)
		return 0, false, err
	}
	if totalBudget == nil {
		return 0, false, nil
	}
	return *totalBudget, true, nil
}
