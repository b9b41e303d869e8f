package budget

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	// ListByPlan returns all budget items of a travel plan ordered by creation time.
	ListByPlan(ctx context.Context, travelPlanId string) ([]BudgetItem, error)
	Store(ctx context.Context, item BudgetItem) (BudgetItem, error)
	Update(ctx context.Context, item BudgetItem) (bool, error)
	Delete(ctx context.Context, travelPlanId string, itemId string) (bool, error)
	// ApplyPlannedAmounts sets new per-category planned totals in a single
	// transaction, locking the plan's items for the duration so concurrent
	// optimizer runs cannot interleave their writes.
	ApplyPlannedAmounts(ctx context.Context, travelPlanId string, amounts map[Category]float64) error
}

type RepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{pool: pool}
}

func (r *RepositoryImpl) ListByPlan(ctx context.Context, travelPlanId string) ([]BudgetItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, travel_plan_id, name, category, planned_amount, created_at
		 FROM budget_items WHERE travel_plan_id = $1 ORDER BY created_at`,
		travelPlanId,
	)
	if err != nil {
		err := fmt.Errorf("could not query budget items: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var items []BudgetItem
	for rows.Next() {
		var item BudgetItem
		if err := rows.Scan(
			&item.ID,
			&item.TravelPlanID,
			&item.Name,
			&item.Category,
			&item.PlannedAmount,
			&item.CreatedAt,
		); err != nil {
			err := fmt.Errorf("could not scan budget item: %w", err)
			log.Error(err)
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over budget items: %w", err)
		log.Error(err)
		return nil, err
	}

	return items, nil
}

func (r *RepositoryImpl) Store(ctx context.Context, item BudgetItem) (BudgetItem, error) {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO budget_items (id, travel_plan_id, name, category, planned_amount)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`,
		item.ID, item.TravelPlanID, item.Name, item.Category, item.PlannedAmount,
	).Scan(&item.CreatedAt)
	if err != nil {
		err := fmt.Errorf("could not store budget item: %w", err)
		log.Error(err)
		return BudgetItem{}, err
	}
	return item, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, item BudgetItem) (bool, error) {
	result, err := r.pool.Exec(ctx,
		`UPDATE budget_items SET name = $1, category = $2, planned_amount = $3, updated_at = now()
		 WHERE id = $4 AND travel_plan_id = $5`,
		item.Name, item.Category, item.PlannedAmount, item.ID, item.TravelPlanID,
	)
	if err != nil {
		err := fmt.Errorf("could not update budget item: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, travelPlanId string, itemId string) (bool, error) {
	result, err := r.pool.Exec(ctx,
		`DELETE FROM budget_items WHERE id = $1 AND travel_plan_id = $2`,
		itemId, travelPlanId,
	)
	if err != nil {
		err := fmt.Errorf("could not delete budget item: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func (r *RepositoryImpl) ApplyPlannedAmounts(ctx context.Context, travelPlanId string, amounts map[Category]float64) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		err := fmt.Errorf("could not begin transaction: %w", err)
		log.Error(err)
		return err
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx,
		`SELECT id, category, planned_amount FROM budget_items
		 WHERE travel_plan_id = $1 ORDER BY created_at FOR UPDATE`,
		travelPlanId,
	)
	if err != nil {
		err := fmt.Errorf("could not lock budget items: %w", err)
		log.Error(err)
		return err
	}

	type lockedItem struct {
		id       string
		category Category
		planned  float64
	}
	var items []lockedItem
	for rows.Next() {
		var item lockedItem
		if err := rows.Scan(&item.id, &item.category, &item.planned); err != nil {
			rows.Close()
			err := fmt.Errorf("could not scan locked budget item: %w", err)
			log.Error(err)
			return err
		}
		items = append(items, item)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over locked budget items: %w", err)
		log.Error(err)
		return err
	}

	for category, newTotal := range amounts {
		categoryItems := make([]lockedItem, 0, len(items))
		oldTotal := 0.0
		for _, item := range items {
			if item.category == category {
				categoryItems = append(categoryItems, item)
				oldTotal += item.planned
			}
		}
		if len(categoryItems) == 0 {
			log.Debugf("no budget items in category %s for plan %s, skipping", category, travelPlanId)
			continue
		}

		// A category can hold several items; the new total is spread
		// proportionally to each item's previous share. When the previous
		// total was zero, the whole amount lands on the first item.
		for i, item := range categoryItems {
			newAmount := 0.0
			if oldTotal > 0 {
				newAmount = newTotal * item.planned / oldTotal
			} else if i == 0 {
				newAmount = newTotal
			}
			if _, err := tx.Exec(ctx,
				`UPDATE budget_items SET planned_amount = $1, updated_at = now() WHERE id = $2`,
				newAmount, item.id,
			); err != nil {
				err := fmt.Errorf("could not apply planned amount for category %s: %w", category, err)
				log.Error(err)
				return err
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		err := fmt.Errorf("could not commit planned amounts: %w", err)
		log.Error(err)
		return err
	}
	return nil
}
