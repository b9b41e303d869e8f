package expense

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	// ListByPlan returns all expenses of a travel plan with their splits,
	// newest expense first.
	ListByPlan(ctx context.Context, travelPlanId string) ([]WithSplits, error)
	// Store persists an expense and its splits atomically.
	Store(ctx context.Context, exp Expense, splits []Split) (WithSplits, error)
	Update(ctx context.Context, exp Expense) (bool, error)
	Delete(ctx context.Context, travelPlanId string, expenseId string) (bool, error)
	SetSplitPaid(ctx context.Context, expenseId string, splitId string, paid bool) (bool, error)
}

type RepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{pool: pool}
}

func (r *RepositoryImpl) ListByPlan(ctx context.Context, travelPlanId string) ([]WithSplits, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, travel_plan_id, name, category, amount, paid_by_user_id, expense_date,
		        COALESCE(notes, ''), COALESCE(receipt_url, ''), created_at
		 FROM expenses WHERE travel_plan_id = $1 ORDER BY expense_date DESC, created_at DESC`,
		travelPlanId,
	)
	if err != nil {
		err := fmt.Errorf("could not query expenses: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var expenses []WithSplits
	index := map[string]int{}
	for rows.Next() {
		var exp Expense
		if err := rows.Scan(
			&exp.ID,
			&exp.TravelPlanID,
			&exp.Name,
			&exp.Category,
			&exp.Amount,
			&exp.PaidByUserID,
			&exp.ExpenseDate,
			&exp.Notes,
			&exp.ReceiptURL,
			&exp.CreatedAt,
		); err != nil {
			err := fmt.Errorf("could not scan expense: %w", err)
			log.Error(err)
			return nil, err
		}
		index[exp.ID] = len(expenses)
		expenses = append(expenses, WithSplits{Expense: exp})
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over expenses: %w", err)
		log.Error(err)
		return nil, err
	}

	splitRows, err := r.pool.Query(ctx,
		`SELECT s.id, s.expense_id, s.user_id, s.amount, s.is_paid
		 FROM expense_splits s
		 JOIN expenses e ON e.id = s.expense_id
		 WHERE e.travel_plan_id = $1 ORDER BY s.created_at`,
		travelPlanId,
	)
	if err != nil {
		err := fmt.Errorf("could not query expense splits: %w", err)
		log.Error(err)
		return nil, err
	}
	defer splitRows.Close()

	for splitRows.Next() {
		var split Split
		if err := splitRows.Scan(&split.ID, &split.ExpenseID, &split.UserID, &split.Amount, &split.IsPaid); err != nil {
			err := fmt.Errorf("could not scan expense split: %w", err)
			log.Error(err)
			return nil, err
		}
		if i, ok := index[split.ExpenseID]; ok {
			expenses[i].Splits = append(expenses[i].Splits, split)
		}
	}
	if err := splitRows.Err(); err != nil {
		err := fmt.Errorf("error iterating over expense splits: %w", err)
		log.Error(err)
		return nil, err
	}

	return expenses, nil
}

func (r *RepositoryImpl) Store(ctx context.Context, exp Expense, splits []Split) (WithSplits, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		err := fmt.Errorf("could not begin transaction: %w", err)
		log.Error(err)
		return WithSplits{}, err
	}
	defer tx.Rollback(ctx)

	if exp.ID == "" {
		exp.ID = uuid.NewString()
	}
	err = tx.QueryRow(ctx,
		`INSERT INTO expenses (id, travel_plan_id, name, category, amount, paid_by_user_id, expense_date, notes, receipt_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), NULLIF($9, ''))
		 RETURNING created_at`,
		exp.ID, exp.TravelPlanID, exp.Name, exp.Category, exp.Amount,
		exp.PaidByUserID, exp.ExpenseDate, exp.Notes, exp.ReceiptURL,
	).Scan(&exp.CreatedAt)
	if err != nil {
		err := fmt.Errorf("could not store expense: %w", err)
		log.Error(err)
		return WithSplits{}, err
	}

	stored := make([]Split, 0, len(splits))
	for _, split := range splits {
		if split.ID == "" {
			split.ID = uuid.NewString()
		}
		split.ExpenseID = exp.ID
		if _, err := tx.Exec(ctx,
			`INSERT INTO expense_splits (id, expense_id, user_id, amount, is_paid)
			 VALUES ($1, $2, $3, $4, $5)`,
			split.ID, split.ExpenseID, split.UserID, split.Amount, split.IsPaid,
		); err != nil {
			err := fmt.Errorf("could not store expense split: %w", err)
			log.Error(err)
			return WithSplits{}, err
		}
		stored = append(stored, split)
	}

	if err := tx.Commit(ctx); err != nil {
		err := fmt.Errorf("could not commit expense: %w", err)
		log.Error(err)
		return WithSplits{}, err
	}
	return WithSplits{Expense: exp, Splits: stored}, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, exp Expense) (bool, error) {
	result, err := r.pool.Exec(ctx,
		`UPDATE expenses SET name = $1, category = $2, amount = $3, paid_by_user_id = $4,
		        expense_date = $5, notes = NULLIF($6, ''), receipt_url = NULLIF($7, ''), updated_at = now()
		 WHERE id = $8 AND travel_plan_id = $9`,
		exp.Name, exp.Category, exp.Amount, exp.PaidByUserID,
		exp.ExpenseDate, exp.Notes, exp.ReceiptURL, exp.ID, exp.TravelPlanID,
	)
	if err != nil {
		err := fmt.Errorf("could not update expense: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, travelPlanId string, expenseId string) (bool, error) {
	result, err := r.pool.Exec(ctx,
		`DELETE FROM expenses WHERE id = $1 AND travel_plan_id = $2`,
		expenseId, travelPlanId,
	)
	if err != nil {
		err := fmt.Errorf("could not delete expense: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func (r *RepositoryImpl) SetSplitPaid(ctx context.Context, expenseId string, splitId string, paid bool) (bool, error) {
	result, err := r.pool.Exec(ctx,
		`UPDATE expense_splits SET is_paid = $1, paid_at = CASE WHEN $1 THEN now() ELSE NULL END, updated_at = now()
		 WHERE id = $2 AND expense_id = $3`,
		paid, splitId, expenseId,
	)
	if err != nil {
		err := fmt.Errorf("could not update expense split: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}
