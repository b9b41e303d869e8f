package expense

import (
	"time"

	"github.com/lovetrip/lovetrip/pkg/budget"
)

// Expense is an actual recorded spend against a category, attributed to the
// user who paid for it.
type Expense struct {
	ID           string
	TravelPlanID string
	Name         string
	Category     budget.Category
	Amount       float64
	PaidByUserID string
	ExpenseDate  time.Time
	Notes        string
	ReceiptURL   string
	CreatedAt    time.Time
}

// Split is one user's share of a single expense.
type Split struct {
	ID        string
	ExpenseID string
	UserID    string
	Amount    float64
	IsPaid    bool
}

// WithSplits bundles an expense with its splits. Splits may be empty, in
// which case settlement assumes an even split across all participants.
type WithSplits struct {
	Expense
	Splits []Split
}
