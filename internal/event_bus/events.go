package event_bus

const (
	// EventTypeExpenseRecorded is published after an expense has been stored.
	EventTypeExpenseRecorded EventType = "expense.recorded"
)

// ExpenseRecorded carries the data an overspend watcher needs without
// having to re-read the expense row.
type ExpenseRecorded struct {
	TravelPlanID string
	ExpenseID    string
	Category     string
	Amount       float64
}
