package app

import (
	"github.com/gorilla/mux"
	"github.com/lovetrip/lovetrip/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Budget items
	r.HandleFunc("/api/travel-plans/{planId}/budget/items", deps.BudgetHandler.ListItems).Methods("GET")
	r.HandleFunc("/api/travel-plans/{planId}/budget/items", deps.BudgetHandler.CreateItem).Methods("POST")
	r.HandleFunc("/api/travel-plans/{planId}/budget/items/{itemId}", deps.BudgetHandler.UpdateItem).Methods("PUT")
	r.HandleFunc("/api/travel-plans/{planId}/budget/items/{itemId}", deps.BudgetHandler.DeleteItem).Methods("DELETE")

	// Budget estimation from a place's price level
	r.HandleFunc("/api/budget/estimate", deps.BudgetHandler.Estimate).
		Queries("priceLevel", "{priceLevel}", "category", "{category}").Methods("GET")

	// Budget summary and overspend check
	r.HandleFunc("/api/travel-plans/{planId}/budget/summary", deps.StatsHandler.GetSummary).Methods("GET")
	r.HandleFunc("/api/travel-plans/{planId}/budget/exceeded", deps.StatsHandler.CheckExceeded).Methods("GET")

	// Budget optimization
	r.HandleFunc("/api/travel-plans/{planId}/budget/optimize", deps.OptimizerHandler.Optimize).Methods("GET")
	r.HandleFunc("/api/travel-plans/{planId}/budget/optimize/apply", deps.OptimizerHandler.Apply).Methods("POST")

	// Expenses
	r.HandleFunc("/api/travel-plans/{planId}/expenses", deps.ExpenseHandler.List).Methods("GET")
	r.HandleFunc("/api/travel-plans/{planId}/expenses", deps.ExpenseHandler.Create).Methods("POST")
	r.HandleFunc("/api/travel-plans/{planId}/expenses/{expenseId}", deps.ExpenseHandler.Update).Methods("PUT")
	r.HandleFunc("/api/travel-plans/{planId}/expenses/{expenseId}", deps.ExpenseHandler.Delete).Methods("DELETE")
	r.HandleFunc("/api/travel-plans/{planId}/expenses/{expenseId}/splits/{splitId}", deps.ExpenseHandler.MarkSplitPaid).Methods("PATCH")

	// Settlement
	r.HandleFunc("/api/travel-plans/{planId}/settlement", deps.SettlementHandler.Calculate).
		Queries("userIds", "{userIds}").Methods("GET")
}
