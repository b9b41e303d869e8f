package stats

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/lovetrip/lovetrip/pkg/budget"
)

type CategoryTotalsDTO struct {
	Planned float64 `json:"planned"`
	Actual  float64 `json:"actual"`
}

type SummaryDTO struct {
	TotalPlanned float64                      `json:"totalPlanned"`
	TotalActual  float64                      `json:"totalActual"`
	Remaining    float64                      `json:"remaining"`
	ByCategory   map[string]CategoryTotalsDTO `json:"byCategory"`
}

type OverspendStatusDTO struct {
	Exceeded   bool    `json:"exceeded"`
	Percentage float64 `json:"percentage"`
	Message    string  `json:"message,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	travelPlanId := mux.Vars(r)["planId"]

	summary, err := h.service.GetSummary(r.Context(), travelPlanId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(summaryToDTO(summary)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) CheckExceeded(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	travelPlanId := mux.Vars(r)["planId"]

	threshold := 0.0
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 {
			http.Error(w, "threshold must be a non-negative number", http.StatusBadRequest)
			return
		}
		threshold = parsed
	}

	status, err := h.service.CheckBudgetExceeded(r.Context(), travelPlanId, threshold)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	dto := OverspendStatusDTO{
		Exceeded:   status.Exceeded,
		Percentage: status.Percentage,
		Message:    status.Message,
	}
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func summaryToDTO(summary Summary) SummaryDTO {
	byCategory := make(map[string]CategoryTotalsDTO, len(summary.ByCategory))
	for _, c := range budget.Categories() {
		totals := summary.ByCategory[c]
		byCategory[string(c)] = CategoryTotalsDTO{Planned: totals.Planned, Actual: totals.Actual}
	}
	return SummaryDTO{
		TotalPlanned: summary.TotalPlanned,
		TotalActual:  summary.TotalActual,
		Remaining:    summary.Remaining,
		ByCategory:   byCategory,
	}
}
