package optimizer

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/lovetrip/lovetrip/pkg/budget"
)

type SuggestionDTO struct {
	Category         string  `json:"category"`
	CurrentPlanned   float64 `json:"currentPlanned"`
	SuggestedPlanned float64 `json:"suggestedPlanned"`
	Reduction        float64 `json:"reduction"`
	Reason           string  `json:"reason"`
}

type ResultDTO struct {
	IsOverBudget          bool               `json:"isOverBudget"`
	OverAmount            float64            `json:"overAmount"`
	Suggestions           []SuggestionDTO    `json:"suggestions"`
	OptimizedDistribution map[string]float64 `json:"optimizedDistribution"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) Optimize(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	travelPlanId := mux.Vars(r)["planId"]

	var targetBudget *float64
	if raw := r.URL.Query().Get("targetBudget"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(parsed) || parsed < 0 {
			http.Error(w, "targetBudget must be a non-negative number", http.StatusBadRequest)
			return
		}
		targetBudget = &parsed
	}

	result, err := h.service.Optimize(r.Context(), travelPlanId, targetBudget)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resultToDTO(result)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	travelPlanId := mux.Vars(r)["planId"]

	var body struct {
		Suggestions []SuggestionDTO `json:"suggestions"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(body.Suggestions) == 0 {
		http.Error(w, "suggestions must not be empty", http.StatusBadRequest)
		return
	}

	suggestions := make([]Suggestion, 0, len(body.Suggestions))
	for _, dto := range body.Suggestions {
		suggestions = append(suggestions, Suggestion{
			Category:         budget.Category(dto.Category),
			CurrentPlanned:   dto.CurrentPlanned,
			SuggestedPlanned: dto.SuggestedPlanned,
			Reduction:        dto.Reduction,
			Reason:           dto.Reason,
		})
	}

	if err := h.service.Apply(r.Context(), travelPlanId, suggestions); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func resultToDTO(result Result) ResultDTO {
	suggestions := make([]SuggestionDTO, 0, len(result.Suggestions))
	for _, s := range result.Suggestions {
		suggestions = append(suggestions, SuggestionDTO{
			Category:         string(s.Category),
			CurrentPlanned:   s.CurrentPlanned,
			SuggestedPlanned: s.SuggestedPlanned,
			Reduction:        s.Reduction,
			Reason:           s.Reason,
		})
	}
	distribution := make(map[string]float64, len(result.OptimizedDistribution))
	for category, amount := range result.OptimizedDistribution {
		distribution[string(category)] = amount
	}
	return ResultDTO{
		IsOverBudget:          result.IsOverBudget,
		OverAmount:            result.OverAmount,
		Suggestions:           suggestions,
		OptimizedDistribution: distribution,
	}
}
