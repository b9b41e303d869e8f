package settlement

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

type SummaryDTO struct {
	UserID    string  `json:"userId"`
	TotalPaid float64 `json:"totalPaid"`
	TotalOwed float64 `json:"totalOwed"`
	NetAmount float64 `json:"netAmount"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	travelPlanId := mux.Vars(r)["planId"]

	var participantIds []string
	for _, userId := range strings.Split(r.URL.Query().Get("userIds"), ",") {
		if trimmed := strings.TrimSpace(userId); trimmed != "" {
			participantIds = append(participantIds, trimmed)
		}
	}
	if len(participantIds) == 0 {
		http.Error(w, "userIds is required", http.StatusBadRequest)
		return
	}

	summaries, err := h.service.Calculate(r.Context(), travelPlanId, participantIds)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]SummaryDTO, 0, len(summaries))
	for _, summary := range summaries {
		dtos = append(dtos, SummaryDTO{
			UserID:    summary.UserID,
			TotalPaid: summary.TotalPaid,
			TotalOwed: summary.TotalOwed,
			NetAmount: summary.NetAmount,
		})
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
