package budget

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type BudgetItemDTO struct {
	ID            string  `json:"id,omitempty"`
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	PlannedAmount float64 `json:"plannedAmount"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	travelPlanId := mux.Vars(r)["planId"]

	items, err := h.service.ListItems(r.Context(), travelPlanId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]BudgetItemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, itemToDTO(item))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	log.Debug("Registering new budget item")
	w.Header().Set("Content-Type", "application/json")
	travelPlanId := mux.Vars(r)["planId"]

	var dto BudgetItemDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.CreateItem(r.Context(), dtoToItem(dto, travelPlanId))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(itemToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)
	travelPlanId := vars["planId"]
	itemId := vars["itemId"]

	var dto BudgetItemDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.ID != "" && dto.ID != itemId {
		http.Error(w, "Invalid budget item id in request body", http.StatusBadRequest)
		return
	}

	item := dtoToItem(dto, travelPlanId)
	item.ID = itemId
	ok, err := h.service.UpdateItem(r.Context(), item)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Budget item not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(itemToDTO(item)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	ok, err := h.service.DeleteItem(r.Context(), vars["planId"], vars["itemId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Budget item not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Estimate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	priceLevel, err := strconv.Atoi(r.URL.Query().Get("priceLevel"))
	if err != nil {
		http.Error(w, "priceLevel must be a number", http.StatusBadRequest)
		return
	}
	category := ParseCategory(r.URL.Query().Get("category"))

	estimated := h.service.EstimateFromPlace(priceLevel, category)

	w.WriteHeader(http.StatusOK)
	response := struct {
		Category        string  `json:"category"`
		EstimatedAmount float64 `json:"estimatedAmount"`
	}{string(category), estimated}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func itemToDTO(item BudgetItem) BudgetItemDTO {
	return BudgetItemDTO{
		ID:            item.ID,
		Name:          item.Name,
		Category:      string(item.Category),
		PlannedAmount: item.PlannedAmount,
	}
}

func dtoToItem(dto BudgetItemDTO, travelPlanId string) BudgetItem {
	return BudgetItem{
		ID:            dto.ID,
		TravelPlanID:  travelPlanId,
		Name:          dto.Name,
		Category:      Category(dto.Category),
		PlannedAmount: dto.PlannedAmount,
	}
}
