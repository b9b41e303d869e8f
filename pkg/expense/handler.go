package expense

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/lovetrip/lovetrip/pkg/budget"
	log "github.com/sirupsen/logrus"
)

type SplitDTO struct {
	ID     string  `json:"id,omitempty"`
	UserID string  `json:"userId"`
	Amount float64 `json:"amount"`
	IsPaid bool    `json:"isPaid"`
}

type ExpenseDTO struct {
	ID           string     `json:"id,omitempty"`
	Name         string     `json:"name"`
	Category     string     `json:"category"`
	Amount       float64    `json:"amount"`
	PaidByUserID string     `json:"paidByUserId"`
	ExpenseDate  *time.Time `json:"expenseDate,omitempty"`
	Notes        string     `json:"notes,omitempty"`
	ReceiptURL   string     `json:"receiptUrl,omitempty"`
	Splits       []SplitDTO `json:"splits,omitempty"`
	// ParticipantIds triggers automatic even splitting on creation.
	ParticipantIds []string `json:"participantIds,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	travelPlanId := mux.Vars(r)["planId"]

	expenses, err := h.service.List(r.Context(), travelPlanId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]ExpenseDTO, 0, len(expenses))
	for _, exp := range expenses {
		dtos = append(dtos, toDTO(exp))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Recording new expense")
	w.Header().Set("Content-Type", "application/json")
	travelPlanId := mux.Vars(r)["planId"]

	var dto ExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.Amount <= 0 {
		http.Error(w, "amount must be greater than zero", http.StatusBadRequest)
		return
	}
	if dto.PaidByUserID == "" {
		http.Error(w, "paidByUserId is required", http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), fromDTO(dto, travelPlanId), dto.ParticipantIds)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(toDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)
	travelPlanId := vars["planId"]
	expenseId := vars["expenseId"]

	var dto ExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.ID != "" && dto.ID != expenseId {
		http.Error(w, "Invalid expense id in request body", http.StatusBadRequest)
		return
	}

	exp := fromDTO(dto, travelPlanId)
	exp.ID = expenseId
	ok, err := h.service.Update(r.Context(), exp)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Expense not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	ok, err := h.service.Delete(r.Context(), vars["planId"], vars["expenseId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Expense not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) MarkSplitPaid(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)

	var body struct {
		IsPaid bool `json:"isPaid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ok, err := h.service.MarkSplitPaid(r.Context(), vars["expenseId"], vars["splitId"], body.IsPaid)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Expense split not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func toDTO(exp WithSplits) ExpenseDTO {
	splits := make([]SplitDTO, 0, len(exp.Splits))
	for _, split := range exp.Splits {
		splits = append(splits, SplitDTO{
			ID:     split.ID,
			UserID: split.UserID,
			Amount: split.Amount,
			IsPaid: split.IsPaid,
		})
	}
	expenseDate := exp.ExpenseDate
	return ExpenseDTO{
		ID:           exp.ID,
		Name:         exp.Name,
		Category:     string(exp.Category),
		Amount:       exp.Amount,
		PaidByUserID: exp.PaidByUserID,
		ExpenseDate:  &expenseDate,
		Notes:        exp.Notes,
		ReceiptURL:   exp.ReceiptURL,
		Splits:       splits,
	}
}

func fromDTO(dto ExpenseDTO, travelPlanId string) Expense {
	var expenseDate time.Time
	if dto.ExpenseDate != nil {
		expenseDate = *dto.ExpenseDate
	}
	return Expense{
		ID:           dto.ID,
		TravelPlanID: travelPlanId,
		Name:         dto.Name,
		Category:     budget.Category(dto.Category),
		Amount:       dto.Amount,
		PaidByUserID: dto.PaidByUserID,
		ExpenseDate:  expenseDate,
		Notes:        dto.Notes,
		ReceiptURL:   dto.ReceiptURL,
	}
}
