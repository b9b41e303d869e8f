package budget

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
)

// Test setup helper
func setupHandlerTest(t *testing.T) *Handler {
	repo := NewStubRepository()
	return NewHandler(NewService(repo))
}

// Helper to add items through the handler the way the router would
func addTestItem(t *testing.T, handler *Handler, planId string, dto BudgetItemDTO) BudgetItemDTO {
	body, err := json.Marshal(dto)
	assert.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/travel-plans/%s/budget/items", planId), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req = mux.SetURLVars(req, map[string]string{"planId": planId})
	w := httptest.NewRecorder()
	handler.CreateItem(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var created BudgetItemDTO
	err = json.NewDecoder(w.Body).Decode(&created)
	assert.NoError(t, err)
	return created
}

func TestCreateItem_Success(t *testing.T) {
	// Setup
	handler := setupHandlerTest(t)

	// Create an item
	created := addTestItem(t, handler, "plan-1", BudgetItemDTO{
		Name:          "KTX 왕복",
		Category:      "교통비",
		PlannedAmount: 120000,
	})

	// Verify the created item
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "KTX 왕복", created.Name)
	assert.Equal(t, "교통비", created.Category)
	assert.Equal(t, 120000.0, created.PlannedAmount)
}

func TestCreateItem_NegativeAmount(t *testing.T) {
	// Setup
	handler := setupHandlerTest(t)

	body, err := json.Marshal(BudgetItemDTO{Name: "취소", Category: "기타", PlannedAmount: -100})
	assert.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/travel-plans/plan-1/budget/items", bytes.NewBuffer(body))
	req = mux.SetURLVars(req, map[string]string{"planId": "plan-1"})
	w := httptest.NewRecorder()

	// Call the handler
	handler.CreateItem(w, req)

	// Verify response
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestListItems(t *testing.T) {
	// Setup
	handler := setupHandlerTest(t)
	addTestItem(t, handler, "plan-1", BudgetItemDTO{Name: "호텔", Category: "숙박비", PlannedAmount: 200000})
	addTestItem(t, handler, "plan-2", BudgetItemDTO{Name: "다른 여행", Category: "숙박비", PlannedAmount: 999999})

	// List items of plan-1 only
	req := httptest.NewRequest(http.MethodGet, "/api/travel-plans/plan-1/budget/items", nil)
	req = mux.SetURLVars(req, map[string]string{"planId": "plan-1"})
	w := httptest.NewRecorder()
	handler.ListItems(w, req)

	// Verify response
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var dtos []BudgetItemDTO
	err := json.NewDecoder(w.Body).Decode(&dtos)
	assert.NoError(t, err)
	assert.Len(t, dtos, 1)
	assert.Equal(t, "호텔", dtos[0].Name)
}

func TestUpdateItem_NotFound(t *testing.T) {
	// Setup
	handler := setupHandlerTest(t)

	body, err := json.Marshal(BudgetItemDTO{Name: "없는 항목", Category: "식비", PlannedAmount: 10000})
	assert.NoError(t, err)
	req := httptest.NewRequest(http.MethodPut, "/api/travel-plans/plan-1/budget/items/missing", bytes.NewBuffer(body))
	req = mux.SetURLVars(req, map[string]string{"planId": "plan-1", "itemId": "missing"})
	w := httptest.NewRecorder()

	// Call the handler
	handler.UpdateItem(w, req)

	// Verify response
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateItem_MismatchedId(t *testing.T) {
	// Setup
	handler := setupHandlerTest(t)

	body, err := json.Marshal(BudgetItemDTO{ID: "other", Name: "항목", Category: "식비", PlannedAmount: 10000})
	assert.NoError(t, err)
	req := httptest.NewRequest(http.MethodPut, "/api/travel-plans/plan-1/budget/items/item-1", bytes.NewBuffer(body))
	req = mux.SetURLVars(req, map[string]string{"planId": "plan-1", "itemId": "item-1"})
	w := httptest.NewRecorder()

	// Call the handler
	handler.UpdateItem(w, req)

	// Verify response
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteItem(t *testing.T) {
	// Setup
	handler := setupHandlerTest(t)
	created := addTestItem(t, handler, "plan-1", BudgetItemDTO{Name: "액티비티", Category: "액티비티", PlannedAmount: 50000})

	// Delete the item
	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/travel-plans/plan-1/budget/items/%s", created.ID), nil)
	req = mux.SetURLVars(req, map[string]string{"planId": "plan-1", "itemId": created.ID})
	w := httptest.NewRecorder()
	handler.DeleteItem(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	// Verify the item is gone
	getReq := httptest.NewRequest(http.MethodGet, "/api/travel-plans/plan-1/budget/items", nil)
	getReq = mux.SetURLVars(getReq, map[string]string{"planId": "plan-1"})
	getW := httptest.NewRecorder()
	handler.ListItems(getW, getReq)

	var dtos []BudgetItemDTO
	err := json.NewDecoder(getW.Body).Decode(&dtos)
	assert.NoError(t, err)
	assert.Empty(t, dtos)
}

func TestEstimate_Success(t *testing.T) {
	// Setup
	handler := setupHandlerTest(t)

	// Request an estimate
	req := httptest.NewRequest(http.MethodGet, "/api/budget/estimate?priceLevel=3&category=식비", nil)
	w := httptest.NewRecorder()
	handler.Estimate(w, req)

	// Verify response
	assert.Equal(t, http.StatusOK, w.Code)
	var response struct {
		Category        string  `json:"category"`
		EstimatedAmount float64 `json:"estimatedAmount"`
	}
	err := json.NewDecoder(w.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "식비", response.Category)
	assert.Equal(t, 60000.0, response.EstimatedAmount)
}

func TestEstimate_InvalidPriceLevel(t *testing.T) {
	// Setup
	handler := setupHandlerTest(t)

	// Create a request with a non-numeric priceLevel
	req := httptest.NewRequest(http.MethodGet, "/api/budget/estimate?priceLevel=abc&category=식비", nil)
	w := httptest.NewRecorder()

	// Call the handler
	handler.Estimate(w, req)

	// Verify response
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
