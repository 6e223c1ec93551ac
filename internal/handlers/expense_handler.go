package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"crm-backend/internal/middleware"
	"crm-backend/internal/models"
	"crm-backend/internal/services"

	"github.com/gorilla/mux"
)

type ExpenseHandler struct {
	Service       *services.ExpenseService
	ExportService *services.ExportService
}

func NewExpenseHandler(service *services.ExpenseService, exportService *services.ExportService) *ExpenseHandler {
	return &ExpenseHandler{Service: service, ExportService: exportService}
}

// Create handles POST /api/expenses
func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "User ID not found in context", http.StatusUnauthorized)
		return
	}

	// Employees file for themselves unless they say otherwise
	if req.EmployeeID == nil && req.TrainerID == nil {
		req.EmployeeID = &userID
	}

	expense, err := h.Service.Create(r.Context(), &req, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(expense)
}

// List handles GET /api/expenses?status=
func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")

	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "User ID not found in context", http.StatusUnauthorized)
		return
	}
	role, _ := middleware.GetRoleFromContext(r.Context())

	employeeID := 0
	if role == models.RoleExecutive || role == models.RoleTrainer {
		employeeID = userID
	}

	expenses, err := h.Service.List(r.Context(), status, employeeID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if expenses == nil {
		expenses = []*models.Expense{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(expenses)
}

// Get handles GET /api/expenses/{id}
func (h *ExpenseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	expense, err := h.Service.Get(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(expense)
}

// ManagerQueue handles GET /api/expenses/manager-pending
func (h *ExpenseHandler) ManagerQueue(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "User ID not found in context", http.StatusUnauthorized)
		return
	}

	expenses, err := h.Service.ManagerQueue(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if expenses == nil {
		expenses = []*models.Expense{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(expenses)
}

// ApproveMultiple handles PUT /api/expenses/approve-multiple
func (h *ExpenseHandler) ApproveMultiple(w http.ResponseWriter, r *http.Request) {
	var req models.ApproveMultipleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "User ID not found in context", http.StatusUnauthorized)
		return
	}
	role, _ := middleware.GetRoleFromContext(r.Context())

	if err := h.Service.ApproveMultiple(r.Context(), &req, userID, role); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"reviewed": len(req.Items)})
}

// FinanceQueue handles GET /api/expenses/finance-pending
func (h *ExpenseHandler) FinanceQueue(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.Service.FinanceQueue(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if expenses == nil {
		expenses = []*models.Expense{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(expenses)
}

// FinanceReview handles PUT /api/expenses/{id}/finance-review
func (h *ExpenseHandler) FinanceReview(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.FinanceReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "User ID not found in context", http.StatusUnauthorized)
		return
	}

	expense, err := h.Service.FinanceReview(r.Context(), id, &req, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(expense)
}

// ExportXLSX handles GET /api/expenses/export/xlsx
func (h *ExpenseHandler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")

	data, err := h.ExportService.ExportExpenses(r.Context(), status)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="expenses.xlsx"`)
	w.Write(data)
}
