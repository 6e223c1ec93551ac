package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"crm-backend/internal/middleware"
	"crm-backend/internal/models"
	"crm-backend/internal/services"

	"github.com/gorilla/mux"
)

type DCHandler struct {
	Service       *services.DCService
	ReportService *services.ReportService
}

func NewDCHandler(service *services.DCService, reportService *services.ReportService) *DCHandler {
	return &DCHandler{Service: service, ReportService: reportService}
}

// actor pulls the authenticated user's ID and role from context.
func actor(r *http.Request, w http.ResponseWriter) (int, string, bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "User ID not found in context", http.StatusUnauthorized)
		return 0, "", false
	}
	role, _ := middleware.GetRoleFromContext(r.Context())
	return userID, role, true
}

// List handles GET /api/dc?status=&employee_id=
func (h *DCHandler) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	employeeID, _ := strconv.Atoi(r.URL.Query().Get("employee_id"))

	// Executives only see their own challans
	userID, role, ok := actor(r, w)
	if !ok {
		return
	}
	if role == models.RoleExecutive {
		employeeID = userID
	}

	dcs, err := h.Service.List(r.Context(), status, employeeID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if dcs == nil {
		dcs = []*models.DC{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dcs)
}

// Get handles GET /api/dc/{id}
func (h *DCHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	dc, err := h.Service.Get(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dc)
}

// SubmitPO handles POST /api/dc/{id}/po
func (h *DCHandler) SubmitPO(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	userID, role, ok := actor(r, w)
	if !ok {
		return
	}

	var req models.SubmitPORequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	dc, err := h.Service.SubmitPO(r.Context(), id, &req, userID, role)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dc)
}

// applyAction backs the queue/start-processing/hold/release/complete endpoints.
func (h *DCHandler) applyAction(action string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.Atoi(mux.Vars(r)["id"])
		userID, role, ok := actor(r, w)
		if !ok {
			return
		}

		var holdReason string
		if action == models.DCActionHold {
			var req models.HoldDCRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "Invalid request body", http.StatusBadRequest)
				return
			}
			holdReason = req.HoldReason
		}

		dc, err := h.Service.ApplyAction(r.Context(), id, action, holdReason, userID, role)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(dc)
	}
}

func (h *DCHandler) Queue(w http.ResponseWriter, r *http.Request) {
	h.applyAction(models.DCActionQueue)(w, r)
}

func (h *DCHandler) StartProcessing(w http.ResponseWriter, r *http.Request) {
	h.applyAction(models.DCActionStartProcessing)(w, r)
}

func (h *DCHandler) Hold(w http.ResponseWriter, r *http.Request) {
	h.applyAction(models.DCActionHold)(w, r)
}

func (h *DCHandler) Release(w http.ResponseWriter, r *http.Request) {
	h.applyAction(models.DCActionRelease)(w, r)
}

func (h *DCHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.applyAction(models.DCActionComplete)(w, r)
}

// UpdateQuantities handles PUT /api/dc/{id}/quantities
func (h *DCHandler) UpdateQuantities(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	userID, _, ok := actor(r, w)
	if !ok {
		return
	}

	var req models.UpdateDCQuantitiesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	dc, err := h.Service.UpdateQuantities(r.Context(), id, &req, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dc)
}

// PendingQueue handles GET /api/warehouse/pending
func (h *DCHandler) PendingQueue(w http.ResponseWriter, r *http.Request) {
	h.writeQueue(w, r, h.Service.PendingQueue)
}

// ProcessingQueue handles GET /api/warehouse/processing
func (h *DCHandler) ProcessingQueue(w http.ResponseWriter, r *http.Request) {
	h.writeQueue(w, r, h.Service.ProcessingQueue)
}

// HoldQueue handles GET /api/warehouse/hold
func (h *DCHandler) HoldQueue(w http.ResponseWriter, r *http.Request) {
	h.writeQueue(w, r, h.Service.HoldQueue)
}

// ListedQueue handles GET /api/warehouse/listed
func (h *DCHandler) ListedQueue(w http.ResponseWriter, r *http.Request) {
	h.writeQueue(w, r, h.Service.ListedQueue)
}

func (h *DCHandler) writeQueue(w http.ResponseWriter, r *http.Request, load func(context.Context) ([]*models.DC, error)) {
	dcs, err := load(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if dcs == nil {
		dcs = []*models.DC{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dcs)
}

// StatusCounts handles GET /api/warehouse/status-counts
func (h *DCHandler) StatusCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.Service.StatusCounts(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(counts)
}

// ChallanPDF handles GET /api/dc/{id}/challan.pdf
func (h *DCHandler) ChallanPDF(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	data, err := h.ReportService.GenerateDCChallanPDF(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="dc_%d_challan.pdf"`, id))
	w.Write(data)
}
