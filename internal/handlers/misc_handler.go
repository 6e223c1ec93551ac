package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"crm-backend/internal/middleware"
	"crm-backend/internal/models"
	"crm-backend/internal/repositories"

	"github.com/gorilla/mux"
)

// MiscHandler serves sample requests and contact queries. These are thin
// CRUD surfaces and talk to the repositories directly.
type MiscHandler struct {
	SampleRepo  *repositories.SampleRequestRepository
	ContactRepo *repositories.ContactQueryRepository
}

func NewMiscHandler(sampleRepo *repositories.SampleRequestRepository, contactRepo *repositories.ContactQueryRepository) *MiscHandler {
	return &MiscHandler{SampleRepo: sampleRepo, ContactRepo: contactRepo}
}

// CreateSampleRequest handles POST /api/sample-requests
func (h *MiscHandler) CreateSampleRequest(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSampleRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.SchoolName == "" || req.ProductName == "" {
		http.Error(w, "school name and product name are required", http.StatusBadRequest)
		return
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "User ID not found in context", http.StatusUnauthorized)
		return
	}

	sample := &models.SampleRequest{
		SchoolName:  req.SchoolName,
		ContactName: req.ContactName,
		Mobile:      req.Mobile,
		ProductName: req.ProductName,
		Quantity:    req.Quantity,
		Status:      "requested",
		RequestedBy: userID,
	}
	if err := h.SampleRepo.Create(r.Context(), sample); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(sample)
}

// ListSampleRequests handles GET /api/sample-requests?status=
func (h *MiscHandler) ListSampleRequests(w http.ResponseWriter, r *http.Request) {
	samples, err := h.SampleRepo.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if samples == nil {
		samples = []*models.SampleRequest{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(samples)
}

// UpdateSampleStatus handles PUT /api/sample-requests/{id}/status
func (h *MiscHandler) UpdateSampleStatus(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	switch req.Status {
	case "requested", "dispatched", "delivered":
	default:
		http.Error(w, "invalid sample request status", http.StatusBadRequest)
		return
	}

	if err := h.SampleRepo.UpdateStatus(r.Context(), id, req.Status); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": req.Status})
}

// CreateContactQuery handles POST /api/contact-queries (public intake)
func (h *MiscHandler) CreateContactQuery(w http.ResponseWriter, r *http.Request) {
	var q models.ContactQuery
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if q.Name == "" || q.Mobile == "" {
		http.Error(w, "name and mobile are required", http.StatusBadRequest)
		return
	}

	if err := h.ContactRepo.Create(r.Context(), &q); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(q)
}

// ListContactQueries handles GET /api/contact-queries?status=
func (h *MiscHandler) ListContactQueries(w http.ResponseWriter, r *http.Request) {
	queries, err := h.ContactRepo.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if queries == nil {
		queries = []*models.ContactQuery{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(queries)
}

// AssignContactQuery handles PUT /api/contact-queries/{id}/assign
func (h *MiscHandler) AssignContactQuery(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req struct {
		UserID int `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.UserID == 0 {
		userID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "User ID not found in context", http.StatusUnauthorized)
			return
		}
		req.UserID = userID
	}

	if err := h.ContactRepo.Assign(r.Context(), id, req.UserID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"assigned_to": req.UserID})
}

// CloseContactQuery handles PUT /api/contact-queries/{id}/close
func (h *MiscHandler) CloseContactQuery(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.ContactRepo.Close(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "closed"})
}
