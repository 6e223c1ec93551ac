package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"crm-backend/internal/middleware"
	"crm-backend/internal/models"
	"crm-backend/internal/repositories"
	"crm-backend/internal/services"
	"crm-backend/internal/timeutil"

	"github.com/gorilla/mux"
)

// EmployeeHandler covers account management, team views, field tracking
// and leave applications.
type EmployeeHandler struct {
	UserService   *services.UserService
	LeaveService  *services.LeaveService
	TrackingRepo  *repositories.TrackingRepository
	ExportService *services.ExportService
}

func NewEmployeeHandler(userService *services.UserService, leaveService *services.LeaveService, trackingRepo *repositories.TrackingRepository, exportService *services.ExportService) *EmployeeHandler {
	return &EmployeeHandler{
		UserService:   userService,
		LeaveService:  leaveService,
		TrackingRepo:  trackingRepo,
		ExportService: exportService,
	}
}

// Create handles POST /api/employees
func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "User ID not found in context", http.StatusUnauthorized)
		return
	}

	user, err := h.UserService.Create(r.Context(), &req, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(user)
}

// List handles GET /api/employees?role=&zone=
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.List(r.Context(), r.URL.Query().Get("role"), r.URL.Query().Get("zone"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if users == nil {
		users = []*models.User{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(users)
}

// Get handles GET /api/employees/{id}
func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	user, err := h.UserService.Get(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

// Update handles PUT /api/employees/{id}
func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "User ID not found in context", http.StatusUnauthorized)
		return
	}

	user, err := h.UserService.Update(r.Context(), id, &req, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

// SetActive handles PUT /api/employees/{id}/active
func (h *EmployeeHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req struct {
		Active bool `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "User ID not found in context", http.StatusUnauthorized)
		return
	}

	if err := h.UserService.SetActive(r.Context(), id, req.Active, userID); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"active": req.Active})
}

// Team handles GET /api/executive-managers/team (a manager's reports)
func (h *EmployeeHandler) Team(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "User ID not found in context", http.StatusUnauthorized)
		return
	}

	users, err := h.UserService.ListTeam(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if users == nil {
		users = []*models.User{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(users)
}

// RecordTracking handles POST /api/employees/tracking
func (h *EmployeeHandler) RecordTracking(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTrackingEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Activity == "" {
		http.Error(w, "activity is required", http.StatusBadRequest)
		return
	}

	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "User ID not found in context", http.StatusUnauthorized)
		return
	}

	event := &models.TrackingEvent{
		EmployeeID: userID,
		Activity:   req.Activity,
		SchoolName: req.SchoolName,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		Notes:      req.Notes,
	}
	if err := h.TrackingRepo.Create(r.Context(), event); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(event)
}

// trackingRange parses from/to query params, defaulting to the current day
func trackingRange(r *http.Request) (time.Time, time.Time) {
	from := timeutil.StartOfDay(timeutil.Now())
	to := from.AddDate(0, 0, 1)
	if v := r.URL.Query().Get("from"); v != "" {
		if t, err := time.ParseInLocation(timeutil.DateLayout, v, timeutil.IST); err == nil {
			from = t
		}
	}
	if v := r.URL.Query().Get("to"); v != "" {
		if t, err := time.ParseInLocation(timeutil.DateLayout, v, timeutil.IST); err == nil {
			to = t.AddDate(0, 0, 1)
		}
	}
	return from, to
}

// ListTracking handles GET /api/employees/tracking?employee_id=&from=&to=
func (h *EmployeeHandler) ListTracking(w http.ResponseWriter, r *http.Request) {
	employeeID, _ := strconv.Atoi(r.URL.Query().Get("employee_id"))
	from, to := trackingRange(r)

	events, err := h.TrackingRepo.List(r.Context(), employeeID, from, to)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if events == nil {
		events = []*models.TrackingEvent{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(events)
}

// ExportTracking handles GET /api/employees/tracking/export
func (h *EmployeeHandler) ExportTracking(w http.ResponseWriter, r *http.Request) {
	employeeID, _ := strconv.Atoi(r.URL.Query().Get("employee_id"))
	from, to := trackingRange(r)

	data, err := h.ExportService.ExportTracking(r.Context(), employeeID, from, to)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="tracking.xlsx"`)
	w.Write(data)
}

// ApplyLeave handles POST /api/employees/leaves
func (h *EmployeeHandler) ApplyLeave(w http.ResponseWriter, r *http.Request) {
	var req models.CreateLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "User ID not found in context", http.StatusUnauthorized)
		return
	}

	leave, err := h.LeaveService.Create(r.Context(), &req, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(leave)
}

// MyLeaves handles GET /api/employees/leaves
func (h *EmployeeHandler) MyLeaves(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "User ID not found in context", http.StatusUnauthorized)
		return
	}

	leaves, err := h.LeaveService.ListForEmployee(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if leaves == nil {
		leaves = []*models.LeaveRequest{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(leaves)
}

// TeamLeaves handles GET /api/executive-managers/leaves?status=
func (h *EmployeeHandler) TeamLeaves(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "User ID not found in context", http.StatusUnauthorized)
		return
	}

	leaves, err := h.LeaveService.ListForManager(r.Context(), userID, r.URL.Query().Get("status"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if leaves == nil {
		leaves = []*models.LeaveRequest{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(leaves)
}

// ReviewLeave handles PUT /api/executive-managers/leaves/{id}
func (h *EmployeeHandler) ReviewLeave(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.ReviewLeaveRequest
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

	leave, err := h.LeaveService.Review(r.Context(), id, &req, userID, role)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(leave)
}
