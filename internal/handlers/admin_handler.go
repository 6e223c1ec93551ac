package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"crm-backend/internal/middleware"
	"crm-backend/internal/models"
	"crm-backend/internal/repositories"
)

// AdminHandler serves the audit trail and system settings.
type AdminHandler struct {
	AuditRepo   *repositories.AuditLogRepository
	SettingRepo *repositories.SystemSettingRepository
}

func NewAdminHandler(auditRepo *repositories.AuditLogRepository, settingRepo *repositories.SystemSettingRepository) *AdminHandler {
	return &AdminHandler{AuditRepo: auditRepo, SettingRepo: settingRepo}
}

// AuditLogs handles GET /api/admin/audit-logs?target_type=&limit=
func (h *AdminHandler) AuditLogs(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	logs, err := h.AuditRepo.List(r.Context(), r.URL.Query().Get("target_type"), limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if logs == nil {
		logs = []*models.AuditLog{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(logs)
}

// ListSettings handles GET /api/admin/settings
func (h *AdminHandler) ListSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.SettingRepo.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if settings == nil {
		settings = []*models.SystemSetting{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(settings)
}

// UpdateSetting handles PUT /api/admin/settings
func (h *AdminHandler) UpdateSetting(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Key == "" {
		http.Error(w, "setting key is required", http.StatusBadRequest)
		return
	}

	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "User ID not found in context", http.StatusUnauthorized)
		return
	}

	if err := h.SettingRepo.Set(r.Context(), req.Key, req.Value); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.AuditRepo.Log(r.Context(), userID, "UPDATE", "system_setting", nil, "changed "+req.Key+" to "+req.Value, r.RemoteAddr)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{req.Key: req.Value})
}
