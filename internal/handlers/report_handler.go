package handlers

import (
	"encoding/json"
	"net/http"

	"crm-backend/internal/services"
	"crm-backend/internal/timeutil"
)

type ReportHandler struct {
	Service *services.ReportService
}

func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{Service: service}
}

// Sales handles GET /api/reports/sales?fy=2025-26
func (h *ReportHandler) Sales(w http.ResponseWriter, r *http.Request) {
	fy := r.URL.Query().Get("fy")
	if fy == "" {
		fy = timeutil.FinancialYear(timeutil.Now())
	}

	report, err := h.Service.SalesReport(r.Context(), fy)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}
