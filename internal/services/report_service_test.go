package services

import (
	"strings"
	"testing"
	"time"

	"crm-backend/internal/models"
	"crm-backend/internal/timeutil"
)

func TestBuildPaymentsCSV(t *testing.T) {
	created := time.Date(2026, time.August, 14, 11, 30, 0, 0, timeutil.IST)
	payments := []*models.Payment{
		{
			ID:            12,
			SchoolName:    "Sunrise Public School",
			Amount:        15750.50,
			PaymentMethod: models.PaymentMethodCheque,
			Status:        models.PaymentStatusApproved,
			FinancialYear: "2026-27",
			CreatedByName: "Ravi Kumar",
			CreatedAt:     created,
		},
		{
			ID:            13,
			SchoolName:    "Green Valley, Pune", // comma must be quoted
			Amount:        900,
			PaymentMethod: models.PaymentMethodUPI,
			Status:        models.PaymentStatusPending,
			FinancialYear: "2026-27",
			CreatedByName: "Asha Patel",
			CreatedAt:     created,
		},
	}

	svc := &ReportService{}
	out, err := svc.BuildPaymentsCSV(payments)
	if err != nil {
		t.Fatalf("BuildPaymentsCSV() error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header + 2 rows", len(lines))
	}
	if !strings.HasPrefix(lines[0], "ID,School,Amount,Method,Status") {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if !strings.Contains(lines[1], "15750.50") || !strings.Contains(lines[1], "Approved") {
		t.Errorf("row 1 missing amount or status: %q", lines[1])
	}
	if !strings.Contains(lines[2], `"Green Valley, Pune"`) {
		t.Errorf("school name with comma not quoted: %q", lines[2])
	}
	if !strings.Contains(lines[1], "14-Aug-2026 11:30 AM") {
		t.Errorf("row 1 missing IST timestamp: %q", lines[1])
	}
}

func TestBuildPaymentsCSVEmpty(t *testing.T) {
	svc := &ReportService{}
	out, err := svc.BuildPaymentsCSV(nil)
	if err != nil {
		t.Fatalf("BuildPaymentsCSV(nil) error: %v", err)
	}
	if got := strings.TrimSpace(string(out)); !strings.HasPrefix(got, "ID,School") || strings.Count(got, "\n") != 0 {
		t.Errorf("expected header-only CSV, got %q", got)
	}
}
