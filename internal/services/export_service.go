package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"crm-backend/internal/repositories"
	"crm-backend/internal/timeutil"

	"github.com/xuri/excelize/v2"
)

// ExportService renders xlsx downloads for finance and admin views.
type ExportService struct {
	PaymentRepo  *repositories.PaymentRepository
	ExpenseRepo  *repositories.ExpenseRepository
	TrackingRepo *repositories.TrackingRepository
}

func NewExportService(paymentRepo *repositories.PaymentRepository, expenseRepo *repositories.ExpenseRepository, trackingRepo *repositories.TrackingRepository) *ExportService {
	return &ExportService{
		PaymentRepo:  paymentRepo,
		ExpenseRepo:  expenseRepo,
		TrackingRepo: trackingRepo,
	}
}

func writeSheet(f *excelize.File, sheet string, header []string, rows [][]interface{}) error {
	for i, h := range header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	// Bold header row
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		endCell, _ := excelize.CoordinatesToCellName(len(header), 1)
		f.SetCellStyle(sheet, "A1", endCell, style)
	}
	return nil
}

func renderWorkbook(sheet string, header []string, rows [][]interface{}) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheet)
	if err := writeSheet(f, sheet, header, rows); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportPayments builds an xlsx of payments in a financial year.
func (s *ExportService) ExportPayments(ctx context.Context, status, financialYear string) ([]byte, error) {
	payments, err := s.PaymentRepo.List(ctx, status, financialYear, 0)
	if err != nil {
		return nil, err
	}

	header := []string{"ID", "School", "Amount", "Method", "Status", "Financial Year", "Recorded By", "Reviewed At", "Created At"}
	rows := make([][]interface{}, 0, len(payments))
	for _, p := range payments {
		reviewedAt := ""
		if p.ReviewedAt != nil {
			reviewedAt = p.ReviewedAt.In(timeutil.IST).Format(timeutil.DateTimeLayout)
		}
		rows = append(rows, []interface{}{
			p.ID, p.SchoolName, p.Amount, p.PaymentMethod, p.Status,
			p.FinancialYear, p.CreatedByName, reviewedAt,
			p.CreatedAt.In(timeutil.IST).Format(timeutil.DateTimeLayout),
		})
	}
	return renderWorkbook("Payments", header, rows)
}

// ExportExpenses builds an xlsx of expenses, optionally filtered by status.
func (s *ExportService) ExportExpenses(ctx context.Context, status string) ([]byte, error) {
	expenses, err := s.ExpenseRepo.List(ctx, status, 0)
	if err != nil {
		return nil, err
	}

	header := []string{"ID", "Employee", "Trainer", "Category", "Amount", "Approved Amount", "Status", "Month", "Filed At"}
	rows := make([][]interface{}, 0, len(expenses))
	for _, e := range expenses {
		var approved interface{}
		if e.ApprovedAmount != nil {
			approved = *e.ApprovedAmount
		}
		rows = append(rows, []interface{}{
			e.ID, e.EmployeeName, e.TrainerName, e.Category, e.Amount,
			approved, e.Status, e.PendingMonth,
			e.CreatedAt.In(timeutil.IST).Format(timeutil.DateTimeLayout),
		})
	}
	return renderWorkbook("Expenses", header, rows)
}

// ExportTracking builds an xlsx of field activity in a date range.
func (s *ExportService) ExportTracking(ctx context.Context, employeeID int, from, to time.Time) ([]byte, error) {
	events, err := s.TrackingRepo.List(ctx, employeeID, from, to)
	if err != nil {
		return nil, err
	}

	header := []string{"ID", "Employee", "Activity", "School", "Latitude", "Longitude", "Notes", "Recorded At"}
	rows := make([][]interface{}, 0, len(events))
	for _, e := range events {
		var lat, lng interface{}
		if e.Latitude != nil {
			lat = *e.Latitude
		}
		if e.Longitude != nil {
			lng = *e.Longitude
		}
		rows = append(rows, []interface{}{
			e.ID, e.EmployeeName, e.Activity, e.SchoolName, lat, lng, e.Notes,
			e.RecordedAt.In(timeutil.IST).Format(timeutil.DateTimeLayout),
		})
	}
	return renderWorkbook("Tracking", header, rows)
}
