package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"crm-backend/internal/cache"
	"crm-backend/internal/models"
	"crm-backend/internal/repositories"
	"crm-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
)

// SalesReport is the aggregate payload behind /api/reports/sales.
type SalesReport struct {
	FinancialYear  string             `json:"financial_year"`
	TotalDeals     int                `json:"total_deals"`
	DealsByStatus  map[string]int     `json:"deals_by_status"`
	DCsByStatus    map[string]int     `json:"dcs_by_status"`
	PaymentsByStatus map[string]float64 `json:"payments_by_status"`
	TotalCollected float64            `json:"total_collected"`
}

type ReportService struct {
	LeadRepo    *repositories.LeadRepository
	DCRepo      *repositories.DCRepository
	PaymentRepo *repositories.PaymentRepository
}

func NewReportService(leadRepo *repositories.LeadRepository, dcRepo *repositories.DCRepository, paymentRepo *repositories.PaymentRepository) *ReportService {
	return &ReportService{
		LeadRepo:    leadRepo,
		DCRepo:      dcRepo,
		PaymentRepo: paymentRepo,
	}
}

// SalesReport aggregates deals, challans and payments for a financial
// year. Cached for a short window; mutations invalidate.
func (s *ReportService) SalesReport(ctx context.Context, financialYear string) (*SalesReport, error) {
	if financialYear == "" {
		financialYear = timeutil.FinancialYear(timeutil.Now())
	}

	cacheKey := cache.SalesReportKey + ":" + financialYear
	var cached SalesReport
	if cache.GetJSON(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	report := &SalesReport{
		FinancialYear: financialYear,
		DealsByStatus: make(map[string]int),
	}

	leads, err := s.LeadRepo.List(ctx, "", "", 0)
	if err != nil {
		return nil, err
	}
	report.TotalDeals = len(leads)
	for _, l := range leads {
		report.DealsByStatus[l.Status]++
	}

	report.DCsByStatus, err = s.DCRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	report.PaymentsByStatus, err = s.PaymentRepo.SumByStatus(ctx, financialYear)
	if err != nil {
		return nil, err
	}
	report.TotalCollected = report.PaymentsByStatus[models.PaymentStatusApproved]

	cache.SetJSON(ctx, cacheKey, report, cache.StatsTTL)
	return report, nil
}

// BuildPaymentsCSV renders payments as CSV for download.
func (s *ReportService) BuildPaymentsCSV(payments []*models.Payment) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"ID", "School", "Amount", "Method", "Status", "Financial Year", "Recorded By", "Created At"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, p := range payments {
		row := []string{
			strconv.Itoa(p.ID),
			p.SchoolName,
			fmt.Sprintf("%.2f", p.Amount),
			p.PaymentMethod,
			p.Status,
			p.FinancialYear,
			p.CreatedByName,
			p.CreatedAt.In(timeutil.IST).Format("02-Jan-2006 03:04 PM"),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

// GenerateDCChallanPDF renders the printable delivery challan for a DC.
func (s *ReportService) GenerateDCChallanPDF(ctx context.Context, dcID int) ([]byte, error) {
	dc, err := s.DCRepo.Get(ctx, dcID)
	if err != nil {
		return nil, err
	}
	lead, err := s.LeadRepo.Get(ctx, dc.LeadID)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "Delivery Challan", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("DC #%d | Generated: %s", dc.ID,
		timeutil.Now().Format("02-Jan-2006 03:04 PM")), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// School info box
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Delivery Details", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("School: %s", lead.SchoolName), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Contact: %s (%s)", lead.ContactPerson, lead.ContactMobile), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Zone: %s", lead.Zone), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Area: %s, %s", lead.Area, lead.City), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Executive: %s", dc.EmployeeName), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Status: %s", dc.Status), "RB", 1, "L", false, 0, "")
	pdf.Ln(5)

	// Product table
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Products", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(90, 7, "Product", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Quantity", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Unit Price", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Total", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	var grandTotal float64
	for _, p := range lead.Products {
		lineTotal := float64(p.Quantity) * p.UnitPrice
		grandTotal += lineTotal

		name := p.ProductName
		if len(name) > 45 {
			name = name[:42] + "..."
		}
		pdf.CellFormat(90, 6, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, strconv.Itoa(p.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 6, fmt.Sprintf("Rs. %.2f", p.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, fmt.Sprintf("Rs. %.2f", lineTotal), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(120, 8, "Grand Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(70, 8, fmt.Sprintf("Rs. %.2f", grandTotal), "1", 1, "R", false, 0, "")
	pdf.Ln(5)

	// Fulfillment summary
	pdf.SetFont("Arial", "B", 12)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(190, 8, "Fulfillment", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(63, 8, fmt.Sprintf("Requested: %d", dc.RequestedQuantity), "1", 0, "C", false, 0, "")
	pdf.CellFormat(63, 8, fmt.Sprintf("Available: %d", dc.AvailableQuantity), "1", 0, "C", false, 0, "")
	pdf.CellFormat(64, 8, fmt.Sprintf("Deliverable: %d", dc.DeliverableQuantity), "1", 1, "C", false, 0, "")

	if dc.DeliveryNotes != nil && *dc.DeliveryNotes != "" {
		pdf.Ln(3)
		pdf.SetFont("Arial", "I", 10)
		pdf.MultiCell(190, 5, "Notes: "+*dc.DeliveryNotes, "", "L", false)
	}

	// Signature block
	pdf.Ln(15)
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(95, 7, "Received By (Name & Signature)", "T", 0, "C", false, 0, "")
	pdf.CellFormat(95, 7, "Authorized Signatory", "T", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render challan PDF: %w", err)
	}
	return buf.Bytes(), nil
}
