package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"crm-backend/internal/cache"
	"crm-backend/internal/metrics"
	"crm-backend/internal/models"
	"crm-backend/internal/repositories"
	"crm-backend/internal/timeutil"
)

// PaymentService records payments and applies the single-step finance
// review. Online payments are verified against Razorpay before they are
// accepted.
type PaymentService struct {
	PaymentRepo *repositories.PaymentRepository
	AuditRepo   *repositories.AuditLogRepository
	Razorpay    *RazorpayService
}

func NewPaymentService(paymentRepo *repositories.PaymentRepository, auditRepo *repositories.AuditLogRepository, razorpay *RazorpayService) *PaymentService {
	return &PaymentService{
		PaymentRepo: paymentRepo,
		AuditRepo:   auditRepo,
		Razorpay:    razorpay,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Create records a payment with status Pending. Method-specific fields
// are validated up front so finance never sees half-filled records.
func (s *PaymentService) Create(ctx context.Context, req *models.CreatePaymentRequest, creatorID int) (*models.Payment, error) {
	if req.SchoolName == "" {
		return nil, errors.New("school name is required")
	}
	if req.Amount <= 0 {
		return nil, errors.New("amount must be positive")
	}

	switch req.PaymentMethod {
	case models.PaymentMethodCash:
	case models.PaymentMethodUPI:
		if req.UpiID == "" && req.TransactionID == "" {
			return nil, errors.New("UPI payments require a UPI ID or transaction ID")
		}
	case models.PaymentMethodCheque:
		if req.ChequeNumber == "" || req.BankName == "" {
			return nil, errors.New("cheque payments require cheque number and bank name")
		}
	case models.PaymentMethodNEFT:
		if req.TransactionID == "" {
			return nil, errors.New("NEFT payments require a transaction ID")
		}
	case models.PaymentMethodOnline:
		if req.OrderID == "" || req.TransactionID == "" {
			return nil, errors.New("online payments require order ID and payment ID")
		}
		if s.Razorpay != nil {
			if err := s.Razorpay.VerifyPayment(req.OrderID, req.TransactionID, req.Signature); err != nil {
				return nil, fmt.Errorf("online payment verification failed: %w", err)
			}
		}
	default:
		return nil, fmt.Errorf("unknown payment method '%s'", req.PaymentMethod)
	}

	payment := &models.Payment{
		LeadID:        req.LeadID,
		SchoolName:    req.SchoolName,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		Status:        models.PaymentStatusPending,
		FinancialYear: timeutil.FinancialYear(timeutil.Now()),
		CreatedBy:     creatorID,
		UpiID:         optional(req.UpiID),
		ChequeNumber:  optional(req.ChequeNumber),
		BankName:      optional(req.BankName),
		TransactionID: optional(req.TransactionID),
		OrderID:       optional(req.OrderID),
		Remarks:       optional(req.Remarks),
	}

	if err := s.PaymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	cache.InvalidateStats(ctx)
	s.AuditRepo.Log(ctx, creatorID, "CREATE", "payment", &payment.ID,
		fmt.Sprintf("recorded %s payment of %.2f for %s", payment.PaymentMethod, payment.Amount, payment.SchoolName), "")
	return payment, nil
}

func (s *PaymentService) Get(ctx context.Context, id int) (*models.Payment, error) {
	return s.PaymentRepo.Get(ctx, id)
}

func (s *PaymentService) List(ctx context.Context, status, financialYear string, createdBy int) ([]*models.Payment, error) {
	return s.PaymentRepo.List(ctx, status, financialYear, createdBy)
}

// Review applies a finance decision. Only pending payments move, and only
// to Approved, Hold/duplicate or Rejected.
func (s *PaymentService) Review(ctx context.Context, id int, req *models.ReviewPaymentRequest, reviewerID int) (*models.Payment, error) {
	payment, err := s.PaymentRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := models.ValidatePaymentReview(payment.Status, req.Status); err != nil {
		metrics.ApprovalsTotal.WithLabelValues("payment", "rejected_transition").Inc()
		return nil, err
	}

	if err := s.PaymentRepo.Review(ctx, id, req.Status, req.Remarks, reviewerID); err != nil {
		return nil, err
	}

	cache.InvalidateStats(ctx)
	metrics.ApprovalsTotal.WithLabelValues("payment", req.Status).Inc()
	s.AuditRepo.Log(ctx, reviewerID, "REVIEW", "payment", &id,
		fmt.Sprintf("payment #%d: %s -> %s", id, payment.Status, req.Status), "")
	log.Printf("[PaymentService] Payment %d reviewed: %s", id, req.Status)
	return s.PaymentRepo.Get(ctx, id)
}
