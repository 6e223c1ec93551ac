package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"

	"crm-backend/internal/metrics"
	"crm-backend/internal/models"
	"crm-backend/internal/repositories"
)

var pendingMonthRe = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// ExpenseService runs the two-stage approval chain: employee files,
// manager reviews (possibly trimming the amount), finance finalizes.
type ExpenseService struct {
	ExpenseRepo *repositories.ExpenseRepository
	UserRepo    *repositories.UserRepository
	AuditRepo   *repositories.AuditLogRepository
}

func NewExpenseService(expenseRepo *repositories.ExpenseRepository, userRepo *repositories.UserRepository, auditRepo *repositories.AuditLogRepository) *ExpenseService {
	return &ExpenseService{
		ExpenseRepo: expenseRepo,
		UserRepo:    userRepo,
		AuditRepo:   auditRepo,
	}
}

// Create files an expense for an employee or a trainer.
func (s *ExpenseService) Create(ctx context.Context, req *models.CreateExpenseRequest, creatorID int) (*models.Expense, error) {
	if req.Amount <= 0 {
		return nil, errors.New("amount must be positive")
	}
	if req.Category == "" {
		return nil, errors.New("category is required")
	}
	if (req.EmployeeID == nil) == (req.TrainerID == nil) {
		return nil, errors.New("expense must belong to exactly one of employee or trainer")
	}
	if req.PendingMonth != "" && !pendingMonthRe.MatchString(req.PendingMonth) {
		return nil, errors.New("pending month must be YYYY-MM")
	}

	expense := &models.Expense{
		EmployeeID:   req.EmployeeID,
		TrainerID:    req.TrainerID,
		Amount:       req.Amount,
		Category:     req.Category,
		Description:  req.Description,
		Status:       models.ExpenseStatusPending,
		PendingMonth: req.PendingMonth,
		ReceiptURL:   optional(req.ReceiptURL),
	}
	if err := s.ExpenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}

	s.AuditRepo.Log(ctx, creatorID, "CREATE", "expense", &expense.ID,
		fmt.Sprintf("filed %s expense of %.2f", expense.Category, expense.Amount), "")
	return expense, nil
}

func (s *ExpenseService) Get(ctx context.Context, id int) (*models.Expense, error) {
	return s.ExpenseRepo.Get(ctx, id)
}

func (s *ExpenseService) List(ctx context.Context, status string, employeeID int) ([]*models.Expense, error) {
	return s.ExpenseRepo.List(ctx, status, employeeID)
}

// ManagerQueue lists pending expenses filed by a manager's reports
func (s *ExpenseService) ManagerQueue(ctx context.Context, managerID int) ([]*models.Expense, error) {
	return s.ExpenseRepo.ListManagerPending(ctx, managerID)
}

// FinanceQueue lists manager-approved expenses awaiting finance
func (s *ExpenseService) FinanceQueue(ctx context.Context) ([]*models.Expense, error) {
	return s.ExpenseRepo.ListFinancePending(ctx)
}

// ApproveMultiple applies a manager decision to a batch of expenses in one
// transaction. Every item must be pending and belong to one of the
// manager's reports, or the whole batch rolls back.
func (s *ExpenseService) ApproveMultiple(ctx context.Context, req *models.ApproveMultipleRequest, managerID int, managerRole string) error {
	if len(req.Items) == 0 {
		return errors.New("no expenses selected")
	}
	var status string
	switch req.Decision {
	case "approve":
		status = models.ExpenseStatusManagerApproved
	case "reject":
		status = models.ExpenseStatusRejected
	default:
		return fmt.Errorf("unknown decision '%s'", req.Decision)
	}

	seen := make(map[int]bool, len(req.Items))
	for _, item := range req.Items {
		if seen[item.ExpenseID] {
			return fmt.Errorf("expense %d appears more than once in the batch", item.ExpenseID)
		}
		seen[item.ExpenseID] = true
	}

	// Admins may review any expense; managers only their own reports.
	adminActor := managerRole == models.RoleSuperAdmin || managerRole == models.RoleAdmin

	tx, err := s.ExpenseRepo.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, item := range req.Items {
		expense, err := s.ExpenseRepo.Get(ctx, item.ExpenseID)
		if err != nil {
			return fmt.Errorf("expense %d not found", item.ExpenseID)
		}
		if err := models.ValidateExpenseStage(expense.Status, "manager"); err != nil {
			metrics.ApprovalsTotal.WithLabelValues("expense", "rejected_transition").Inc()
			return fmt.Errorf("expense %d: %w", item.ExpenseID, err)
		}
		if !adminActor && expense.EmployeeID != nil {
			report, err := s.UserRepo.Get(ctx, *expense.EmployeeID)
			if err != nil || report.ManagerID == nil || *report.ManagerID != managerID {
				return fmt.Errorf("expense %d was not filed by one of your reports", item.ExpenseID)
			}
		}

		var approvedAmount *float64
		if status == models.ExpenseStatusManagerApproved {
			amount := item.ApprovedAmount
			if amount <= 0 || amount > expense.Amount {
				amount = expense.Amount
			}
			approvedAmount = &amount
		}

		if err := s.ExpenseRepo.ManagerReviewTx(ctx, tx, item.ExpenseID, status, approvedAmount, item.ManagerRemarks, managerID); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	metrics.ApprovalsTotal.WithLabelValues("expense", status).Add(float64(len(req.Items)))
	s.AuditRepo.Log(ctx, managerID, "REVIEW", "expense", nil,
		fmt.Sprintf("manager %sd %d expenses", req.Decision, len(req.Items)), "")
	log.Printf("[ExpenseService] Manager %d %sd %d expenses", managerID, req.Decision, len(req.Items))
	return nil
}

// FinanceReview finalizes a single manager-approved expense.
func (s *ExpenseService) FinanceReview(ctx context.Context, id int, req *models.FinanceReviewRequest, reviewerID int) (*models.Expense, error) {
	var status string
	switch req.Decision {
	case "approve":
		status = models.ExpenseStatusApproved
	case "reject":
		status = models.ExpenseStatusRejected
	default:
		return nil, fmt.Errorf("unknown decision '%s'", req.Decision)
	}

	expense, err := s.ExpenseRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := models.ValidateExpenseStage(expense.Status, "finance"); err != nil {
		metrics.ApprovalsTotal.WithLabelValues("expense", "rejected_transition").Inc()
		return nil, err
	}

	if err := s.ExpenseRepo.FinanceReview(ctx, id, status, req.Remarks, reviewerID); err != nil {
		return nil, err
	}

	metrics.ApprovalsTotal.WithLabelValues("expense", status).Inc()
	s.AuditRepo.Log(ctx, reviewerID, "REVIEW", "expense", &id,
		fmt.Sprintf("finance %sd expense #%d", req.Decision, id), "")
	return s.ExpenseRepo.Get(ctx, id)
}
