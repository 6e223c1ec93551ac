package models

import (
	"fmt"
	"time"
)

// Expense statuses. Two-stage chain: employee files, manager reviews,
// finance finalizes. Rejection is terminal at either stage.
const (
	ExpenseStatusPending         = "Pending"
	ExpenseStatusManagerApproved = "Manager Approved"
	ExpenseStatusApproved        = "Approved"
	ExpenseStatusRejected        = "Rejected"
)

type Expense struct {
	ID                int        `json:"id"`
	EmployeeID        *int       `json:"employee_id,omitempty"`
	TrainerID         *int       `json:"trainer_id,omitempty"`
	Amount            float64    `json:"amount"`
	Category          string     `json:"category"`
	Description       string     `json:"description"`
	Status            string     `json:"status"`
	PendingMonth      string     `json:"pending_month"` // e.g. "2026-08"
	ApprovedAmount    *float64   `json:"approved_amount,omitempty"`
	ManagerRemarks    *string    `json:"manager_remarks,omitempty"`
	FinanceRemarks    *string    `json:"finance_remarks,omitempty"`
	ReceiptURL        *string    `json:"receipt_url,omitempty"`
	ManagerReviewedBy *int       `json:"manager_reviewed_by,omitempty"`
	FinanceReviewedBy *int       `json:"finance_reviewed_by,omitempty"`
	ManagerReviewedAt *time.Time `json:"manager_reviewed_at,omitempty"`
	FinanceReviewedAt *time.Time `json:"finance_reviewed_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`

	EmployeeName string `json:"employee_name,omitempty"`
	TrainerName  string `json:"trainer_name,omitempty"`
}

type CreateExpenseRequest struct {
	EmployeeID   *int    `json:"employee_id"`
	TrainerID    *int    `json:"trainer_id"`
	Amount       float64 `json:"amount"`
	Category     string  `json:"category"`
	Description  string  `json:"description"`
	PendingMonth string  `json:"pending_month"`
	ReceiptURL   string  `json:"receipt_url"`
}

// ApproveExpenseItem is one line of the batch manager review. The manager
// may trim the amount and attach remarks per item.
type ApproveExpenseItem struct {
	ExpenseID      int     `json:"expense_id"`
	ApprovedAmount float64 `json:"approved_amount"`
	ManagerRemarks string  `json:"manager_remarks"`
}

type ApproveMultipleRequest struct {
	Decision string               `json:"decision"` // "approve" or "reject"
	Items    []ApproveExpenseItem `json:"items"`
}

type FinanceReviewRequest struct {
	Decision string `json:"decision"` // "approve" or "reject"
	Remarks  string `json:"remarks"`
}

// ValidateExpenseStage enforces the approval chain ordering.
// stage is "manager" or "finance".
func ValidateExpenseStage(current, stage string) error {
	switch stage {
	case "manager":
		if current != ExpenseStatusPending {
			return fmt.Errorf("manager review requires a pending expense (status '%s')", current)
		}
	case "finance":
		if current != ExpenseStatusManagerApproved {
			return fmt.Errorf("finance review requires a manager-approved expense (status '%s')", current)
		}
	default:
		return fmt.Errorf("unknown review stage '%s'", stage)
	}
	return nil
}
