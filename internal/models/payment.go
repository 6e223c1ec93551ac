package models

import (
	"fmt"
	"time"
)

// Payment statuses. Review is a single step gated to finance roles.
const (
	PaymentStatusPending  = "Pending"
	PaymentStatusApproved = "Approved"
	PaymentStatusHold     = "Hold/duplicate"
	PaymentStatusRejected = "Rejected"
)

// Payment methods observed across the intake forms.
const (
	PaymentMethodCash   = "cash"
	PaymentMethodCheque = "cheque"
	PaymentMethodUPI    = "upi"
	PaymentMethodNEFT   = "neft"
	PaymentMethodOnline = "online"
)

type Payment struct {
	ID            int        `json:"id"`
	LeadID        *int       `json:"lead_id,omitempty"`
	SchoolName    string     `json:"school_name"`
	Amount        float64    `json:"amount"`
	PaymentMethod string     `json:"payment_method"`
	Status        string     `json:"status"`
	FinancialYear string     `json:"financial_year"`
	CreatedBy     int        `json:"created_by"`
	UpiID         *string    `json:"upi_id,omitempty"`
	ChequeNumber  *string    `json:"cheque_number,omitempty"`
	BankName      *string    `json:"bank_name,omitempty"`
	TransactionID *string    `json:"transaction_id,omitempty"`
	OrderID       *string    `json:"order_id,omitempty"` // razorpay order for online payments
	Remarks       *string    `json:"remarks,omitempty"`
	ReviewedBy    *int       `json:"reviewed_by,omitempty"`
	ReviewedAt    *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	CreatedByName string `json:"created_by_name,omitempty"`
}

type CreatePaymentRequest struct {
	LeadID        *int    `json:"lead_id"`
	SchoolName    string  `json:"school_name"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"payment_method"`
	UpiID         string  `json:"upi_id"`
	ChequeNumber  string  `json:"cheque_number"`
	BankName      string  `json:"bank_name"`
	TransactionID string  `json:"transaction_id"`
	OrderID       string  `json:"order_id"`
	Signature     string  `json:"signature"` // razorpay checkout signature
	Remarks       string  `json:"remarks"`
}

type ReviewPaymentRequest struct {
	Status  string `json:"status"`
	Remarks string `json:"remarks"`
}

// ValidatePaymentReview enforces the single-step review: only pending
// payments move, and only to one of the three decision statuses.
func ValidatePaymentReview(current, next string) error {
	if current != PaymentStatusPending {
		return fmt.Errorf("payment already reviewed (status '%s')", current)
	}
	switch next {
	case PaymentStatusApproved, PaymentStatusHold, PaymentStatusRejected:
		return nil
	}
	return fmt.Errorf("invalid review decision '%s'", next)
}
