package models

import "testing"

func TestValidatePaymentReview(t *testing.T) {
	tests := []struct {
		name    string
		current string
		next    string
		wantErr bool
	}{
		{name: "approve pending", current: PaymentStatusPending, next: PaymentStatusApproved},
		{name: "hold pending as duplicate", current: PaymentStatusPending, next: PaymentStatusHold},
		{name: "reject pending", current: PaymentStatusPending, next: PaymentStatusRejected},
		{name: "cannot re-review approved", current: PaymentStatusApproved, next: PaymentStatusRejected, wantErr: true},
		{name: "cannot re-review rejected", current: PaymentStatusRejected, next: PaymentStatusApproved, wantErr: true},
		{name: "cannot move to pending", current: PaymentStatusPending, next: PaymentStatusPending, wantErr: true},
		{name: "unknown decision", current: PaymentStatusPending, next: "Cleared", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePaymentReview(tt.current, tt.next)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePaymentReview(%q, %q) error = %v, wantErr %v", tt.current, tt.next, err, tt.wantErr)
			}
		})
	}
}

func TestValidateExpenseStage(t *testing.T) {
	tests := []struct {
		name    string
		current string
		stage   string
		wantErr bool
	}{
		{name: "manager reviews pending", current: ExpenseStatusPending, stage: "manager"},
		{name: "finance reviews manager approved", current: ExpenseStatusManagerApproved, stage: "finance"},
		{name: "finance cannot skip manager", current: ExpenseStatusPending, stage: "finance", wantErr: true},
		{name: "manager cannot re-review", current: ExpenseStatusManagerApproved, stage: "manager", wantErr: true},
		{name: "rejected is terminal for manager", current: ExpenseStatusRejected, stage: "manager", wantErr: true},
		{name: "rejected is terminal for finance", current: ExpenseStatusRejected, stage: "finance", wantErr: true},
		{name: "approved is terminal", current: ExpenseStatusApproved, stage: "finance", wantErr: true},
		{name: "unknown stage", current: ExpenseStatusPending, stage: "director", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateExpenseStage(tt.current, tt.stage)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateExpenseStage(%q, %q) error = %v, wantErr %v", tt.current, tt.stage, err, tt.wantErr)
			}
		})
	}
}
