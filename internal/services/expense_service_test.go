package services

import (
	"context"
	"testing"

	"crm-backend/internal/models"
)

// ApproveMultiple rejects malformed batches before touching the database,
// so these cases run against a zero-value service.
func TestApproveMultipleRejectsBadBatches(t *testing.T) {
	svc := &ExpenseService{}

	tests := []struct {
		name string
		req  models.ApproveMultipleRequest
	}{
		{
			name: "empty batch",
			req:  models.ApproveMultipleRequest{Decision: "approve"},
		},
		{
			name: "unknown decision",
			req: models.ApproveMultipleRequest{
				Decision: "maybe",
				Items:    []models.ApproveExpenseItem{{ExpenseID: 1}},
			},
		},
		{
			name: "duplicate expense in one batch",
			req: models.ApproveMultipleRequest{
				Decision: "approve",
				Items: []models.ApproveExpenseItem{
					{ExpenseID: 7, ApprovedAmount: 100},
					{ExpenseID: 8, ApprovedAmount: 50},
					{ExpenseID: 7, ApprovedAmount: 100},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := svc.ApproveMultiple(context.Background(), &tt.req, 1, models.RoleManager); err == nil {
				t.Errorf("expected error for %s, got nil", tt.name)
			}
		})
	}
}
