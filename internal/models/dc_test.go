package models

import "testing"

func TestNextDCStatus(t *testing.T) {
	tests := []struct {
		name    string
		current string
		action  string
		want    string
		wantErr bool
	}{
		{name: "submit PO on fresh DC", current: DCStatusCreated, action: DCActionSubmitPO, want: DCStatusPOSubmitted},
		{name: "queue after PO", current: DCStatusPOSubmitted, action: DCActionQueue, want: DCStatusPendingDC},
		{name: "start processing from pending", current: DCStatusPendingDC, action: DCActionStartProcessing, want: DCStatusWarehouseProcessing},
		{name: "hold from pending", current: DCStatusPendingDC, action: DCActionHold, want: DCStatusHold},
		{name: "hold mid-processing", current: DCStatusWarehouseProcessing, action: DCActionHold, want: DCStatusHold},
		{name: "release back to pending", current: DCStatusHold, action: DCActionRelease, want: DCStatusPendingDC},
		{name: "complete from processing", current: DCStatusWarehouseProcessing, action: DCActionComplete, want: DCStatusCompleted},

		{name: "cannot complete a pending DC", current: DCStatusPendingDC, action: DCActionComplete, wantErr: true},
		{name: "cannot queue without PO", current: DCStatusCreated, action: DCActionQueue, wantErr: true},
		{name: "cannot submit PO twice", current: DCStatusPOSubmitted, action: DCActionSubmitPO, wantErr: true},
		{name: "cannot release a processing DC", current: DCStatusWarehouseProcessing, action: DCActionRelease, wantErr: true},
		{name: "completed is terminal", current: DCStatusCompleted, action: DCActionHold, wantErr: true},
		{name: "unknown action", current: DCStatusPendingDC, action: "reopen", wantErr: true},
		{name: "unknown status", current: "archived", action: DCActionHold, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextDCStatus(tt.current, tt.action)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("NextDCStatus(%q, %q) = %q, want error", tt.current, tt.action, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("NextDCStatus(%q, %q) unexpected error: %v", tt.current, tt.action, err)
			}
			if got != tt.want {
				t.Errorf("NextDCStatus(%q, %q) = %q, want %q", tt.current, tt.action, got, tt.want)
			}
		})
	}
}

func TestListedEligible(t *testing.T) {
	tests := []struct {
		name string
		dc   DC
		want bool
	}{
		{
			name: "processing with surplus stock",
			dc:   DC{Status: DCStatusWarehouseProcessing, AvailableQuantity: 100, DeliverableQuantity: 60},
			want: true,
		},
		{
			name: "processing but fully deliverable",
			dc:   DC{Status: DCStatusWarehouseProcessing, AvailableQuantity: 60, DeliverableQuantity: 60},
			want: false,
		},
		{
			name: "surplus but on hold",
			dc:   DC{Status: DCStatusHold, AvailableQuantity: 100, DeliverableQuantity: 60},
			want: false,
		},
		{
			name: "pending DC never listed",
			dc:   DC{Status: DCStatusPendingDC, AvailableQuantity: 100, DeliverableQuantity: 0},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dc.ListedEligible(); got != tt.want {
				t.Errorf("ListedEligible() = %v, want %v", got, tt.want)
			}
		})
	}
}
