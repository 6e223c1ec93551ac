package services

import (
	"testing"

	"crm-backend/internal/models"
)

func TestCompleteAllowed(t *testing.T) {
	tests := []struct {
		name    string
		dc      models.DC
		wantErr bool
	}{
		{
			name: "processing with surplus stock",
			dc:   models.DC{ID: 1, Status: models.DCStatusWarehouseProcessing, AvailableQuantity: 10, DeliverableQuantity: 5},
		},
		{
			name:    "processing with available equal to deliverable",
			dc:      models.DC{ID: 2, Status: models.DCStatusWarehouseProcessing, AvailableQuantity: 10, DeliverableQuantity: 10},
			wantErr: true,
		},
		{
			name:    "processing with available below deliverable",
			dc:      models.DC{ID: 3, Status: models.DCStatusWarehouseProcessing, AvailableQuantity: 5, DeliverableQuantity: 10},
			wantErr: true,
		},
		{
			name:    "on hold even with surplus stock",
			dc:      models.DC{ID: 4, Status: models.DCStatusHold, AvailableQuantity: 10, DeliverableQuantity: 5},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := completeAllowed(&tt.dc)
			if tt.wantErr && err == nil {
				t.Errorf("expected error for %+v, got nil", tt.dc)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
