package models

import "testing"

func validLeadRequest() CreateLeadRequest {
	return CreateLeadRequest{
		SchoolName:    "St. Mary's High School",
		ContactPerson: "Principal Sharma",
		ContactMobile: "9876543210",
		Zone:          "West",
		Products: []LeadProduct{
			{ProductName: "Abacus Level 1", Quantity: 40, UnitPrice: 250},
			{ProductName: "Abacus Level 2", Quantity: 25, UnitPrice: 275},
		},
		AssignedTo: 7,
	}
}

func TestCreateLeadRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CreateLeadRequest)
		wantErr bool
	}{
		{name: "valid request", mutate: func(r *CreateLeadRequest) {}},
		{name: "missing school name", mutate: func(r *CreateLeadRequest) { r.SchoolName = "" }, wantErr: true},
		{name: "missing contact person", mutate: func(r *CreateLeadRequest) { r.ContactPerson = "" }, wantErr: true},
		{name: "missing mobile", mutate: func(r *CreateLeadRequest) { r.ContactMobile = "" }, wantErr: true},
		{name: "no products", mutate: func(r *CreateLeadRequest) { r.Products = nil }, wantErr: true},
		{name: "empty product name", mutate: func(r *CreateLeadRequest) { r.Products[0].ProductName = "" }, wantErr: true},
		{name: "zero quantity", mutate: func(r *CreateLeadRequest) { r.Products[1].Quantity = 0 }, wantErr: true},
		{name: "negative quantity", mutate: func(r *CreateLeadRequest) { r.Products[0].Quantity = -5 }, wantErr: true},
		{name: "unassigned deal", mutate: func(r *CreateLeadRequest) { r.AssignedTo = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validLeadRequest()
			tt.mutate(&req)
			err := req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTotalQuantity(t *testing.T) {
	req := validLeadRequest()
	if got := req.TotalQuantity(); got != 65 {
		t.Errorf("TotalQuantity() = %d, want 65", got)
	}

	req.Products = nil
	if got := req.TotalQuantity(); got != 0 {
		t.Errorf("TotalQuantity() with no products = %d, want 0", got)
	}
}
