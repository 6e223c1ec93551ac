package models

import (
	"errors"
	"time"
)

// Lead (dc_order) is a prospective or confirmed sale to a school.
// Creating one always creates its delivery challan in the same transaction.
type Lead struct {
	ID            int           `json:"id"`
	SchoolName    string        `json:"school_name"`
	SchoolCode    string        `json:"school_code,omitempty"`
	ContactPerson string        `json:"contact_person"`
	ContactMobile string        `json:"contact_mobile"`
	Email         string        `json:"email,omitempty"`
	Zone          string        `json:"zone"`
	Pincode       string        `json:"pincode"`
	Area          string        `json:"area"`
	City          string        `json:"city"`
	State         string        `json:"state"`
	Products      []LeadProduct `json:"products"`
	AssignedTo    int           `json:"assigned_to"`
	Status        string        `json:"status"`   // pending, processing, completed
	Priority      string        `json:"priority"` // Hot, Warm, Cold
	DCID          *int          `json:"dc_id,omitempty"`
	CreatedBy     int           `json:"created_by"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	AssignedToName string `json:"assigned_to_name,omitempty"`
}

type LeadProduct struct {
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Strength    int     `json:"strength,omitempty"` // student strength for the level
}

const (
	LeadStatusPending    = "pending"
	LeadStatusProcessing = "processing"
	LeadStatusCompleted  = "completed"
)

type CreateLeadRequest struct {
	SchoolName    string        `json:"school_name"`
	SchoolCode    string        `json:"school_code"`
	ContactPerson string        `json:"contact_person"`
	ContactMobile string        `json:"contact_mobile"`
	Email         string        `json:"email"`
	Zone          string        `json:"zone"`
	Pincode       string        `json:"pincode"`
	Area          string        `json:"area"`
	City          string        `json:"city"`
	State         string        `json:"state"`
	Products      []LeadProduct `json:"products"`
	AssignedTo    int           `json:"assigned_to"`
	Priority      string        `json:"priority"`
}

// Validate checks the request before anything touches the database.
func (r *CreateLeadRequest) Validate() error {
	if r.SchoolName == "" {
		return errors.New("school name is required")
	}
	if r.ContactPerson == "" || r.ContactMobile == "" {
		return errors.New("contact person and mobile are required")
	}
	if len(r.Products) == 0 {
		return errors.New("at least one product must be selected")
	}
	for _, p := range r.Products {
		if p.ProductName == "" {
			return errors.New("product name cannot be empty")
		}
		if p.Quantity <= 0 {
			return errors.New("product quantity must be positive")
		}
	}
	if r.AssignedTo == 0 {
		return errors.New("deal must be assigned to an executive")
	}
	return nil
}

// TotalQuantity is the DC requested quantity seeded at lead creation.
func (r *CreateLeadRequest) TotalQuantity() int {
	total := 0
	for _, p := range r.Products {
		total += p.Quantity
	}
	return total
}

type UpdateLeadRequest struct {
	ContactPerson string `json:"contact_person"`
	ContactMobile string `json:"contact_mobile"`
	Status        string `json:"status"`
	Priority      string `json:"priority"`
	AssignedTo    int    `json:"assigned_to"`
}
