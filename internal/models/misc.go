package models

import "time"

// SampleRequest is a request to ship demo kits to a prospect school.
type SampleRequest struct {
	ID          int       `json:"id"`
	SchoolName  string    `json:"school_name"`
	ContactName string    `json:"contact_name"`
	Mobile      string    `json:"mobile"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	Status      string    `json:"status"` // requested, dispatched, delivered
	RequestedBy int       `json:"requested_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateSampleRequestRequest struct {
	SchoolName  string `json:"school_name"`
	ContactName string `json:"contact_name"`
	Mobile      string `json:"mobile"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

// ContactQuery is an inbound website/phone enquiry awaiting follow-up.
type ContactQuery struct {
	ID         int        `json:"id"`
	Name       string     `json:"name"`
	Mobile     string     `json:"mobile"`
	Email      string     `json:"email"`
	SchoolName string     `json:"school_name"`
	Message    string     `json:"message"`
	Status     string     `json:"status"` // open, contacted, closed
	AssignedTo *int       `json:"assigned_to,omitempty"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// LeaveRequest is an executive's leave application, approved by their manager.
type LeaveRequest struct {
	ID          int        `json:"id"`
	EmployeeID  int        `json:"employee_id"`
	FromDate    time.Time  `json:"from_date"`
	ToDate      time.Time  `json:"to_date"`
	Reason      string     `json:"reason"`
	Status      string     `json:"status"` // Pending, Approved, Rejected
	ReviewedBy  *int       `json:"reviewed_by,omitempty"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
	ReviewNotes *string    `json:"review_notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`

	EmployeeName string `json:"employee_name,omitempty"`
}

type CreateLeaveRequest struct {
	FromDate string `json:"from_date"` // YYYY-MM-DD
	ToDate   string `json:"to_date"`
	Reason   string `json:"reason"`
}

type ReviewLeaveRequest struct {
	Status string `json:"status"` // Approved or Rejected
	Notes  string `json:"notes"`
}

// AuditLog records who did what on mutating endpoints.
type AuditLog struct {
	ID          int       `json:"id"`
	ActorUserID int       `json:"actor_user_id"`
	ActionType  string    `json:"action_type"` // CREATE, UPDATE, DELETE, TRANSITION, REVIEW
	TargetType  string    `json:"target_type"`
	TargetID    *int      `json:"target_id,omitempty"`
	Description string    `json:"description"`
	IPAddress   *string   `json:"ip_address,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type SystemSetting struct {
	ID           int       `json:"id"`
	SettingKey   string    `json:"setting_key"`
	SettingValue string    `json:"setting_value"`
	Description  string    `json:"description"`
	UpdatedAt    time.Time `json:"updated_at"`
}
