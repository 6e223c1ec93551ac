package models

import (
	"fmt"
	"time"
)

// DC statuses as stored in the database. The set is closed: the transition
// validator rejects anything outside it instead of persisting unknown values.
const (
	DCStatusCreated             = "created"
	DCStatusPOSubmitted         = "po_submitted"
	DCStatusPendingDC           = "pending_dc"
	DCStatusWarehouseProcessing = "warehouse_processing"
	DCStatusHold                = "hold"
	DCStatusCompleted           = "completed"
)

// Actions a caller can request on a DC. Each PUT /api/dc/{id}/... endpoint
// maps to exactly one action; the raw status string is never trusted.
const (
	DCActionSubmitPO        = "submit_po"
	DCActionQueue           = "queue"
	DCActionStartProcessing = "start_processing"
	DCActionHold            = "hold"
	DCActionRelease         = "release"
	DCActionComplete        = "complete"
)

// dcTransitions maps (action, current status) -> next status.
var dcTransitions = map[string]map[string]string{
	DCActionSubmitPO: {
		DCStatusCreated: DCStatusPOSubmitted,
	},
	DCActionQueue: {
		DCStatusPOSubmitted: DCStatusPendingDC,
	},
	DCActionStartProcessing: {
		DCStatusPendingDC: DCStatusWarehouseProcessing,
	},
	DCActionHold: {
		DCStatusPendingDC:           DCStatusHold,
		DCStatusWarehouseProcessing: DCStatusHold,
	},
	DCActionRelease: {
		DCStatusHold: DCStatusPendingDC,
	},
	DCActionComplete: {
		DCStatusWarehouseProcessing: DCStatusCompleted,
	},
}

// NextDCStatus resolves the status a DC moves to when an action is applied.
// Returns an error for any illegal (status, action) pair.
func NextDCStatus(current, action string) (string, error) {
	targets, ok := dcTransitions[action]
	if !ok {
		return "", fmt.Errorf("unknown DC action: %s", action)
	}
	next, ok := targets[current]
	if !ok {
		return "", fmt.Errorf("cannot %s a DC in status '%s'", action, current)
	}
	return next, nil
}

type DC struct {
	ID                  int        `json:"id"`
	LeadID              int        `json:"lead_id"`
	SaleID              *int       `json:"sale_id,omitempty"`
	EmployeeID          int        `json:"employee_id"`
	Status              string     `json:"status"`
	RequestedQuantity   int        `json:"requested_quantity"`
	AvailableQuantity   int        `json:"available_quantity"`
	DeliverableQuantity int        `json:"deliverable_quantity"`
	POPhotoURL          *string    `json:"po_photo_url,omitempty"`
	DeliveryNotes       *string    `json:"delivery_notes,omitempty"`
	HoldReason          *string    `json:"hold_reason,omitempty"`
	ListedAt            *time.Time `json:"listed_at,omitempty"`
	CompletedAt         *time.Time `json:"completed_at,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`

	// Denormalized lead fields, joined on list endpoints so clients never
	// merge the two entities themselves
	SchoolName    string `json:"school_name,omitempty"`
	ContactPerson string `json:"contact_person,omitempty"`
	ContactMobile string `json:"contact_mobile,omitempty"`
	Zone          string `json:"zone,omitempty"`
	EmployeeName  string `json:"employee_name,omitempty"`
}

// ListedEligible reports whether a DC belongs in the warehouse "Listed"
// queue. Authoritative rule: processing with more stock available than
// already deliverable. listed_at is a display timestamp, not an input.
func (d *DC) ListedEligible() bool {
	return d.Status == DCStatusWarehouseProcessing &&
		d.AvailableQuantity > d.DeliverableQuantity
}

type SubmitPORequest struct {
	POPhoto       string `json:"po_photo"` // URL or base64 data URL
	DeliveryNotes string `json:"delivery_notes"`
}

type HoldDCRequest struct {
	HoldReason string `json:"hold_reason"`
}

type UpdateDCQuantitiesRequest struct {
	AvailableQuantity   *int `json:"available_quantity"`
	DeliverableQuantity *int `json:"deliverable_quantity"`
}
