package repositories

import (
	"context"
	"fmt"

	"crm-backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DCRepository struct {
	DB *pgxpool.Pool
}

func NewDCRepository(db *pgxpool.Pool) *DCRepository {
	return &DCRepository{DB: db}
}

const dcSelect = `
	SELECT d.id, d.lead_id, d.sale_id, d.employee_id, d.status,
	       d.requested_quantity, d.available_quantity, d.deliverable_quantity,
	       d.po_photo_url, d.delivery_notes, d.hold_reason,
	       d.listed_at, d.completed_at, d.created_at, d.updated_at,
	       l.school_name, l.contact_person, l.contact_mobile, l.zone,
	       u.name AS employee_name
	FROM dcs d
	JOIN leads l ON d.lead_id = l.id
	JOIN users u ON d.employee_id = u.id
`

func scanDC(row interface{ Scan(...any) error }) (*models.DC, error) {
	dc := &models.DC{}
	err := row.Scan(
		&dc.ID, &dc.LeadID, &dc.SaleID, &dc.EmployeeID, &dc.Status,
		&dc.RequestedQuantity, &dc.AvailableQuantity, &dc.DeliverableQuantity,
		&dc.POPhotoURL, &dc.DeliveryNotes, &dc.HoldReason,
		&dc.ListedAt, &dc.CompletedAt, &dc.CreatedAt, &dc.UpdatedAt,
		&dc.SchoolName, &dc.ContactPerson, &dc.ContactMobile, &dc.Zone,
		&dc.EmployeeName,
	)
	if err != nil {
		return nil, err
	}
	return dc, nil
}

// CreateTx inserts a DC inside an existing transaction (used by lead
// creation so the lead and its DC commit together).
func (r *DCRepository) CreateTx(ctx context.Context, tx pgx.Tx, dc *models.DC) error {
	query := `
		INSERT INTO dcs (lead_id, employee_id, status, requested_quantity)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	return tx.QueryRow(ctx, query,
		dc.LeadID, dc.EmployeeID, dc.Status, dc.RequestedQuantity,
	).Scan(&dc.ID, &dc.CreatedAt, &dc.UpdatedAt)
}

// Get retrieves a DC with its joined lead fields
func (r *DCRepository) Get(ctx context.Context, id int) (*models.DC, error) {
	return scanDC(r.DB.QueryRow(ctx, dcSelect+` WHERE d.id = $1`, id))
}

// List retrieves DCs, optionally filtered by status and employee
func (r *DCRepository) List(ctx context.Context, status string, employeeID int) ([]*models.DC, error) {
	query := dcSelect + ` WHERE 1=1`
	args := []any{}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND d.status = $%d", len(args))
	}
	if employeeID != 0 {
		args = append(args, employeeID)
		query += fmt.Sprintf(" AND d.employee_id = $%d", len(args))
	}
	query += " ORDER BY d.created_at DESC"

	return r.queryMany(ctx, query, args...)
}

// ListByStatuses retrieves DCs in any of the given statuses (warehouse queues)
func (r *DCRepository) ListByStatuses(ctx context.Context, statuses []string) ([]*models.DC, error) {
	query := dcSelect + ` WHERE d.status = ANY($1) ORDER BY d.created_at DESC`
	return r.queryMany(ctx, query, statuses)
}

// ListListed retrieves the warehouse "Listed" queue: processing DCs whose
// available stock exceeds the deliverable quantity.
func (r *DCRepository) ListListed(ctx context.Context) ([]*models.DC, error) {
	query := dcSelect + `
		WHERE d.status = 'warehouse_processing'
		  AND d.available_quantity > d.deliverable_quantity
		ORDER BY d.listed_at DESC NULLS LAST, d.created_at DESC`
	return r.queryMany(ctx, query)
}

func (r *DCRepository) queryMany(ctx context.Context, query string, args ...any) ([]*models.DC, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dcs []*models.DC
	for rows.Next() {
		dc, err := scanDC(rows)
		if err != nil {
			return nil, err
		}
		dcs = append(dcs, dc)
	}
	return dcs, rows.Err()
}

const dcStatusUpdate = `
	UPDATE dcs
	SET status = $1,
	    hold_reason = $2,
	    completed_at = CASE WHEN $1 = 'completed' THEN NOW() ELSE completed_at END,
	    listed_at = CASE
	        WHEN $1 = 'warehouse_processing' AND listed_at IS NULL
	             AND available_quantity > deliverable_quantity THEN NOW()
	        ELSE listed_at
	    END,
	    updated_at = NOW()
	WHERE id = $3
`

// UpdateStatus applies a validated transition. The service layer is the
// only caller and has already resolved the legal next status.
func (r *DCRepository) UpdateStatus(ctx context.Context, id int, status string, holdReason *string) error {
	_, err := r.DB.Exec(ctx, dcStatusUpdate, status, holdReason, id)
	return err
}

// UpdateStatusTx is UpdateStatus inside an existing transaction, used by
// completion so the status flips together with the stock consumption.
func (r *DCRepository) UpdateStatusTx(ctx context.Context, tx pgx.Tx, id int, status string, holdReason *string) error {
	_, err := tx.Exec(ctx, dcStatusUpdate, status, holdReason, id)
	return err
}

// SetPOPhoto stores the PO photo URL and delivery notes with the
// po_submitted transition.
func (r *DCRepository) SetPOPhoto(ctx context.Context, id int, photoURL string, notes *string, status string) error {
	query := `
		UPDATE dcs
		SET po_photo_url = $1, delivery_notes = $2, status = $3, updated_at = NOW()
		WHERE id = $4
	`
	_, err := r.DB.Exec(ctx, query, photoURL, notes, status, id)
	return err
}

// UpdateQuantities adjusts warehouse fulfillment quantities
func (r *DCRepository) UpdateQuantities(ctx context.Context, id int, available, deliverable *int) error {
	query := `
		UPDATE dcs
		SET available_quantity = COALESCE($1, available_quantity),
		    deliverable_quantity = COALESCE($2, deliverable_quantity),
		    listed_at = CASE
		        WHEN status = 'warehouse_processing' AND listed_at IS NULL
		             AND COALESCE($1, available_quantity) > COALESCE($2, deliverable_quantity) THEN NOW()
		        ELSE listed_at
		    END,
		    updated_at = NOW()
		WHERE id = $3
	`
	_, err := r.DB.Exec(ctx, query, available, deliverable, id)
	return err
}

// CountByStatus returns DC counts grouped by status (warehouse dashboard)
func (r *DCRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.DB.Query(ctx, `SELECT status, COUNT(*) FROM dcs GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}
