package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"crm-backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LeadRepository struct {
	DB *pgxpool.Pool
}

func NewLeadRepository(db *pgxpool.Pool) *LeadRepository {
	return &LeadRepository{DB: db}
}

// CreateTx inserts a lead inside an existing transaction
func (r *LeadRepository) CreateTx(ctx context.Context, tx pgx.Tx, lead *models.Lead) error {
	products, err := json.Marshal(lead.Products)
	if err != nil {
		return fmt.Errorf("failed to encode products: %w", err)
	}

	query := `
		INSERT INTO leads (school_name, school_code, contact_person, contact_mobile,
		                   email, zone, pincode, area, city, state, products,
		                   assigned_to, status, priority, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at, updated_at
	`
	return tx.QueryRow(ctx, query,
		lead.SchoolName, lead.SchoolCode, lead.ContactPerson, lead.ContactMobile,
		lead.Email, lead.Zone, lead.Pincode, lead.Area, lead.City, lead.State,
		products, lead.AssignedTo, lead.Status, lead.Priority, lead.CreatedBy,
	).Scan(&lead.ID, &lead.CreatedAt, &lead.UpdatedAt)
}

const leadSelect = `
	SELECT l.id, l.school_name, l.school_code, l.contact_person, l.contact_mobile,
	       l.email, l.zone, l.pincode, l.area, l.city, l.state, l.products,
	       l.assigned_to, l.status, l.priority, l.created_by,
	       l.created_at, l.updated_at, u.name AS assigned_to_name, d.id AS dc_id
	FROM leads l
	JOIN users u ON l.assigned_to = u.id
	LEFT JOIN dcs d ON d.lead_id = l.id
`

func scanLead(row interface{ Scan(...any) error }) (*models.Lead, error) {
	lead := &models.Lead{}
	var products []byte
	err := row.Scan(
		&lead.ID, &lead.SchoolName, &lead.SchoolCode, &lead.ContactPerson, &lead.ContactMobile,
		&lead.Email, &lead.Zone, &lead.Pincode, &lead.Area, &lead.City, &lead.State, &products,
		&lead.AssignedTo, &lead.Status, &lead.Priority, &lead.CreatedBy,
		&lead.CreatedAt, &lead.UpdatedAt, &lead.AssignedToName, &lead.DCID,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(products, &lead.Products); err != nil {
		return nil, fmt.Errorf("failed to decode products for lead %d: %w", lead.ID, err)
	}
	return lead, nil
}

// Get retrieves a lead by ID
func (r *LeadRepository) Get(ctx context.Context, id int) (*models.Lead, error) {
	return scanLead(r.DB.QueryRow(ctx, leadSelect+` WHERE l.id = $1`, id))
}

// List retrieves leads, optionally filtered by status, zone and executive
func (r *LeadRepository) List(ctx context.Context, status, zone string, assignedTo int) ([]*models.Lead, error) {
	query := leadSelect + ` WHERE 1=1`
	args := []any{}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND l.status = $%d", len(args))
	}
	if zone != "" {
		args = append(args, zone)
		query += fmt.Sprintf(" AND l.zone = $%d", len(args))
	}
	if assignedTo != 0 {
		args = append(args, assignedTo)
		query += fmt.Sprintf(" AND l.assigned_to = $%d", len(args))
	}
	query += " ORDER BY l.created_at DESC"

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []*models.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

// Update modifies a lead's mutable fields
func (r *LeadRepository) Update(ctx context.Context, id int, req *models.UpdateLeadRequest) error {
	query := `
		UPDATE leads
		SET contact_person = COALESCE(NULLIF($1, ''), contact_person),
		    contact_mobile = COALESCE(NULLIF($2, ''), contact_mobile),
		    status = COALESCE(NULLIF($3, ''), status),
		    priority = COALESCE(NULLIF($4, ''), priority),
		    assigned_to = CASE WHEN $5 > 0 THEN $5 ELSE assigned_to END,
		    updated_at = NOW()
		WHERE id = $6
	`
	_, err := r.DB.Exec(ctx, query, req.ContactPerson, req.ContactMobile, req.Status, req.Priority, req.AssignedTo, id)
	return err
}

// CountDuplicateMobile checks whether a lead already exists for a mobile
// number (backs the dashboard's duplicate-mobile lookup).
func (r *LeadRepository) CountDuplicateMobile(ctx context.Context, mobile string) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM leads WHERE contact_mobile = $1`, mobile).Scan(&count)
	return count, err
}
