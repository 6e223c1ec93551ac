package repositories

import (
	"context"
	"fmt"
	"time"

	"crm-backend/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SampleRequestRepository persists demo kit requests.
type SampleRequestRepository struct {
	DB *pgxpool.Pool
}

func NewSampleRequestRepository(db *pgxpool.Pool) *SampleRequestRepository {
	return &SampleRequestRepository{DB: db}
}

func (r *SampleRequestRepository) Create(ctx context.Context, s *models.SampleRequest) error {
	query := `
		INSERT INTO sample_requests (school_name, contact_name, mobile, product_name, quantity, status, requested_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	return r.DB.QueryRow(ctx, query,
		s.SchoolName, s.ContactName, s.Mobile, s.ProductName, s.Quantity, s.Status, s.RequestedBy,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

func (r *SampleRequestRepository) List(ctx context.Context, status string) ([]*models.SampleRequest, error) {
	query := `
		SELECT id, school_name, contact_name, mobile, product_name, quantity,
		       status, requested_by, created_at, updated_at
		FROM sample_requests WHERE 1=1`
	args := []any{}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []*models.SampleRequest
	for rows.Next() {
		s := &models.SampleRequest{}
		if err := rows.Scan(&s.ID, &s.SchoolName, &s.ContactName, &s.Mobile, &s.ProductName,
			&s.Quantity, &s.Status, &s.RequestedBy, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		requests = append(requests, s)
	}
	return requests, rows.Err()
}

func (r *SampleRequestRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	_, err := r.DB.Exec(ctx, `UPDATE sample_requests SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	return err
}

// ContactQueryRepository persists inbound enquiries.
type ContactQueryRepository struct {
	DB *pgxpool.Pool
}

func NewContactQueryRepository(db *pgxpool.Pool) *ContactQueryRepository {
	return &ContactQueryRepository{DB: db}
}

func (r *ContactQueryRepository) Create(ctx context.Context, q *models.ContactQuery) error {
	query := `
		INSERT INTO contact_queries (name, mobile, email, school_name, message, status)
		VALUES ($1, $2, $3, $4, $5, 'open')
		RETURNING id, status, created_at
	`
	return r.DB.QueryRow(ctx, query, q.Name, q.Mobile, q.Email, q.SchoolName, q.Message).
		Scan(&q.ID, &q.Status, &q.CreatedAt)
}

func (r *ContactQueryRepository) List(ctx context.Context, status string) ([]*models.ContactQuery, error) {
	query := `
		SELECT id, name, mobile, email, school_name, message, status,
		       assigned_to, resolved_at, created_at
		FROM contact_queries WHERE 1=1`
	args := []any{}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var queries []*models.ContactQuery
	for rows.Next() {
		q := &models.ContactQuery{}
		if err := rows.Scan(&q.ID, &q.Name, &q.Mobile, &q.Email, &q.SchoolName, &q.Message,
			&q.Status, &q.AssignedTo, &q.ResolvedAt, &q.CreatedAt); err != nil {
			return nil, err
		}
		queries = append(queries, q)
	}
	return queries, rows.Err()
}

func (r *ContactQueryRepository) Assign(ctx context.Context, id, userID int) error {
	_, err := r.DB.Exec(ctx, `UPDATE contact_queries SET assigned_to = $1, status = 'contacted' WHERE id = $2`, userID, id)
	return err
}

func (r *ContactQueryRepository) Close(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `UPDATE contact_queries SET status = 'closed', resolved_at = NOW() WHERE id = $1`, id)
	return err
}

// LeaveRepository persists leave applications.
type LeaveRepository struct {
	DB *pgxpool.Pool
}

func NewLeaveRepository(db *pgxpool.Pool) *LeaveRepository {
	return &LeaveRepository{DB: db}
}

func (r *LeaveRepository) Create(ctx context.Context, l *models.LeaveRequest) error {
	query := `
		INSERT INTO leave_requests (employee_id, from_date, to_date, reason)
		VALUES ($1, $2, $3, $4)
		RETURNING id, status, created_at
	`
	return r.DB.QueryRow(ctx, query, l.EmployeeID, l.FromDate, l.ToDate, l.Reason).
		Scan(&l.ID, &l.Status, &l.CreatedAt)
}

func (r *LeaveRepository) Get(ctx context.Context, id int) (*models.LeaveRequest, error) {
	l := &models.LeaveRequest{}
	err := r.DB.QueryRow(ctx, `
		SELECT lr.id, lr.employee_id, lr.from_date, lr.to_date, lr.reason, lr.status,
		       lr.reviewed_by, lr.reviewed_at, lr.review_notes, lr.created_at, u.name
		FROM leave_requests lr
		JOIN users u ON lr.employee_id = u.id
		WHERE lr.id = $1
	`, id).Scan(&l.ID, &l.EmployeeID, &l.FromDate, &l.ToDate, &l.Reason, &l.Status,
		&l.ReviewedBy, &l.ReviewedAt, &l.ReviewNotes, &l.CreatedAt, &l.EmployeeName)
	if err != nil {
		return nil, err
	}
	return l, nil
}

// ListForManager retrieves leave requests from a manager's reports
func (r *LeaveRepository) ListForManager(ctx context.Context, managerID int, status string) ([]*models.LeaveRequest, error) {
	query := `
		SELECT lr.id, lr.employee_id, lr.from_date, lr.to_date, lr.reason, lr.status,
		       lr.reviewed_by, lr.reviewed_at, lr.review_notes, lr.created_at, u.name
		FROM leave_requests lr
		JOIN users u ON lr.employee_id = u.id
		WHERE u.manager_id = $1`
	args := []any{managerID}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND lr.status = $%d", len(args))
	}
	query += " ORDER BY lr.created_at DESC"

	return r.queryMany(ctx, query, args...)
}

// ListForEmployee retrieves an employee's own leave history
func (r *LeaveRepository) ListForEmployee(ctx context.Context, employeeID int) ([]*models.LeaveRequest, error) {
	query := `
		SELECT lr.id, lr.employee_id, lr.from_date, lr.to_date, lr.reason, lr.status,
		       lr.reviewed_by, lr.reviewed_at, lr.review_notes, lr.created_at, u.name
		FROM leave_requests lr
		JOIN users u ON lr.employee_id = u.id
		WHERE lr.employee_id = $1
		ORDER BY lr.created_at DESC`
	return r.queryMany(ctx, query, employeeID)
}

func (r *LeaveRepository) queryMany(ctx context.Context, query string, args ...any) ([]*models.LeaveRequest, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leaves []*models.LeaveRequest
	for rows.Next() {
		l := &models.LeaveRequest{}
		if err := rows.Scan(&l.ID, &l.EmployeeID, &l.FromDate, &l.ToDate, &l.Reason, &l.Status,
			&l.ReviewedBy, &l.ReviewedAt, &l.ReviewNotes, &l.CreatedAt, &l.EmployeeName); err != nil {
			return nil, err
		}
		leaves = append(leaves, l)
	}
	return leaves, rows.Err()
}

func (r *LeaveRepository) Review(ctx context.Context, id int, status, notes string, reviewerID int) error {
	query := `
		UPDATE leave_requests
		SET status = $1, review_notes = NULLIF($2, ''), reviewed_by = $3, reviewed_at = NOW()
		WHERE id = $4
	`
	_, err := r.DB.Exec(ctx, query, status, notes, reviewerID, id)
	return err
}

// TrackingRepository persists employee field activity.
type TrackingRepository struct {
	DB *pgxpool.Pool
}

func NewTrackingRepository(db *pgxpool.Pool) *TrackingRepository {
	return &TrackingRepository{DB: db}
}

func (r *TrackingRepository) Create(ctx context.Context, e *models.TrackingEvent) error {
	query := `
		INSERT INTO tracking_events (employee_id, activity, school_name, latitude, longitude, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, recorded_at
	`
	return r.DB.QueryRow(ctx, query,
		e.EmployeeID, e.Activity, e.SchoolName, e.Latitude, e.Longitude, e.Notes,
	).Scan(&e.ID, &e.RecordedAt)
}

// List retrieves tracking events in a date range, optionally per employee
func (r *TrackingRepository) List(ctx context.Context, employeeID int, from, to time.Time) ([]*models.TrackingEvent, error) {
	query := `
		SELECT te.id, te.employee_id, te.activity, te.school_name, te.latitude,
		       te.longitude, te.notes, te.recorded_at, u.name
		FROM tracking_events te
		JOIN users u ON te.employee_id = u.id
		WHERE te.recorded_at >= $1 AND te.recorded_at < $2`
	args := []any{from, to}
	if employeeID != 0 {
		args = append(args, employeeID)
		query += fmt.Sprintf(" AND te.employee_id = $%d", len(args))
	}
	query += " ORDER BY te.recorded_at DESC"

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*models.TrackingEvent
	for rows.Next() {
		e := &models.TrackingEvent{}
		if err := rows.Scan(&e.ID, &e.EmployeeID, &e.Activity, &e.SchoolName, &e.Latitude,
			&e.Longitude, &e.Notes, &e.RecordedAt, &e.EmployeeName); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
