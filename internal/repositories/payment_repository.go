package repositories

import (
	"context"
	"fmt"

	"crm-backend/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PaymentRepository struct {
	DB *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

const paymentSelect = `
	SELECT p.id, p.lead_id, p.school_name, p.amount, p.payment_method, p.status,
	       p.financial_year, p.created_by, p.upi_id, p.cheque_number, p.bank_name,
	       p.transaction_id, p.order_id, p.remarks, p.reviewed_by, p.reviewed_at,
	       p.created_at, p.updated_at, u.name AS created_by_name
	FROM payments p
	JOIN users u ON p.created_by = u.id
`

func scanPayment(row interface{ Scan(...any) error }) (*models.Payment, error) {
	p := &models.Payment{}
	err := row.Scan(
		&p.ID, &p.LeadID, &p.SchoolName, &p.Amount, &p.PaymentMethod, &p.Status,
		&p.FinancialYear, &p.CreatedBy, &p.UpiID, &p.ChequeNumber, &p.BankName,
		&p.TransactionID, &p.OrderID, &p.Remarks, &p.ReviewedBy, &p.ReviewedAt,
		&p.CreatedAt, &p.UpdatedAt, &p.CreatedByName,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Create inserts a payment record with status Pending
func (r *PaymentRepository) Create(ctx context.Context, p *models.Payment) error {
	query := `
		INSERT INTO payments (lead_id, school_name, amount, payment_method, status,
		                      financial_year, created_by, upi_id, cheque_number,
		                      bank_name, transaction_id, order_id, remarks)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at
	`
	return r.DB.QueryRow(ctx, query,
		p.LeadID, p.SchoolName, p.Amount, p.PaymentMethod, p.Status,
		p.FinancialYear, p.CreatedBy, p.UpiID, p.ChequeNumber,
		p.BankName, p.TransactionID, p.OrderID, p.Remarks,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// Get retrieves a payment by ID
func (r *PaymentRepository) Get(ctx context.Context, id int) (*models.Payment, error) {
	return scanPayment(r.DB.QueryRow(ctx, paymentSelect+` WHERE p.id = $1`, id))
}

// List retrieves payments filtered by status, financial year and creator
func (r *PaymentRepository) List(ctx context.Context, status, financialYear string, createdBy int) ([]*models.Payment, error) {
	query := paymentSelect + ` WHERE 1=1`
	args := []any{}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND p.status = $%d", len(args))
	}
	if financialYear != "" {
		args = append(args, financialYear)
		query += fmt.Sprintf(" AND p.financial_year = $%d", len(args))
	}
	if createdBy != 0 {
		args = append(args, createdBy)
		query += fmt.Sprintf(" AND p.created_by = $%d", len(args))
	}
	query += " ORDER BY p.created_at DESC"

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// Review applies a finance decision to a pending payment
func (r *PaymentRepository) Review(ctx context.Context, id int, status, remarks string, reviewerID int) error {
	query := `
		UPDATE payments
		SET status = $1,
		    remarks = COALESCE(NULLIF($2, ''), remarks),
		    reviewed_by = $3, reviewed_at = NOW(), updated_at = NOW()
		WHERE id = $4
	`
	_, err := r.DB.Exec(ctx, query, status, remarks, reviewerID, id)
	return err
}

// SumByStatus aggregates payment amounts per status for the sales report
func (r *PaymentRepository) SumByStatus(ctx context.Context, financialYear string) (map[string]float64, error) {
	query := `SELECT status, COALESCE(SUM(amount), 0) FROM payments WHERE financial_year = $1 GROUP BY status`
	rows, err := r.DB.Query(ctx, query, financialYear)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sums := make(map[string]float64)
	for rows.Next() {
		var status string
		var sum float64
		if err := rows.Scan(&status, &sum); err != nil {
			return nil, err
		}
		sums[status] = sum
	}
	return sums, rows.Err()
}
