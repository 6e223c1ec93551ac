package repositories

import (
	"context"
	"fmt"

	"crm-backend/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StockReturnRepository struct {
	DB *pgxpool.Pool
}

func NewStockReturnRepository(db *pgxpool.Pool) *StockReturnRepository {
	return &StockReturnRepository{DB: db}
}

// Create records a return request
func (r *StockReturnRepository) Create(ctx context.Context, sr *models.StockReturn) error {
	query := `
		INSERT INTO stock_returns (dc_id, school_name, product_name, quantity, reason, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	return r.DB.QueryRow(ctx, query,
		sr.DCID, sr.SchoolName, sr.ProductName, sr.Quantity, sr.Reason, sr.Status, sr.CreatedBy,
	).Scan(&sr.ID, &sr.CreatedAt, &sr.UpdatedAt)
}

// Get retrieves a return by ID
func (r *StockReturnRepository) Get(ctx context.Context, id int) (*models.StockReturn, error) {
	sr := &models.StockReturn{}
	err := r.DB.QueryRow(ctx, `
		SELECT id, dc_id, school_name, product_name, quantity, reason, status,
		       created_by, created_at, updated_at
		FROM stock_returns WHERE id = $1
	`, id).Scan(&sr.ID, &sr.DCID, &sr.SchoolName, &sr.ProductName, &sr.Quantity,
		&sr.Reason, &sr.Status, &sr.CreatedBy, &sr.CreatedAt, &sr.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return sr, nil
}

// List retrieves returns, optionally filtered by status
func (r *StockReturnRepository) List(ctx context.Context, status string) ([]*models.StockReturn, error) {
	query := `
		SELECT id, dc_id, school_name, product_name, quantity, reason, status,
		       created_by, created_at, updated_at
		FROM stock_returns WHERE 1=1`
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

	var returns []*models.StockReturn
	for rows.Next() {
		sr := &models.StockReturn{}
		if err := rows.Scan(&sr.ID, &sr.DCID, &sr.SchoolName, &sr.ProductName, &sr.Quantity,
			&sr.Reason, &sr.Status, &sr.CreatedBy, &sr.CreatedAt, &sr.UpdatedAt); err != nil {
			return nil, err
		}
		returns = append(returns, sr)
	}
	return returns, rows.Err()
}

// UpdateStatus advances a return through requested → received → restocked
func (r *StockReturnRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	_, err := r.DB.Exec(ctx, `UPDATE stock_returns SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	return err
}
