package repositories

import (
	"context"
	"fmt"

	"crm-backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ExpenseRepository struct {
	DB *pgxpool.Pool
}

func NewExpenseRepository(db *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{DB: db}
}

const expenseSelect = `
	SELECT e.id, e.employee_id, e.trainer_id, e.amount, e.category, e.description,
	       e.status, e.pending_month, e.approved_amount, e.manager_remarks,
	       e.finance_remarks, e.receipt_url, e.manager_reviewed_by,
	       e.finance_reviewed_by, e.manager_reviewed_at, e.finance_reviewed_at,
	       e.created_at, e.updated_at,
	       COALESCE(u.name, '') AS employee_name,
	       COALESCE(t.name, '') AS trainer_name
	FROM expenses e
	LEFT JOIN users u ON e.employee_id = u.id
	LEFT JOIN trainers t ON e.trainer_id = t.id
`

func scanExpense(row interface{ Scan(...any) error }) (*models.Expense, error) {
	e := &models.Expense{}
	err := row.Scan(
		&e.ID, &e.EmployeeID, &e.TrainerID, &e.Amount, &e.Category, &e.Description,
		&e.Status, &e.PendingMonth, &e.ApprovedAmount, &e.ManagerRemarks,
		&e.FinanceRemarks, &e.ReceiptURL, &e.ManagerReviewedBy,
		&e.FinanceReviewedBy, &e.ManagerReviewedAt, &e.FinanceReviewedAt,
		&e.CreatedAt, &e.UpdatedAt, &e.EmployeeName, &e.TrainerName,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Create inserts an expense with status Pending
func (r *ExpenseRepository) Create(ctx context.Context, e *models.Expense) error {
	query := `
		INSERT INTO expenses (employee_id, trainer_id, amount, category, description,
		                      status, pending_month, receipt_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`
	return r.DB.QueryRow(ctx, query,
		e.EmployeeID, e.TrainerID, e.Amount, e.Category, e.Description,
		e.Status, e.PendingMonth, e.ReceiptURL,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

// Get retrieves an expense by ID
func (r *ExpenseRepository) Get(ctx context.Context, id int) (*models.Expense, error) {
	return scanExpense(r.DB.QueryRow(ctx, expenseSelect+` WHERE e.id = $1`, id))
}

// List retrieves expenses filtered by status and employee
func (r *ExpenseRepository) List(ctx context.Context, status string, employeeID int) ([]*models.Expense, error) {
	query := expenseSelect + ` WHERE 1=1`
	args := []any{}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND e.status = $%d", len(args))
	}
	if employeeID != 0 {
		args = append(args, employeeID)
		query += fmt.Sprintf(" AND e.employee_id = $%d", len(args))
	}
	query += " ORDER BY e.created_at DESC"

	return r.queryMany(ctx, query, args...)
}

// ListManagerPending retrieves pending expenses for the executives
// reporting to a manager (the manager review queue).
func (r *ExpenseRepository) ListManagerPending(ctx context.Context, managerID int) ([]*models.Expense, error) {
	query := expenseSelect + `
		WHERE e.status = 'Pending'
		  AND e.employee_id IN (SELECT id FROM users WHERE manager_id = $1)
		ORDER BY e.created_at`
	return r.queryMany(ctx, query, managerID)
}

// ListFinancePending retrieves manager-approved expenses awaiting finance
func (r *ExpenseRepository) ListFinancePending(ctx context.Context) ([]*models.Expense, error) {
	query := expenseSelect + ` WHERE e.status = 'Manager Approved' ORDER BY e.manager_reviewed_at`
	return r.queryMany(ctx, query)
}

func (r *ExpenseRepository) queryMany(ctx context.Context, query string, args ...any) ([]*models.Expense, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// ManagerReviewTx applies one line of the batch manager decision inside a
// transaction so the whole batch commits or rolls back together. The
// status predicate makes the Pending-stage guard race-free: a row already
// reviewed by a concurrent request (or earlier in the same batch) matches
// zero rows and fails the batch.
func (r *ExpenseRepository) ManagerReviewTx(ctx context.Context, tx pgx.Tx, id int, status string, approvedAmount *float64, remarks string, reviewerID int) error {
	query := `
		UPDATE expenses
		SET status = $1, approved_amount = $2, manager_remarks = NULLIF($3, ''),
		    manager_reviewed_by = $4, manager_reviewed_at = NOW(), updated_at = NOW()
		WHERE id = $5 AND status = 'Pending'
	`
	ct, err := tx.Exec(ctx, query, status, approvedAmount, remarks, reviewerID, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("expense %d is no longer pending", id)
	}
	return nil
}

// FinanceReview finalizes a manager-approved expense
func (r *ExpenseRepository) FinanceReview(ctx context.Context, id int, status, remarks string, reviewerID int) error {
	query := `
		UPDATE expenses
		SET status = $1, finance_remarks = NULLIF($2, ''),
		    finance_reviewed_by = $3, finance_reviewed_at = NOW(), updated_at = NOW()
		WHERE id = $4
	`
	_, err := r.DB.Exec(ctx, query, status, remarks, reviewerID, id)
	return err
}
