package repositories

import (
	"context"
	"errors"

	"crm-backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StockRepository struct {
	DB *pgxpool.Pool
}

func NewStockRepository(db *pgxpool.Pool) *StockRepository {
	return &StockRepository{DB: db}
}

// List retrieves warehouse stock levels
func (r *StockRepository) List(ctx context.Context) ([]*models.StockItem, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, product_name, quantity, reserved_quantity, updated_at
		FROM stock_items ORDER BY product_name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.StockItem
	for rows.Next() {
		item := &models.StockItem{}
		if err := rows.Scan(&item.ID, &item.ProductName, &item.Quantity, &item.ReservedQuantity, &item.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Adjust changes the on-hand quantity for a product, creating the row on
// first stock-in. Negative adjustments below zero are rejected by the
// CHECK constraint and surfaced as an error.
func (r *StockRepository) Adjust(ctx context.Context, productName string, delta int) (*models.StockItem, error) {
	item := &models.StockItem{}
	err := r.DB.QueryRow(ctx, `
		INSERT INTO stock_items (product_name, quantity)
		VALUES ($1, GREATEST($2, 0))
		ON CONFLICT (product_name)
		DO UPDATE SET quantity = stock_items.quantity + $2, updated_at = NOW()
		RETURNING id, product_name, quantity, reserved_quantity, updated_at
	`, productName, delta).Scan(&item.ID, &item.ProductName, &item.Quantity, &item.ReservedQuantity, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Reserve moves quantity from on-hand to reserved when a DC starts
// warehouse processing.
func (r *StockRepository) Reserve(ctx context.Context, productName string, qty int) error {
	tag, err := r.DB.Exec(ctx, `
		UPDATE stock_items
		SET quantity = quantity - $1, reserved_quantity = reserved_quantity + $1, updated_at = NOW()
		WHERE product_name = $2 AND quantity >= $1
	`, qty, productName)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("insufficient stock to reserve")
	}
	return nil
}

// ReleaseReservation returns reserved quantity to on-hand stock
func (r *StockRepository) ReleaseReservation(ctx context.Context, productName string, qty int) error {
	_, err := r.DB.Exec(ctx, `
		UPDATE stock_items
		SET quantity = quantity + $1,
		    reserved_quantity = GREATEST(reserved_quantity - $1, 0),
		    updated_at = NOW()
		WHERE product_name = $2
	`, qty, productName)
	return err
}

// ConsumeReservationTx burns reserved quantity on DC completion
func (r *StockRepository) ConsumeReservationTx(ctx context.Context, tx pgx.Tx, productName string, qty int) error {
	_, err := tx.Exec(ctx, `
		UPDATE stock_items
		SET reserved_quantity = GREATEST(reserved_quantity - $1, 0), updated_at = NOW()
		WHERE product_name = $2
	`, qty, productName)
	return err
}
