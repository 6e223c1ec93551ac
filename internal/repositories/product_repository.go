package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"crm-backend/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductRepository struct {
	DB *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{DB: db}
}

func marshalLists(p *models.Product) (levels, subjects, specs []byte, err error) {
	if levels, err = json.Marshal(p.ProductLevels); err != nil {
		return
	}
	if subjects, err = json.Marshal(p.Subjects); err != nil {
		return
	}
	specs, err = json.Marshal(p.Specs)
	return
}

func scanProduct(row interface{ Scan(...any) error }) (*models.Product, error) {
	p := &models.Product{}
	var levels, subjects, specs []byte
	err := row.Scan(&p.ID, &p.ProductName, &levels, &subjects, &specs,
		&p.UnitPrice, &p.ProdStatus, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(levels, &p.ProductLevels); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(subjects, &p.Subjects); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(specs, &p.Specs); err != nil {
		return nil, err
	}
	return p, nil
}

// Create inserts a catalog product
func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	levels, subjects, specs, err := marshalLists(p)
	if err != nil {
		return fmt.Errorf("failed to encode product lists: %w", err)
	}
	query := `
		INSERT INTO products (product_name, product_levels, subjects, specs, unit_price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, prod_status, created_at, updated_at
	`
	return r.DB.QueryRow(ctx, query, p.ProductName, levels, subjects, specs, p.UnitPrice).
		Scan(&p.ID, &p.ProdStatus, &p.CreatedAt, &p.UpdatedAt)
}

// Get retrieves a product by ID
func (r *ProductRepository) Get(ctx context.Context, id int) (*models.Product, error) {
	return scanProduct(r.DB.QueryRow(ctx, `
		SELECT id, product_name, product_levels, subjects, specs, unit_price,
		       prod_status, created_at, updated_at
		FROM products WHERE id = $1
	`, id))
}

// List retrieves the catalog; availableOnly limits to prod_status = 1
func (r *ProductRepository) List(ctx context.Context, availableOnly bool) ([]*models.Product, error) {
	query := `
		SELECT id, product_name, product_levels, subjects, specs, unit_price,
		       prod_status, created_at, updated_at
		FROM products`
	if availableOnly {
		query += ` WHERE prod_status = 1`
	}
	query += ` ORDER BY product_name`

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// Update modifies levels, subjects, specs, price and availability
func (r *ProductRepository) Update(ctx context.Context, id int, req *models.UpdateProductRequest) error {
	p := &models.Product{ProductLevels: req.ProductLevels, Subjects: req.Subjects, Specs: req.Specs}
	levels, subjects, specs, err := marshalLists(p)
	if err != nil {
		return fmt.Errorf("failed to encode product lists: %w", err)
	}
	query := `
		UPDATE products
		SET product_levels = $1, subjects = $2, specs = $3,
		    unit_price = COALESCE($4, unit_price),
		    prod_status = COALESCE($5, prod_status),
		    updated_at = NOW()
		WHERE id = $6
	`
	_, err = r.DB.Exec(ctx, query, levels, subjects, specs, req.UnitPrice, req.ProdStatus, id)
	return err
}
