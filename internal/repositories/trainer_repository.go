package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"crm-backend/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TrainerRepository struct {
	DB *pgxpool.Pool
}

func NewTrainerRepository(db *pgxpool.Pool) *TrainerRepository {
	return &TrainerRepository{DB: db}
}

// Create inserts a trainer
func (r *TrainerRepository) Create(ctx context.Context, t *models.Trainer) error {
	subjects, err := json.Marshal(t.Subjects)
	if err != nil {
		return fmt.Errorf("failed to encode subjects: %w", err)
	}
	query := `
		INSERT INTO trainers (name, phone, email, subjects, zone)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, is_active, created_at
	`
	return r.DB.QueryRow(ctx, query, t.Name, t.Phone, t.Email, subjects, t.Zone).
		Scan(&t.ID, &t.IsActive, &t.CreatedAt)
}

// Get retrieves a trainer by ID
func (r *TrainerRepository) Get(ctx context.Context, id int) (*models.Trainer, error) {
	t := &models.Trainer{}
	var subjects []byte
	err := r.DB.QueryRow(ctx, `
		SELECT id, name, phone, email, subjects, zone, is_active, created_at
		FROM trainers WHERE id = $1
	`, id).Scan(&t.ID, &t.Name, &t.Phone, &t.Email, &subjects, &t.Zone, &t.IsActive, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(subjects, &t.Subjects); err != nil {
		return nil, err
	}
	return t, nil
}

// List retrieves all trainers, active first
func (r *TrainerRepository) List(ctx context.Context) ([]*models.Trainer, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, name, phone, email, subjects, zone, is_active, created_at
		FROM trainers ORDER BY is_active DESC, name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trainers []*models.Trainer
	for rows.Next() {
		t := &models.Trainer{}
		var subjects []byte
		if err := rows.Scan(&t.ID, &t.Name, &t.Phone, &t.Email, &subjects, &t.Zone, &t.IsActive, &t.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(subjects, &t.Subjects); err != nil {
			return nil, err
		}
		trainers = append(trainers, t)
	}
	return trainers, rows.Err()
}

// SetActive toggles trainer availability
func (r *TrainerRepository) SetActive(ctx context.Context, id int, active bool) error {
	_, err := r.DB.Exec(ctx, `UPDATE trainers SET is_active = $1 WHERE id = $2`, active, id)
	return err
}
