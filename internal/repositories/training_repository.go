package repositories

import (
	"context"
	"fmt"
	"time"

	"crm-backend/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TrainingRepository struct {
	DB *pgxpool.Pool
}

func NewTrainingRepository(db *pgxpool.Pool) *TrainingRepository {
	return &TrainingRepository{DB: db}
}

const trainingSelect = `
	SELECT s.id, s.kind, s.school_code, s.school_name, s.subject, s.trainer_id,
	       s.employee_id, s.date, s.status, s.notes, s.created_at, s.updated_at,
	       t.name AS trainer_name, u.name AS employee_name
	FROM trainings s
	JOIN trainers t ON s.trainer_id = t.id
	JOIN users u ON s.employee_id = u.id
`

func scanTraining(row interface{ Scan(...any) error }) (*models.Training, error) {
	s := &models.Training{}
	err := row.Scan(
		&s.ID, &s.Kind, &s.SchoolCode, &s.SchoolName, &s.Subject, &s.TrainerID,
		&s.EmployeeID, &s.Date, &s.Status, &s.Notes, &s.CreatedAt, &s.UpdatedAt,
		&s.TrainerName, &s.EmployeeName,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Create schedules a training or service session
func (r *TrainingRepository) Create(ctx context.Context, s *models.Training) error {
	query := `
		INSERT INTO trainings (kind, school_code, school_name, subject, trainer_id,
		                       employee_id, date, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`
	return r.DB.QueryRow(ctx, query,
		s.Kind, s.SchoolCode, s.SchoolName, s.Subject, s.TrainerID,
		s.EmployeeID, s.Date, s.Status, s.Notes,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

// Get retrieves a session by ID
func (r *TrainingRepository) Get(ctx context.Context, id int) (*models.Training, error) {
	return scanTraining(r.DB.QueryRow(ctx, trainingSelect+` WHERE s.id = $1`, id))
}

// List retrieves sessions filtered by kind, status and trainer
func (r *TrainingRepository) List(ctx context.Context, kind, status string, trainerID int) ([]*models.Training, error) {
	query := trainingSelect + ` WHERE 1=1`
	args := []any{}
	if kind != "" {
		args = append(args, kind)
		query += fmt.Sprintf(" AND s.kind = $%d", len(args))
	}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND s.status = $%d", len(args))
	}
	if trainerID != 0 {
		args = append(args, trainerID)
		query += fmt.Sprintf(" AND s.trainer_id = $%d", len(args))
	}
	query += " ORDER BY s.date DESC"

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*models.Training
	for rows.Next() {
		s, err := scanTraining(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// Update changes a session's status, date or notes
func (r *TrainingRepository) Update(ctx context.Context, id int, status string, date *time.Time, notes string) error {
	query := `
		UPDATE trainings
		SET status = COALESCE(NULLIF($1, ''), status),
		    date = COALESCE($2, date),
		    notes = COALESCE(NULLIF($3, ''), notes),
		    updated_at = NOW()
		WHERE id = $4
	`
	_, err := r.DB.Exec(ctx, query, status, date, notes, id)
	return err
}

// Stats aggregates session counts for /training/stats and /services/stats
func (r *TrainingRepository) Stats(ctx context.Context, kind string) (*models.TrainingStats, error) {
	stats := &models.TrainingStats{
		BySubject: make(map[string]int),
		ByTrainer: make(map[string]int),
	}

	rows, err := r.DB.Query(ctx, `
		SELECT s.status, s.subject, t.name, COUNT(*)
		FROM trainings s
		JOIN trainers t ON s.trainer_id = t.id
		WHERE s.kind = $1
		GROUP BY s.status, s.subject, t.name
	`, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var status, subject, trainerName string
		var count int
		if err := rows.Scan(&status, &subject, &trainerName, &count); err != nil {
			return nil, err
		}
		stats.Total += count
		switch status {
		case models.TrainingStatusScheduled:
			stats.Scheduled += count
		case models.TrainingStatusCompleted:
			stats.Completed += count
		case models.TrainingStatusCancelled:
			stats.Cancelled += count
		}
		stats.BySubject[subject] += count
		stats.ByTrainer[trainerName] += count
	}
	return stats, rows.Err()
}
