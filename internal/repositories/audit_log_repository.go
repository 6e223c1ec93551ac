package repositories

import (
	"context"
	"fmt"
	"log"

	"crm-backend/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AuditLogRepository struct {
	DB *pgxpool.Pool
}

func NewAuditLogRepository(db *pgxpool.Pool) *AuditLogRepository {
	return &AuditLogRepository{DB: db}
}

// Log writes an audit entry. Failures are logged, never propagated: an
// audit miss must not fail the business operation that triggered it.
func (r *AuditLogRepository) Log(ctx context.Context, actorID int, actionType, targetType string, targetID *int, description, ip string) {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO audit_logs (actor_user_id, action_type, target_type, target_id, description, ip_address)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
	`, actorID, actionType, targetType, targetID, description, ip)
	if err != nil {
		log.Printf("[AuditLog] failed to record %s %s: %v", actionType, targetType, err)
	}
}

// List retrieves recent entries, newest first, optionally filtered by target type
func (r *AuditLogRepository) List(ctx context.Context, targetType string, limit int) ([]*models.AuditLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	query := `
		SELECT id, actor_user_id, action_type, target_type, target_id, description, ip_address, created_at
		FROM audit_logs WHERE 1=1`
	args := []any{}
	if targetType != "" {
		args = append(args, targetType)
		query += fmt.Sprintf(" AND target_type = $%d", len(args))
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*models.AuditLog
	for rows.Next() {
		entry := &models.AuditLog{}
		if err := rows.Scan(&entry.ID, &entry.ActorUserID, &entry.ActionType, &entry.TargetType,
			&entry.TargetID, &entry.Description, &entry.IPAddress, &entry.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, entry)
	}
	return logs, rows.Err()
}
