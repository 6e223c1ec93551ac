package repositories

import (
	"context"

	"crm-backend/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SystemSettingRepository struct {
	DB *pgxpool.Pool
}

func NewSystemSettingRepository(db *pgxpool.Pool) *SystemSettingRepository {
	return &SystemSettingRepository{DB: db}
}

func (r *SystemSettingRepository) List(ctx context.Context) ([]*models.SystemSetting, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, setting_key, setting_value, description, updated_at
		FROM system_settings ORDER BY setting_key
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var settings []*models.SystemSetting
	for rows.Next() {
		s := &models.SystemSetting{}
		if err := rows.Scan(&s.ID, &s.SettingKey, &s.SettingValue, &s.Description, &s.UpdatedAt); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

func (r *SystemSettingRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.DB.QueryRow(ctx, `SELECT setting_value FROM system_settings WHERE setting_key = $1`, key).Scan(&value)
	return value, err
}

// GetBool reads a flag setting; missing or malformed values read as false
func (r *SystemSettingRepository) GetBool(ctx context.Context, key string) bool {
	value, err := r.Get(ctx, key)
	if err != nil {
		return false
	}
	return value == "true" || value == "1"
}

func (r *SystemSettingRepository) Set(ctx context.Context, key, value string) error {
	_, err := r.DB.Exec(ctx, `
		UPDATE system_settings SET setting_value = $1, updated_at = NOW() WHERE setting_key = $2
	`, value, key)
	return err
}
