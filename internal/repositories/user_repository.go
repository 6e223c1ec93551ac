package repositories

import (
	"context"
	"fmt"

	"crm-backend/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	DB *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

const userColumns = `id, name, email, phone, role, zone, cluster, manager_id,
	password_hash, is_active, totp_enabled, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.Phone, &user.Role,
		&user.Zone, &user.Cluster, &user.ManagerID, &user.PasswordHash,
		&user.IsActive, &user.TOTPEnabled, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Create inserts a new user and fills in generated fields
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (name, email, phone, role, zone, cluster, manager_id, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, is_active, created_at, updated_at
	`
	return r.DB.QueryRow(ctx, query,
		user.Name, user.Email, user.Phone, user.Role,
		user.Zone, user.Cluster, user.ManagerID, user.PasswordHash,
	).Scan(&user.ID, &user.IsActive, &user.CreatedAt, &user.UpdatedAt)
}

// Get retrieves a user by ID
func (r *UserRepository) Get(ctx context.Context, id int) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.DB.QueryRow(ctx, query, id))
}

// GetByEmail retrieves a user by email (for login)
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.DB.QueryRow(ctx, query, email))
}

// List retrieves all users, optionally filtered by role and zone
func (r *UserRepository) List(ctx context.Context, role, zone string) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE 1=1`
	args := []any{}
	if role != "" {
		args = append(args, role)
		query += fmt.Sprintf(" AND role = $%d", len(args))
	}
	if zone != "" {
		args = append(args, zone)
		query += fmt.Sprintf(" AND zone = $%d", len(args))
	}
	query += " ORDER BY name"

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// ListByManager retrieves the executives reporting to a manager
func (r *UserRepository) ListByManager(ctx context.Context, managerID int) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE manager_id = $1 ORDER BY name`
	rows, err := r.DB.Query(ctx, query, managerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// Update modifies a user's profile fields
func (r *UserRepository) Update(ctx context.Context, id int, req *models.UpdateUserRequest) error {
	query := `
		UPDATE users
		SET name = $1, phone = $2, role = $3, zone = $4, cluster = $5,
		    manager_id = $6, updated_at = NOW()
		WHERE id = $7
	`
	_, err := r.DB.Exec(ctx, query, req.Name, req.Phone, req.Role, req.Zone, req.Cluster, req.ManagerID, id)
	return err
}

// SetActive toggles account suspension
func (r *UserRepository) SetActive(ctx context.Context, id int, active bool) error {
	_, err := r.DB.Exec(ctx, `UPDATE users SET is_active = $1, updated_at = NOW() WHERE id = $2`, active, id)
	return err
}

// SetTOTPSecret stores a generated TOTP secret (not yet enabled)
func (r *UserRepository) SetTOTPSecret(ctx context.Context, id int, secret string) error {
	_, err := r.DB.Exec(ctx, `UPDATE users SET totp_secret = $1, updated_at = NOW() WHERE id = $2`, secret, id)
	return err
}

// GetTOTPSecret returns the stored TOTP secret for a user
func (r *UserRepository) GetTOTPSecret(ctx context.Context, id int) (string, error) {
	var secret *string
	err := r.DB.QueryRow(ctx, `SELECT totp_secret FROM users WHERE id = $1`, id).Scan(&secret)
	if err != nil {
		return "", err
	}
	if secret == nil {
		return "", nil
	}
	return *secret, nil
}

// EnableTOTP marks the second factor as active
func (r *UserRepository) EnableTOTP(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `UPDATE users SET totp_enabled = TRUE, updated_at = NOW() WHERE id = $1`, id)
	return err
}
