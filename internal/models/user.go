package models

import "time"

// Roles. Every role check happens server-side through middleware;
// the dashboard's own role gating is cosmetic.
const (
	RoleSuperAdmin     = "super_admin"
	RoleAdmin          = "admin"
	RoleFinanceManager = "finance_manager"
	RoleManager        = "manager"
	RoleExecutive      = "executive"
	RoleCoordinator    = "coordinator"
	RoleTrainer        = "trainer"
)

// User is an employee account. Employees, executives, managers and
// finance staff are all rows here, distinguished by role.
type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Role         string    `json:"role"`
	Zone         string    `json:"zone"`
	Cluster      string    `json:"cluster"`
	ManagerID    *int      `json:"manager_id,omitempty"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	TOTPEnabled  bool      `json:"totp_enabled"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CreateUserRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	Zone      string `json:"zone"`
	Cluster   string `json:"cluster"`
	ManagerID *int   `json:"manager_id"`
}

type UpdateUserRequest struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
	Zone      string `json:"zone"`
	Cluster   string `json:"cluster"`
	ManagerID *int   `json:"manager_id"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token        string `json:"token,omitempty"`
	User         *User  `json:"user,omitempty"`
	TOTPRequired bool   `json:"totp_required,omitempty"`
	TempToken    string `json:"temp_token,omitempty"`
}

// TrackingEvent is a point in an employee's field activity trail.
type TrackingEvent struct {
	ID         int       `json:"id"`
	EmployeeID int       `json:"employee_id"`
	Activity   string    `json:"activity"` // visit, call, demo, delivery
	SchoolName string    `json:"school_name"`
	Latitude   *float64  `json:"latitude,omitempty"`
	Longitude  *float64  `json:"longitude,omitempty"`
	Notes      string    `json:"notes"`
	RecordedAt time.Time `json:"recorded_at"`

	EmployeeName string `json:"employee_name,omitempty"`
}

type CreateTrackingEventRequest struct {
	Activity   string   `json:"activity"`
	SchoolName string   `json:"school_name"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
	Notes      string   `json:"notes"`
}
