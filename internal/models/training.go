package models

import "time"

const (
	TrainingStatusScheduled = "Scheduled"
	TrainingStatusCompleted = "Completed"
	TrainingStatusCancelled = "Cancelled"
)

// Training is a scheduled trainer session at a school. Service visits
// share the same shape with Kind = "service".
type Training struct {
	ID         int       `json:"id"`
	Kind       string    `json:"kind"` // training or service
	SchoolCode string    `json:"school_code"`
	SchoolName string    `json:"school_name"`
	Subject    string    `json:"subject"`
	TrainerID  int       `json:"trainer_id"`
	EmployeeID int       `json:"employee_id"`
	Date       time.Time `json:"date"`
	Status     string    `json:"status"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	TrainerName  string `json:"trainer_name,omitempty"`
	EmployeeName string `json:"employee_name,omitempty"`
}

const (
	SessionKindTraining = "training"
	SessionKindService  = "service"
)

type CreateTrainingRequest struct {
	Kind       string `json:"kind"`
	SchoolCode string `json:"school_code"`
	SchoolName string `json:"school_name"`
	Subject    string `json:"subject"`
	TrainerID  int    `json:"trainer_id"`
	EmployeeID int    `json:"employee_id"`
	Date       string `json:"date"` // YYYY-MM-DD
	Notes      string `json:"notes"`
}

type UpdateTrainingRequest struct {
	Status string `json:"status"`
	Date   string `json:"date"`
	Notes  string `json:"notes"`
}

// TrainingStats is the aggregate payload behind /training/stats and
// /services/stats.
type TrainingStats struct {
	Total     int            `json:"total"`
	Scheduled int            `json:"scheduled"`
	Completed int            `json:"completed"`
	Cancelled int            `json:"cancelled"`
	BySubject map[string]int `json:"by_subject"`
	ByTrainer map[string]int `json:"by_trainer"`
}

type Trainer struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Subjects  []string  `json:"subjects"`
	Zone      string    `json:"zone"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateTrainerRequest struct {
	Name     string   `json:"name"`
	Phone    string   `json:"phone"`
	Email    string   `json:"email"`
	Subjects []string `json:"subjects"`
	Zone     string   `json:"zone"`
}
