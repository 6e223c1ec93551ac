package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"time"

	"crm-backend/internal/cache"
	"crm-backend/internal/models"
	"crm-backend/internal/repositories"
)

// TrainingService schedules trainer sessions. Training and service
// visits share one table and one code path, split by Kind.
type TrainingService struct {
	TrainingRepo *repositories.TrainingRepository
	TrainerRepo  *repositories.TrainerRepository
	AuditRepo    *repositories.AuditLogRepository
}

func NewTrainingService(trainingRepo *repositories.TrainingRepository, trainerRepo *repositories.TrainerRepository, auditRepo *repositories.AuditLogRepository) *TrainingService {
	return &TrainingService{
		TrainingRepo: trainingRepo,
		TrainerRepo:  trainerRepo,
		AuditRepo:    auditRepo,
	}
}

// Create schedules a session after checking the trainer is active.
func (s *TrainingService) Create(ctx context.Context, req *models.CreateTrainingRequest, creatorID int) (*models.Training, error) {
	if req.SchoolName == "" || req.Subject == "" {
		return nil, errors.New("school name and subject are required")
	}
	kind := req.Kind
	if kind == "" {
		kind = models.SessionKindTraining
	}
	if kind != models.SessionKindTraining && kind != models.SessionKindService {
		return nil, fmt.Errorf("unknown session kind '%s'", kind)
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, errors.New("date must be YYYY-MM-DD")
	}

	trainer, err := s.TrainerRepo.Get(ctx, req.TrainerID)
	if err != nil {
		return nil, errors.New("trainer not found")
	}
	if !trainer.IsActive {
		return nil, fmt.Errorf("trainer %s is not active", trainer.Name)
	}

	session := &models.Training{
		Kind:       kind,
		SchoolCode: req.SchoolCode,
		SchoolName: req.SchoolName,
		Subject:    req.Subject,
		TrainerID:  req.TrainerID,
		EmployeeID: req.EmployeeID,
		Date:       date,
		Status:     models.TrainingStatusScheduled,
		Notes:      req.Notes,
	}
	if err := s.TrainingRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	cache.InvalidateStats(ctx)
	s.AuditRepo.Log(ctx, creatorID, "CREATE", kind, &session.ID,
		fmt.Sprintf("scheduled %s session at %s (%s)", kind, session.SchoolName, session.Subject), "")
	return session, nil
}

func (s *TrainingService) Get(ctx context.Context, id int) (*models.Training, error) {
	return s.TrainingRepo.Get(ctx, id)
}

func (s *TrainingService) List(ctx context.Context, kind, status string, trainerID int) ([]*models.Training, error) {
	return s.TrainingRepo.List(ctx, kind, status, trainerID)
}

// Update changes a session's status, date or notes.
func (s *TrainingService) Update(ctx context.Context, id int, req *models.UpdateTrainingRequest, actorID int) (*models.Training, error) {
	if req.Status != "" {
		switch req.Status {
		case models.TrainingStatusScheduled, models.TrainingStatusCompleted, models.TrainingStatusCancelled:
		default:
			return nil, fmt.Errorf("invalid session status '%s'", req.Status)
		}
	}

	var date *time.Time
	if req.Date != "" {
		d, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return nil, errors.New("date must be YYYY-MM-DD")
		}
		date = &d
	}

	if err := s.TrainingRepo.Update(ctx, id, req.Status, date, req.Notes); err != nil {
		return nil, err
	}

	cache.InvalidateStats(ctx)
	s.AuditRepo.Log(ctx, actorID, "UPDATE", "training", &id, fmt.Sprintf("updated session #%d", id), "")
	return s.TrainingRepo.Get(ctx, id)
}

// Stats aggregates session counts per kind, cached for a short window.
func (s *TrainingService) Stats(ctx context.Context, kind string) (*models.TrainingStats, error) {
	key := cache.TrainingStatsKey
	if kind == models.SessionKindService {
		key = cache.ServiceStatsKey
	}

	var cached models.TrainingStats
	if cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	stats, err := s.TrainingRepo.Stats(ctx, kind)
	if err != nil {
		return nil, err
	}
	cache.SetJSON(ctx, key, stats, cache.StatsTTL)
	return stats, nil
}

// BuildStatsCSV renders the stats aggregate as CSV for download.
func (s *TrainingService) BuildStatsCSV(ctx context.Context, kind string) ([]byte, error) {
	stats, err := s.Stats(ctx, kind)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{"Metric", "Value"})
	w.Write([]string{"Total", strconv.Itoa(stats.Total)})
	w.Write([]string{"Scheduled", strconv.Itoa(stats.Scheduled)})
	w.Write([]string{"Completed", strconv.Itoa(stats.Completed)})
	w.Write([]string{"Cancelled", strconv.Itoa(stats.Cancelled)})
	for subject, n := range stats.BySubject {
		w.Write([]string{"Subject: " + subject, strconv.Itoa(n)})
	}
	for trainer, n := range stats.ByTrainer {
		w.Write([]string{"Trainer: " + trainer, strconv.Itoa(n)})
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}
