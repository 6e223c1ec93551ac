package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"crm-backend/internal/middleware"
	"crm-backend/internal/models"
	"crm-backend/internal/repositories"
	"crm-backend/internal/services"

	"github.com/gorilla/mux"
)

// TrainingHandler serves trainings, service visits and trainers.
type TrainingHandler struct {
	Service     *services.TrainingService
	TrainerRepo *repositories.TrainerRepository
}

func NewTrainingHandler(service *services.TrainingService, trainerRepo *repositories.TrainerRepository) *TrainingHandler {
	return &TrainingHandler{Service: service, TrainerRepo: trainerRepo}
}

// createSession backs POST /api/training and POST /api/services
func (h *TrainingHandler) createSession(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateTrainingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		req.Kind = kind

		userID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "User ID not found in context", http.StatusUnauthorized)
			return
		}
		if req.EmployeeID == 0 {
			req.EmployeeID = userID
		}

		session, err := h.Service.Create(r.Context(), &req, userID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(session)
	}
}

func (h *TrainingHandler) CreateTraining(w http.ResponseWriter, r *http.Request) {
	h.createSession(models.SessionKindTraining)(w, r)
}

func (h *TrainingHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	h.createSession(models.SessionKindService)(w, r)
}

func (h *TrainingHandler) listSessions(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := r.URL.Query().Get("status")
		trainerID, _ := strconv.Atoi(r.URL.Query().Get("trainer_id"))

		sessions, err := h.Service.List(r.Context(), kind, status, trainerID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if sessions == nil {
			sessions = []*models.Training{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(sessions)
	}
}

func (h *TrainingHandler) ListTrainings(w http.ResponseWriter, r *http.Request) {
	h.listSessions(models.SessionKindTraining)(w, r)
}

func (h *TrainingHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	h.listSessions(models.SessionKindService)(w, r)
}

// Get handles GET /api/training/{id}
func (h *TrainingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	session, err := h.Service.Get(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(session)
}

// Update handles PUT /api/training/{id}
func (h *TrainingHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.UpdateTrainingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "User ID not found in context", http.StatusUnauthorized)
		return
	}

	session, err := h.Service.Update(r.Context(), id, &req, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(session)
}

// TrainingStats handles GET /api/training/stats
func (h *TrainingHandler) TrainingStats(w http.ResponseWriter, r *http.Request) {
	h.writeStats(w, r, models.SessionKindTraining)
}

// ServiceStats handles GET /api/services/stats
func (h *TrainingHandler) ServiceStats(w http.ResponseWriter, r *http.Request) {
	h.writeStats(w, r, models.SessionKindService)
}

func (h *TrainingHandler) writeStats(w http.ResponseWriter, r *http.Request, kind string) {
	stats, err := h.Service.Stats(r.Context(), kind)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

// ExportTrainingStats handles GET /api/training/stats/export
func (h *TrainingHandler) ExportTrainingStats(w http.ResponseWriter, r *http.Request) {
	h.exportStats(w, r, models.SessionKindTraining, "training_stats.csv")
}

// ExportServiceStats handles GET /api/services/stats/export
func (h *TrainingHandler) ExportServiceStats(w http.ResponseWriter, r *http.Request) {
	h.exportStats(w, r, models.SessionKindService, "service_stats.csv")
}

func (h *TrainingHandler) exportStats(w http.ResponseWriter, r *http.Request, kind, filename string) {
	data, err := h.Service.BuildStatsCSV(r.Context(), kind)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Write(data)
}

// CreateTrainer handles POST /api/trainers
func (h *TrainingHandler) CreateTrainer(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTrainerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "trainer name is required", http.StatusBadRequest)
		return
	}

	trainer := &models.Trainer{
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Subjects: req.Subjects,
		Zone:     req.Zone,
	}
	if err := h.TrainerRepo.Create(r.Context(), trainer); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(trainer)
}

// ListTrainers handles GET /api/trainers
func (h *TrainingHandler) ListTrainers(w http.ResponseWriter, r *http.Request) {
	trainers, err := h.TrainerRepo.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if trainers == nil {
		trainers = []*models.Trainer{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(trainers)
}

// SetTrainerActive handles PUT /api/trainers/{id}/active
func (h *TrainingHandler) SetTrainerActive(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req struct {
		Active bool `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.TrainerRepo.SetActive(r.Context(), id, req.Active); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"active": req.Active})
}
