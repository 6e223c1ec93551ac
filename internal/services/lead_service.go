package services

import (
	"context"
	"fmt"
	"log"

	"crm-backend/internal/models"
	"crm-backend/internal/repositories"
)

// LeadService creates and manages deals. Creating a lead always creates
// its delivery challan in the same transaction, so a deal can never exist
// without a challan to track it.
type LeadService struct {
	LeadRepo  *repositories.LeadRepository
	DCRepo    *repositories.DCRepository
	UserRepo  *repositories.UserRepository
	AuditRepo *repositories.AuditLogRepository
}

func NewLeadService(leadRepo *repositories.LeadRepository, dcRepo *repositories.DCRepository, userRepo *repositories.UserRepository, auditRepo *repositories.AuditLogRepository) *LeadService {
	return &LeadService{
		LeadRepo:  leadRepo,
		DCRepo:    dcRepo,
		UserRepo:  userRepo,
		AuditRepo: auditRepo,
	}
}

// Create inserts the lead and its DC atomically.
func (s *LeadService) Create(ctx context.Context, req *models.CreateLeadRequest, creatorID int) (*models.Lead, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// The assignee must be a live account
	assignee, err := s.UserRepo.Get(ctx, req.AssignedTo)
	if err != nil {
		return nil, fmt.Errorf("assigned executive not found")
	}
	if !assignee.IsActive {
		return nil, fmt.Errorf("assigned executive account is suspended")
	}

	priority := req.Priority
	if priority == "" {
		priority = "Warm"
	}

	lead := &models.Lead{
		SchoolName:    req.SchoolName,
		SchoolCode:    req.SchoolCode,
		ContactPerson: req.ContactPerson,
		ContactMobile: req.ContactMobile,
		Email:         req.Email,
		Zone:          req.Zone,
		Pincode:       req.Pincode,
		Area:          req.Area,
		City:          req.City,
		State:         req.State,
		Products:      req.Products,
		AssignedTo:    req.AssignedTo,
		Status:        models.LeadStatusPending,
		Priority:      priority,
		CreatedBy:     creatorID,
	}

	tx, err := s.LeadRepo.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := s.LeadRepo.CreateTx(ctx, tx, lead); err != nil {
		return nil, err
	}

	dc := &models.DC{
		LeadID:            lead.ID,
		EmployeeID:        req.AssignedTo,
		Status:            models.DCStatusCreated,
		RequestedQuantity: req.TotalQuantity(),
	}
	if err := s.DCRepo.CreateTx(ctx, tx, dc); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	lead.DCID = &dc.ID
	s.AuditRepo.Log(ctx, creatorID, "CREATE", "lead", &lead.ID,
		fmt.Sprintf("created deal for %s with DC #%d", lead.SchoolName, dc.ID), "")
	log.Printf("[LeadService] Created lead %d (%s) with DC %d", lead.ID, lead.SchoolName, dc.ID)
	return lead, nil
}

func (s *LeadService) Get(ctx context.Context, id int) (*models.Lead, error) {
	return s.LeadRepo.Get(ctx, id)
}

func (s *LeadService) List(ctx context.Context, status, zone string, assignedTo int) ([]*models.Lead, error) {
	return s.LeadRepo.List(ctx, status, zone, assignedTo)
}

func (s *LeadService) Update(ctx context.Context, id int, req *models.UpdateLeadRequest, actorID int) (*models.Lead, error) {
	if req.Status != "" {
		switch req.Status {
		case models.LeadStatusPending, models.LeadStatusProcessing, models.LeadStatusCompleted:
		default:
			return nil, fmt.Errorf("invalid lead status '%s'", req.Status)
		}
	}
	if err := s.LeadRepo.Update(ctx, id, req); err != nil {
		return nil, err
	}
	s.AuditRepo.Log(ctx, actorID, "UPDATE", "lead", &id, fmt.Sprintf("updated deal #%d", id), "")
	return s.LeadRepo.Get(ctx, id)
}

// CheckDuplicateMobile reports how many existing deals share a mobile number
func (s *LeadService) CheckDuplicateMobile(ctx context.Context, mobile string) (int, error) {
	return s.LeadRepo.CountDuplicateMobile(ctx, mobile)
}
