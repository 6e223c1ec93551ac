package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"crm-backend/internal/models"
	"crm-backend/internal/repositories"
)

// LeaveService files and reviews leave applications. Managers decide for
// their own reports; admins decide for anyone.
type LeaveService struct {
	LeaveRepo *repositories.LeaveRepository
	UserRepo  *repositories.UserRepository
	AuditRepo *repositories.AuditLogRepository
	Notifier  *NotificationService
}

func NewLeaveService(leaveRepo *repositories.LeaveRepository, userRepo *repositories.UserRepository, auditRepo *repositories.AuditLogRepository, notifier *NotificationService) *LeaveService {
	return &LeaveService{
		LeaveRepo: leaveRepo,
		UserRepo:  userRepo,
		AuditRepo: auditRepo,
		Notifier:  notifier,
	}
}

// Create files a leave application for the calling employee.
func (s *LeaveService) Create(ctx context.Context, req *models.CreateLeaveRequest, employeeID int) (*models.LeaveRequest, error) {
	from, err := time.Parse("2006-01-02", req.FromDate)
	if err != nil {
		return nil, errors.New("from date must be YYYY-MM-DD")
	}
	to, err := time.Parse("2006-01-02", req.ToDate)
	if err != nil {
		return nil, errors.New("to date must be YYYY-MM-DD")
	}
	if to.Before(from) {
		return nil, errors.New("to date cannot be before from date")
	}
	if req.Reason == "" {
		return nil, errors.New("reason is required")
	}

	leave := &models.LeaveRequest{
		EmployeeID: employeeID,
		FromDate:   from,
		ToDate:     to,
		Reason:     req.Reason,
	}
	if err := s.LeaveRepo.Create(ctx, leave); err != nil {
		return nil, err
	}

	s.AuditRepo.Log(ctx, employeeID, "CREATE", "leave", &leave.ID,
		fmt.Sprintf("applied for leave %s to %s", req.FromDate, req.ToDate), "")
	return leave, nil
}

// ListForEmployee retrieves the caller's own leave history
func (s *LeaveService) ListForEmployee(ctx context.Context, employeeID int) ([]*models.LeaveRequest, error) {
	return s.LeaveRepo.ListForEmployee(ctx, employeeID)
}

// ListForManager retrieves leave requests from a manager's reports
func (s *LeaveService) ListForManager(ctx context.Context, managerID int, status string) ([]*models.LeaveRequest, error) {
	return s.LeaveRepo.ListForManager(ctx, managerID, status)
}

// Review decides a pending leave request.
func (s *LeaveService) Review(ctx context.Context, id int, req *models.ReviewLeaveRequest, reviewerID int, reviewerRole string) (*models.LeaveRequest, error) {
	if req.Status != "Approved" && req.Status != "Rejected" {
		return nil, fmt.Errorf("decision must be Approved or Rejected")
	}

	leave, err := s.LeaveRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if leave.Status != "Pending" {
		return nil, fmt.Errorf("leave request already %s", leave.Status)
	}

	if reviewerRole == models.RoleManager {
		employee, err := s.UserRepo.Get(ctx, leave.EmployeeID)
		if err != nil || employee.ManagerID == nil || *employee.ManagerID != reviewerID {
			return nil, errors.New("leave request was not filed by one of your reports")
		}
	}

	if err := s.LeaveRepo.Review(ctx, id, req.Status, req.Notes, reviewerID); err != nil {
		return nil, err
	}

	updated, err := s.LeaveRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.Notifier != nil {
		s.Notifier.NotifyLeaveDecision(ctx, updated)
	}
	s.AuditRepo.Log(ctx, reviewerID, "REVIEW", "leave", &id,
		fmt.Sprintf("leave #%d %s", id, req.Status), "")
	return updated, nil
}
