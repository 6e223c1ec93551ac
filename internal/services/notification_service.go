package services

import (
	"context"
	"fmt"
	"log"

	"crm-backend/internal/models"
	"crm-backend/internal/repositories"
	"crm-backend/internal/sms"
)

// NotificationService sends SMS notifications on completed deliveries and
// leave decisions. All sends are best-effort and gated on the
// sms_notifications_enabled system setting.
type NotificationService struct {
	Provider    sms.Provider
	UserRepo    *repositories.UserRepository
	SettingRepo *repositories.SystemSettingRepository
}

func NewNotificationService(provider sms.Provider, userRepo *repositories.UserRepository, settingRepo *repositories.SystemSettingRepository) *NotificationService {
	return &NotificationService{
		Provider:    provider,
		UserRepo:    userRepo,
		SettingRepo: settingRepo,
	}
}

func (s *NotificationService) enabled(ctx context.Context) bool {
	return s.Provider != nil && s.SettingRepo.GetBool(ctx, "sms_notifications_enabled")
}

// NotifyDCCompleted tells the school contact and the executive that a
// delivery has gone out.
func (s *NotificationService) NotifyDCCompleted(ctx context.Context, dc *models.DC, lead *models.Lead) {
	if !s.enabled(ctx) {
		return
	}

	message := fmt.Sprintf("Dear %s, your order for %s has been dispatched. DC #%d.",
		lead.ContactPerson, lead.SchoolName, dc.ID)
	go s.send(lead.ContactMobile, message)

	if executive, err := s.UserRepo.Get(ctx, dc.EmployeeID); err == nil && executive.Phone != "" {
		go s.send(executive.Phone, fmt.Sprintf("DC #%d for %s is completed.", dc.ID, lead.SchoolName))
	}
}

// NotifyLeaveDecision tells an employee their leave was approved or rejected
func (s *NotificationService) NotifyLeaveDecision(ctx context.Context, leave *models.LeaveRequest) {
	if !s.enabled(ctx) {
		return
	}
	employee, err := s.UserRepo.Get(ctx, leave.EmployeeID)
	if err != nil || employee.Phone == "" {
		return
	}
	message := fmt.Sprintf("Your leave request (%s to %s) has been %s.",
		leave.FromDate.Format("02 Jan"), leave.ToDate.Format("02 Jan"), leave.Status)
	go s.send(employee.Phone, message)
}

func (s *NotificationService) send(phone, message string) {
	if err := s.Provider.SendSMS(phone, message); err != nil {
		log.Printf("[Notification] SMS to %s failed: %v", phone, err)
	}
}
