package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"crm-backend/internal/metrics"
	"crm-backend/internal/models"
	"crm-backend/internal/repositories"
	"crm-backend/internal/storage"
)

// DCService owns the delivery challan lifecycle. Every transition goes
// through ApplyAction so the status machine is enforced in exactly one
// place, regardless of which endpoint asked for it.
type DCService struct {
	DCRepo       *repositories.DCRepository
	LeadRepo     *repositories.LeadRepository
	StockRepo    *repositories.StockRepository
	AuditRepo    *repositories.AuditLogRepository
	Storage      *storage.Client
	Notifier     *NotificationService
}

func NewDCService(dcRepo *repositories.DCRepository, leadRepo *repositories.LeadRepository, stockRepo *repositories.StockRepository, auditRepo *repositories.AuditLogRepository, store *storage.Client) *DCService {
	return &DCService{
		DCRepo:    dcRepo,
		LeadRepo:  leadRepo,
		StockRepo: stockRepo,
		AuditRepo: auditRepo,
		Storage:   store,
	}
}

// SetNotifier wires the SMS notifier (optional, set after construction)
func (s *DCService) SetNotifier(n *NotificationService) {
	s.Notifier = n
}

// Roles allowed to request each action. Sales actions belong to the
// executive side, warehouse actions to the coordinator side; admins can
// do everything.
var dcActionRoles = map[string][]string{
	models.DCActionSubmitPO:        {models.RoleSuperAdmin, models.RoleAdmin, models.RoleManager, models.RoleExecutive},
	models.DCActionQueue:           {models.RoleSuperAdmin, models.RoleAdmin, models.RoleManager, models.RoleCoordinator},
	models.DCActionStartProcessing: {models.RoleSuperAdmin, models.RoleAdmin, models.RoleCoordinator},
	models.DCActionHold:            {models.RoleSuperAdmin, models.RoleAdmin, models.RoleCoordinator},
	models.DCActionRelease:         {models.RoleSuperAdmin, models.RoleAdmin, models.RoleCoordinator},
	models.DCActionComplete:        {models.RoleSuperAdmin, models.RoleAdmin, models.RoleCoordinator},
}

func roleAllowed(role string, allowed []string) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// Get retrieves a DC by ID
func (s *DCService) Get(ctx context.Context, id int) (*models.DC, error) {
	return s.DCRepo.Get(ctx, id)
}

// List retrieves DCs with optional status/employee filters
func (s *DCService) List(ctx context.Context, status string, employeeID int) ([]*models.DC, error) {
	return s.DCRepo.List(ctx, status, employeeID)
}

// PendingQueue is the warehouse intake: queued DCs waiting to be picked up.
func (s *DCService) PendingQueue(ctx context.Context) ([]*models.DC, error) {
	return s.DCRepo.ListByStatuses(ctx, []string{models.DCStatusPendingDC})
}

// ProcessingQueue is everything the warehouse currently has in hand.
func (s *DCService) ProcessingQueue(ctx context.Context) ([]*models.DC, error) {
	return s.DCRepo.ListByStatuses(ctx, []string{models.DCStatusWarehouseProcessing, models.DCStatusHold})
}

// ListedQueue is the display queue of processing DCs with surplus stock.
func (s *DCService) ListedQueue(ctx context.Context) ([]*models.DC, error) {
	return s.DCRepo.ListListed(ctx)
}

// HoldQueue lists DCs parked on hold, with their reasons.
func (s *DCService) HoldQueue(ctx context.Context) ([]*models.DC, error) {
	return s.DCRepo.ListByStatuses(ctx, []string{models.DCStatusHold})
}

// StatusCounts backs the warehouse dashboard tiles
func (s *DCService) StatusCounts(ctx context.Context) (map[string]int, error) {
	return s.DCRepo.CountByStatus(ctx)
}

// SubmitPO attaches the purchase order photo and moves the DC to
// po_submitted. The photo may be a data URL; it is uploaded to object
// storage and only the URL is persisted.
func (s *DCService) SubmitPO(ctx context.Context, dcID int, req *models.SubmitPORequest, actorID int, actorRole string) (*models.DC, error) {
	if req.POPhoto == "" {
		return nil, errors.New("PO photo is required")
	}
	dc, next, err := s.resolve(ctx, dcID, models.DCActionSubmitPO, actorRole)
	if err != nil {
		return nil, err
	}

	photoURL, err := s.Storage.UploadPOPhoto(ctx, dcID, req.POPhoto)
	if err != nil {
		metrics.DCTransitionsTotal.WithLabelValues(models.DCActionSubmitPO, "error").Inc()
		return nil, fmt.Errorf("failed to store PO photo: %w", err)
	}

	var notes *string
	if req.DeliveryNotes != "" {
		notes = &req.DeliveryNotes
	}
	if err := s.DCRepo.SetPOPhoto(ctx, dcID, photoURL, notes, next); err != nil {
		metrics.DCTransitionsTotal.WithLabelValues(models.DCActionSubmitPO, "error").Inc()
		return nil, err
	}

	s.recordTransition(ctx, dc, models.DCActionSubmitPO, next, actorID)
	return s.DCRepo.Get(ctx, dcID)
}

// ApplyAction applies queue/start_processing/hold/release/complete.
// submit_po has its own entry point because it carries an upload.
func (s *DCService) ApplyAction(ctx context.Context, dcID int, action string, holdReason string, actorID int, actorRole string) (*models.DC, error) {
	if action == models.DCActionHold && holdReason == "" {
		return nil, errors.New("hold reason is required")
	}

	dc, next, err := s.resolve(ctx, dcID, action, actorRole)
	if err != nil {
		return nil, err
	}

	// Completion is only offered from the listed queue; re-check the
	// eligibility rule when the request lands rather than trusting the
	// client's view of the queue.
	if action == models.DCActionComplete {
		if err := completeAllowed(dc); err != nil {
			metrics.DCTransitionsTotal.WithLabelValues(action, "rejected").Inc()
			return nil, err
		}
	}

	// Stock bookkeeping follows the transition, inside the same request.
	switch action {
	case models.DCActionStartProcessing:
		if err := s.reserveStock(ctx, dc); err != nil {
			metrics.DCTransitionsTotal.WithLabelValues(action, "error").Inc()
			return nil, err
		}
	case models.DCActionHold:
		s.releaseStock(ctx, dc)
	case models.DCActionRelease:
		// Stock was released on hold; it will be re-reserved when
		// processing restarts.
	}

	var reason *string
	if action == models.DCActionHold {
		reason = &holdReason
	}
	if action == models.DCActionComplete {
		if err := s.complete(ctx, dc, next); err != nil {
			metrics.DCTransitionsTotal.WithLabelValues(action, "error").Inc()
			return nil, err
		}
	} else if err := s.DCRepo.UpdateStatus(ctx, dcID, next, reason); err != nil {
		metrics.DCTransitionsTotal.WithLabelValues(action, "error").Inc()
		return nil, err
	}

	s.recordTransition(ctx, dc, action, next, actorID)
	return s.DCRepo.Get(ctx, dcID)
}

// completeAllowed guards the complete action beyond the transition table:
// a DC may only complete while it still belongs in the listed queue.
func completeAllowed(dc *models.DC) error {
	if !dc.ListedEligible() {
		return fmt.Errorf("cannot complete DC #%d: available quantity must exceed deliverable quantity", dc.ID)
	}
	return nil
}

// UpdateQuantities sets the warehouse fulfillment numbers on a processing DC
func (s *DCService) UpdateQuantities(ctx context.Context, dcID int, req *models.UpdateDCQuantitiesRequest, actorID int) (*models.DC, error) {
	dc, err := s.DCRepo.Get(ctx, dcID)
	if err != nil {
		return nil, err
	}
	if dc.Status != models.DCStatusWarehouseProcessing && dc.Status != models.DCStatusPendingDC {
		return nil, fmt.Errorf("cannot update quantities on a DC in status '%s'", dc.Status)
	}
	if req.AvailableQuantity != nil && *req.AvailableQuantity < 0 {
		return nil, errors.New("available quantity cannot be negative")
	}
	if req.DeliverableQuantity != nil && *req.DeliverableQuantity < 0 {
		return nil, errors.New("deliverable quantity cannot be negative")
	}

	if err := s.DCRepo.UpdateQuantities(ctx, dcID, req.AvailableQuantity, req.DeliverableQuantity); err != nil {
		return nil, err
	}

	s.AuditRepo.Log(ctx, actorID, "UPDATE", "dc", &dcID,
		fmt.Sprintf("updated fulfillment quantities for DC #%d", dcID), "")
	return s.DCRepo.Get(ctx, dcID)
}

// resolve loads the DC, checks the role gate, and computes the next status.
func (s *DCService) resolve(ctx context.Context, dcID int, action, actorRole string) (*models.DC, string, error) {
	allowed, ok := dcActionRoles[action]
	if !ok {
		return nil, "", fmt.Errorf("unknown DC action: %s", action)
	}
	if !roleAllowed(actorRole, allowed) {
		return nil, "", fmt.Errorf("role '%s' may not %s a DC", actorRole, action)
	}

	dc, err := s.DCRepo.Get(ctx, dcID)
	if err != nil {
		return nil, "", err
	}

	next, err := models.NextDCStatus(dc.Status, action)
	if err != nil {
		metrics.DCTransitionsTotal.WithLabelValues(action, "rejected").Inc()
		return nil, "", err
	}
	return dc, next, nil
}

// reserveStock holds warehouse stock for every product on the DC's lead.
// Partial failures roll back the lines reserved so far.
func (s *DCService) reserveStock(ctx context.Context, dc *models.DC) error {
	lead, err := s.LeadRepo.Get(ctx, dc.LeadID)
	if err != nil {
		return err
	}

	reserved := make([]models.LeadProduct, 0, len(lead.Products))
	for _, p := range lead.Products {
		if err := s.StockRepo.Reserve(ctx, p.ProductName, p.Quantity); err != nil {
			for _, r := range reserved {
				s.StockRepo.ReleaseReservation(ctx, r.ProductName, r.Quantity)
			}
			return fmt.Errorf("%s: %w", p.ProductName, err)
		}
		reserved = append(reserved, p)
	}
	return nil
}

func (s *DCService) releaseStock(ctx context.Context, dc *models.DC) {
	lead, err := s.LeadRepo.Get(ctx, dc.LeadID)
	if err != nil {
		log.Printf("[DCService] Failed to load lead %d for stock release: %v", dc.LeadID, err)
		return
	}
	for _, p := range lead.Products {
		if err := s.StockRepo.ReleaseReservation(ctx, p.ProductName, p.Quantity); err != nil {
			log.Printf("[DCService] Failed to release %d x %s: %v", p.Quantity, p.ProductName, err)
		}
	}
}

// complete burns the stock reservation, closes the lead and flips the DC
// to completed in a single transaction, so a failed consume never leaves
// a completed DC holding a live reservation.
func (s *DCService) complete(ctx context.Context, dc *models.DC, next string) error {
	lead, err := s.LeadRepo.Get(ctx, dc.LeadID)
	if err != nil {
		return err
	}

	tx, err := s.DCRepo.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, p := range lead.Products {
		if err := s.StockRepo.ConsumeReservationTx(ctx, tx, p.ProductName, p.Quantity); err != nil {
			return fmt.Errorf("%s: %w", p.ProductName, err)
		}
	}
	if err := s.DCRepo.UpdateStatusTx(ctx, tx, dc.ID, next, nil); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `UPDATE leads SET status = 'completed', updated_at = NOW() WHERE id = $1`, lead.ID); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}

	if s.Notifier != nil {
		s.Notifier.NotifyDCCompleted(ctx, dc, lead)
	}
	return nil
}

func (s *DCService) recordTransition(ctx context.Context, dc *models.DC, action, next string, actorID int) {
	metrics.DCTransitionsTotal.WithLabelValues(action, "applied").Inc()
	s.AuditRepo.Log(ctx, actorID, "TRANSITION", "dc", &dc.ID,
		fmt.Sprintf("DC #%d: %s (%s -> %s)", dc.ID, action, dc.Status, next), "")
	log.Printf("[DCService] DC %d %s: %s -> %s", dc.ID, action, dc.Status, next)
}
