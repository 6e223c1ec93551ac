package services

import (
	"context"
	"errors"
	"fmt"

	"crm-backend/internal/models"
	"crm-backend/internal/repositories"
)

// WarehouseService covers stock levels and the return lifecycle. DC queue
// reads live on DCService; this service owns the physical inventory side.
type WarehouseService struct {
	StockRepo  *repositories.StockRepository
	ReturnRepo *repositories.StockReturnRepository
	AuditRepo  *repositories.AuditLogRepository
}

func NewWarehouseService(stockRepo *repositories.StockRepository, returnRepo *repositories.StockReturnRepository, auditRepo *repositories.AuditLogRepository) *WarehouseService {
	return &WarehouseService{
		StockRepo:  stockRepo,
		ReturnRepo: returnRepo,
		AuditRepo:  auditRepo,
	}
}

// Stock lists current warehouse levels
func (s *WarehouseService) Stock(ctx context.Context) ([]*models.StockItem, error) {
	return s.StockRepo.List(ctx)
}

// AdjustStock applies a manual stock-in or correction.
func (s *WarehouseService) AdjustStock(ctx context.Context, req *models.AdjustStockRequest, actorID int) (*models.StockItem, error) {
	if req.ProductName == "" {
		return nil, errors.New("product name is required")
	}
	if req.Delta == 0 {
		return nil, errors.New("delta cannot be zero")
	}

	item, err := s.StockRepo.Adjust(ctx, req.ProductName, req.Delta)
	if err != nil {
		return nil, fmt.Errorf("stock adjustment failed: %w", err)
	}

	s.AuditRepo.Log(ctx, actorID, "UPDATE", "stock", &item.ID,
		fmt.Sprintf("adjusted %s by %+d (%s)", req.ProductName, req.Delta, req.Reason), "")
	return item, nil
}

// CreateReturn files a return request for goods coming back from a school.
func (s *WarehouseService) CreateReturn(ctx context.Context, req *models.CreateStockReturnRequest, creatorID int) (*models.StockReturn, error) {
	if req.SchoolName == "" || req.ProductName == "" {
		return nil, errors.New("school name and product name are required")
	}
	if req.Quantity <= 0 {
		return nil, errors.New("quantity must be positive")
	}

	sr := &models.StockReturn{
		DCID:        req.DCID,
		SchoolName:  req.SchoolName,
		ProductName: req.ProductName,
		Quantity:    req.Quantity,
		Reason:      req.Reason,
		Status:      models.StockReturnRequested,
		CreatedBy:   creatorID,
	}
	if err := s.ReturnRepo.Create(ctx, sr); err != nil {
		return nil, err
	}

	s.AuditRepo.Log(ctx, creatorID, "CREATE", "stock_return", &sr.ID,
		fmt.Sprintf("filed return of %d x %s from %s", sr.Quantity, sr.ProductName, sr.SchoolName), "")
	return sr, nil
}

// ListReturns retrieves returns, optionally by status
func (s *WarehouseService) ListReturns(ctx context.Context, status string) ([]*models.StockReturn, error) {
	return s.ReturnRepo.List(ctx, status)
}

// AdvanceReturn moves a return forward: requested -> received -> restocked.
// Restocking puts the quantity back into warehouse stock.
func (s *WarehouseService) AdvanceReturn(ctx context.Context, id int, actorID int) (*models.StockReturn, error) {
	sr, err := s.ReturnRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var next string
	switch sr.Status {
	case models.StockReturnRequested:
		next = models.StockReturnReceived
	case models.StockReturnReceived:
		next = models.StockReturnRestocked
	default:
		return nil, fmt.Errorf("return #%d is already %s", id, sr.Status)
	}

	if next == models.StockReturnRestocked {
		if _, err := s.StockRepo.Adjust(ctx, sr.ProductName, sr.Quantity); err != nil {
			return nil, fmt.Errorf("failed to restock %s: %w", sr.ProductName, err)
		}
	}
	if err := s.ReturnRepo.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}

	s.AuditRepo.Log(ctx, actorID, "TRANSITION", "stock_return", &id,
		fmt.Sprintf("return #%d: %s -> %s", id, sr.Status, next), "")
	return s.ReturnRepo.Get(ctx, id)
}
