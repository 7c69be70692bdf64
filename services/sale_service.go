package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"catalog-service/models"
	"catalog-service/repository"
	"catalog-service/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SaleService defines the interface for sale business logic, including the
// product-assignment flow.
type SaleService interface {
	CreateSale(ctx context.Context, req *models.CreateSaleRequest) (*models.ActionResult, *ServiceError)
	UpdateSale(ctx context.Context, id uuid.UUID, req *models.UpdateSaleRequest) (*models.ActionResult, *ServiceError)
	DeleteSale(ctx context.Context, id uuid.UUID) (*models.ActionResult, *ServiceError)
	ListSales(ctx context.Context) ([]models.SaleResponse, *ServiceError)
	// AddProductsToSale assigns the given products to the sale. Products
	// already in the sale are skipped and reported; if every requested
	// product is already assigned the call fails and nothing is written.
	// A non-nil salePrice applies uniformly to every new row; otherwise
	// each product's regular price is used.
	AddProductsToSale(ctx context.Context, saleID uuid.UUID, productIDs []uuid.UUID, salePrice *float64) (*models.ActionResult, *ServiceError)
	RemoveProductFromSale(ctx context.Context, saleID, productID uuid.UUID) (*models.ActionResult, *ServiceError)
	ProductsInSale(ctx context.Context, saleID uuid.UUID) ([]models.SaleProduct, *ServiceError)
}

type saleServiceImpl struct {
	repo     repository.SaleRepository
	products repository.ProductRepository
	logger   *zap.Logger
}

// NewSaleService creates a new SaleService.
func NewSaleService(repo repository.SaleRepository, products repository.ProductRepository, logger *zap.Logger) SaleService {
	return &saleServiceImpl{repo: repo, products: products, logger: logger}
}

func validateSale(name string, req *models.CreateSaleRequest) *ServiceError {
	if strings.TrimSpace(name) == "" {
		return validationError("Sale name is required")
	}
	if req.StartDate.IsZero() {
		return validationError("Start date is required")
	}
	if req.EndDate.IsZero() {
		return validationError("End date is required")
	}
	if !req.EndDate.After(req.StartDate) {
		return validationError("End date must be after start date")
	}
	return nil
}

func (s *saleServiceImpl) CreateSale(ctx context.Context, req *models.CreateSaleRequest) (*models.ActionResult, *ServiceError) {
	if svcErr := validateSale(req.Name, req); svcErr != nil {
		return nil, svcErr
	}

	sale := &models.Sale{
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	if err := s.repo.Create(ctx, sale); err != nil {
		s.logger.Error("Failed to create sale", zap.String("name", req.Name), zap.Error(err))
		return nil, storeError("Failed to create sale", err)
	}

	s.logger.Info("Sale created", zap.String("id", sale.ID.String()), zap.String("name", sale.Name))
	return &models.ActionResult{Success: true, Message: "Sale created successfully"}, nil
}

func (s *saleServiceImpl) UpdateSale(ctx context.Context, id uuid.UUID, req *models.UpdateSaleRequest) (*models.ActionResult, *ServiceError) {
	svcErr := validateSale(req.Name, &models.CreateSaleRequest{
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if svcErr != nil {
		return nil, svcErr
	}

	updates := map[string]interface{}{
		"name":       req.Name,
		"start_date": req.StartDate,
		"end_date":   req.EndDate,
	}
	if err := s.repo.Update(ctx, id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: "Sale not found"}
		}
		s.logger.Error("Failed to update sale", zap.String("id", id.String()), zap.Error(err))
		return nil, storeError("Failed to update sale", err)
	}

	return &models.ActionResult{Success: true, Message: "Sale updated successfully"}, nil
}

// DeleteSale removes every join row first and the sale row second, keeping
// the referential invariant at each step.
func (s *saleServiceImpl) DeleteSale(ctx context.Context, id uuid.UUID) (*models.ActionResult, *ServiceError) {
	if err := s.repo.RemoveAllSaleProducts(ctx, id); err != nil {
		s.logger.Error("Failed to delete sale products", zap.String("id", id.String()), zap.Error(err))
		return nil, storeError("Failed to delete sale products", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: "Sale not found"}
		}
		s.logger.Error("Failed to delete sale", zap.String("id", id.String()), zap.Error(err))
		return nil, storeError("Failed to delete sale", err)
	}

	s.logger.Info("Sale deleted", zap.String("id", id.String()))
	return &models.ActionResult{Success: true, Message: "Sale deleted successfully"}, nil
}

func (s *saleServiceImpl) ListSales(ctx context.Context) ([]models.SaleResponse, *ServiceError) {
	sales, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to fetch sales", zap.Error(err))
		return nil, storeError("Failed to fetch sales", err)
	}

	responses := make([]models.SaleResponse, 0, len(sales))
	for _, sale := range sales {
		responses = append(responses, models.SaleResponse{
			Sale:         sale,
			Status:       utils.GetSaleStatus(sale.StartDate, sale.EndDate),
			ProductCount: len(sale.SaleProducts),
			DateRange:    utils.FormatDateRange(sale.StartDate, sale.EndDate),
		})
	}
	return responses, nil
}

func (s *saleServiceImpl) AddProductsToSale(ctx context.Context, saleID uuid.UUID, productIDs []uuid.UUID, salePrice *float64) (*models.ActionResult, *ServiceError) {
	if len(productIDs) == 0 {
		return nil, validationError("No products selected")
	}

	existing, err := s.repo.FindAssignedProductIDs(ctx, saleID, productIDs)
	if err != nil {
		s.logger.Error("Failed to check existing products", zap.String("sale_id", saleID.String()), zap.Error(err))
		return nil, storeError("Failed to check existing products", err)
	}

	assigned := make(map[uuid.UUID]bool, len(existing))
	for _, id := range existing {
		assigned[id] = true
	}
	// A product appears at most once per sale, so repeated ids within one
	// request collapse to a single row.
	seen := make(map[uuid.UUID]bool, len(productIDs))
	var toAdd []uuid.UUID
	for _, id := range productIDs {
		if assigned[id] || seen[id] {
			continue
		}
		seen[id] = true
		toAdd = append(toAdd, id)
	}

	if len(toAdd) == 0 {
		message := "This product is already in the sale"
		if len(existing) > 1 {
			message = fmt.Sprintf("%d products are already in the sale", len(existing))
		}
		return nil, &ServiceError{StatusCode: 409, Message: message}
	}

	rows := make([]models.SaleProduct, 0, len(toAdd))
	if salePrice != nil {
		for _, id := range toAdd {
			rows = append(rows, models.SaleProduct{SaleID: saleID, ProductID: id, SalePrice: *salePrice})
		}
	} else {
		prices, err := s.products.FindPricesByIDs(ctx, toAdd)
		if err != nil {
			s.logger.Error("Failed to fetch product prices", zap.String("sale_id", saleID.String()), zap.Error(err))
			return nil, storeError("Failed to fetch product prices", err)
		}
		for _, id := range toAdd {
			price, ok := prices[id]
			if !ok {
				return nil, &ServiceError{StatusCode: 404, Message: "One or more products could not be found"}
			}
			rows = append(rows, models.SaleProduct{SaleID: saleID, ProductID: id, SalePrice: price})
		}
	}

	if err := s.repo.AddSaleProducts(ctx, rows); err != nil {
		s.logger.Error("Failed to add products to sale", zap.String("sale_id", saleID.String()), zap.Error(err))
		return nil, storeError("Failed to add products to sale", err)
	}

	message := fmt.Sprintf("%d products added to sale successfully", len(toAdd))
	if len(toAdd) == 1 {
		message = "1 product added to sale successfully"
	}
	switch {
	case len(existing) == 1:
		message += ". Note: 1 product was already in the sale and was skipped"
	case len(existing) > 1:
		message += fmt.Sprintf(". Note: %d products were already in the sale and were skipped", len(existing))
	}

	s.logger.Info("Products added to sale",
		zap.String("sale_id", saleID.String()),
		zap.Int("added", len(toAdd)),
		zap.Int("skipped", len(existing)),
	)
	return &models.ActionResult{Success: true, Message: message}, nil
}

func (s *saleServiceImpl) RemoveProductFromSale(ctx context.Context, saleID, productID uuid.UUID) (*models.ActionResult, *ServiceError) {
	if err := s.repo.RemoveSaleProduct(ctx, saleID, productID); err != nil {
		s.logger.Error("Failed to remove product from sale",
			zap.String("sale_id", saleID.String()),
			zap.String("product_id", productID.String()),
			zap.Error(err),
		)
		return nil, storeError("Failed to remove product from sale", err)
	}
	return &models.ActionResult{Success: true, Message: "Product removed from sale successfully"}, nil
}

func (s *saleServiceImpl) ProductsInSale(ctx context.Context, saleID uuid.UUID) ([]models.SaleProduct, *ServiceError) {
	rows, err := s.repo.FindSaleProducts(ctx, saleID)
	if err != nil {
		s.logger.Error("Failed to fetch products in sale", zap.String("sale_id", saleID.String()), zap.Error(err))
		return nil, storeError("Failed to fetch products in sale", err)
	}
	return rows, nil
}
