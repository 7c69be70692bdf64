package services

import (
	"context"
	"errors"
	"strings"

	"catalog-service/models"
	"catalog-service/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CategoryService defines the interface for category business logic.
type CategoryService interface {
	CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.ActionResult, *ServiceError)
	UpdateCategory(ctx context.Context, id uuid.UUID, req *models.UpdateCategoryRequest) (*models.ActionResult, *ServiceError)
	DeleteCategory(ctx context.Context, id uuid.UUID) (*models.ActionResult, *ServiceError)
	ListCategories(ctx context.Context) ([]models.Category, *ServiceError)
}

type categoryServiceImpl struct {
	repo     repository.CategoryRepository
	products repository.ProductRepository
	logger   *zap.Logger
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(repo repository.CategoryRepository, products repository.ProductRepository, logger *zap.Logger) CategoryService {
	return &categoryServiceImpl{repo: repo, products: products, logger: logger}
}

func (s *categoryServiceImpl) CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.ActionResult, *ServiceError) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, validationError("Category name is required")
	}

	category := &models.Category{
		Name:      req.Name,
		BuyerName: req.BuyerName,
	}
	if err := s.repo.Create(ctx, category); err != nil {
		s.logger.Error("Failed to create category", zap.Error(err))
		return nil, storeError("Failed to create category", err)
	}

	s.logger.Info("Category created", zap.String("id", category.ID.String()), zap.String("name", category.Name))
	return &models.ActionResult{Success: true, Message: "Category created successfully"}, nil
}

func (s *categoryServiceImpl) UpdateCategory(ctx context.Context, id uuid.UUID, req *models.UpdateCategoryRequest) (*models.ActionResult, *ServiceError) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, validationError("Category name is required")
	}

	updates := map[string]interface{}{
		"name":       req.Name,
		"buyer_name": req.BuyerName,
	}
	if err := s.repo.Update(ctx, id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: "Category not found"}
		}
		s.logger.Error("Failed to update category", zap.String("id", id.String()), zap.Error(err))
		return nil, storeError("Failed to update category", err)
	}

	return &models.ActionResult{Success: true, Message: "Category updated successfully"}, nil
}

// DeleteCategory detaches any products referencing the category before
// removing it, so deletion never leaves a dangling category_id.
func (s *categoryServiceImpl) DeleteCategory(ctx context.Context, id uuid.UUID) (*models.ActionResult, *ServiceError) {
	if err := s.products.ClearCategory(ctx, id); err != nil {
		s.logger.Error("Failed to detach products from category", zap.String("id", id.String()), zap.Error(err))
		return nil, storeError("Failed to detach products from category", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: "Category not found"}
		}
		s.logger.Error("Failed to delete category", zap.String("id", id.String()), zap.Error(err))
		return nil, storeError("Failed to delete category", err)
	}

	s.logger.Info("Category deleted", zap.String("id", id.String()))
	return &models.ActionResult{Success: true, Message: "Category deleted successfully"}, nil
}

func (s *categoryServiceImpl) ListCategories(ctx context.Context) ([]models.Category, *ServiceError) {
	categories, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to fetch categories", zap.Error(err))
		return nil, storeError("Failed to fetch categories", err)
	}
	return categories, nil
}
