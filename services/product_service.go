package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"sync"
	"time"

	"catalog-service/models"
	"catalog-service/repository"
	"catalog-service/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ImageUpload is a single file submitted for upload to the image store.
type ImageUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// ProductService defines the interface for product business logic.
type ProductService interface {
	CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.ActionResult, *ServiceError)
	UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.ActionResult, *ServiceError)
	DeleteProduct(ctx context.Context, id uuid.UUID) (*models.ActionResult, *ServiceError)
	ListProducts(ctx context.Context) ([]models.Product, *ServiceError)
	// ListAvailableProducts lists products ordered by name for the
	// sale-assignment picker.
	ListAvailableProducts(ctx context.Context) ([]models.Product, *ServiceError)
	UploadImages(ctx context.Context, uploads []ImageUpload) ([]string, *ServiceError)
	DeleteImage(ctx context.Context, url string) (*models.ActionResult, *ServiceError)
}

type productServiceImpl struct {
	repo   repository.ProductRepository
	images storage.ImageStore
	logger *zap.Logger
}

// NewProductService creates a new ProductService.
func NewProductService(repo repository.ProductRepository, images storage.ImageStore, logger *zap.Logger) ProductService {
	return &productServiceImpl{repo: repo, images: images, logger: logger}
}

func validateProduct(sku, name string, regularPrice float64) *ServiceError {
	if strings.TrimSpace(sku) == "" {
		return validationError("SKU is required")
	}
	if strings.TrimSpace(name) == "" {
		return validationError("Product name is required")
	}
	if regularPrice <= 0 {
		return validationError("Regular price must be a positive number")
	}
	return nil
}

func (s *productServiceImpl) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.ActionResult, *ServiceError) {
	if svcErr := validateProduct(req.SKU, req.Name, req.RegularPrice); svcErr != nil {
		return nil, svcErr
	}

	product := &models.Product{
		SKU:          req.SKU,
		Name:         req.Name,
		Description:  req.Description,
		RegularPrice: req.RegularPrice,
		SalePrice:    req.SalePrice,
		CategoryID:   req.CategoryID,
		Images:       req.Images,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		s.logger.Error("Failed to create product", zap.String("sku", req.SKU), zap.Error(err))
		return nil, storeError("Failed to create product", err)
	}

	s.logger.Info("Product created", zap.String("id", product.ID.String()), zap.String("sku", product.SKU))
	return &models.ActionResult{Success: true, Message: "Product created successfully"}, nil
}

func (s *productServiceImpl) UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.ActionResult, *ServiceError) {
	if svcErr := validateProduct(req.SKU, req.Name, req.RegularPrice); svcErr != nil {
		return nil, svcErr
	}

	updates := map[string]interface{}{
		"sku":           req.SKU,
		"name":          req.Name,
		"description":   req.Description,
		"regular_price": req.RegularPrice,
		"sale_price":    req.SalePrice,
		"category_id":   req.CategoryID,
		"images":        req.Images,
	}
	if err := s.repo.Update(ctx, id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: "Product not found"}
		}
		s.logger.Error("Failed to update product", zap.String("id", id.String()), zap.Error(err))
		return nil, storeError("Failed to update product", err)
	}

	return &models.ActionResult{Success: true, Message: "Product updated successfully"}, nil
}

// DeleteProduct removes the product's images from storage best-effort before
// deleting the row. A storage failure is logged as a warning and never
// blocks the deletion.
func (s *productServiceImpl) DeleteProduct(ctx context.Context, id uuid.UUID) (*models.ActionResult, *ServiceError) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: "Product not found"}
		}
		s.logger.Error("Failed to fetch product", zap.String("id", id.String()), zap.Error(err))
		return nil, storeError("Failed to fetch product", err)
	}

	for _, url := range product.Images {
		key, keyErr := s.images.KeyFromURL(url)
		if keyErr != nil {
			s.logger.Warn("Error deleting product image", zap.String("url", url), zap.Error(keyErr))
			continue
		}
		if delErr := s.images.Delete(ctx, key); delErr != nil {
			s.logger.Warn("Error deleting product image", zap.String("key", key), zap.Error(delErr))
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete product", zap.String("id", id.String()), zap.Error(err))
		return nil, storeError("Failed to delete product", err)
	}

	s.logger.Info("Product deleted", zap.String("id", id.String()), zap.Int("images", len(product.Images)))
	return &models.ActionResult{Success: true, Message: "Product deleted successfully"}, nil
}

func (s *productServiceImpl) ListProducts(ctx context.Context) ([]models.Product, *ServiceError) {
	products, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to fetch products", zap.Error(err))
		return nil, storeError("Failed to fetch products", err)
	}
	return products, nil
}

func (s *productServiceImpl) ListAvailableProducts(ctx context.Context) ([]models.Product, *ServiceError) {
	products, err := s.repo.FindAllByName(ctx)
	if err != nil {
		s.logger.Error("Failed to fetch available products", zap.Error(err))
		return nil, storeError("Failed to fetch available products", err)
	}
	return products, nil
}

// UploadImages stores every file concurrently and waits for all of them.
// Any single failure fails the whole batch with the storage error.
func (s *productServiceImpl) UploadImages(ctx context.Context, uploads []ImageUpload) ([]string, *ServiceError) {
	if len(uploads) == 0 {
		return nil, validationError("No images provided")
	}

	urls := make([]string, len(uploads))
	uploadErrs := make([]error, len(uploads))

	var wg sync.WaitGroup
	for i, up := range uploads {
		wg.Add(1)
		go func(i int, up ImageUpload) {
			defer wg.Done()
			key := imageKey(up.Filename)
			urls[i], uploadErrs[i] = s.images.Upload(ctx, key, up.ContentType, up.Body)
		}(i, up)
	}
	wg.Wait()

	for _, err := range uploadErrs {
		if err != nil {
			s.logger.Error("Failed to upload image", zap.Error(err))
			return nil, storeError("Failed to upload image", err)
		}
	}

	s.logger.Info("Product images uploaded", zap.Int("count", len(urls)))
	return urls, nil
}

func (s *productServiceImpl) DeleteImage(ctx context.Context, url string) (*models.ActionResult, *ServiceError) {
	key, err := s.images.KeyFromURL(url)
	if err != nil {
		return nil, validationError("Invalid image path")
	}

	if err := s.images.Delete(ctx, key); err != nil {
		s.logger.Error("Failed to delete image", zap.String("key", key), zap.Error(err))
		return nil, storeError("Failed to delete image", err)
	}

	return &models.ActionResult{Success: true, Message: "Image deleted successfully"}, nil
}

// imageKey builds a unique storage key preserving the original extension.
func imageKey(filename string) string {
	return fmt.Sprintf("products/%d-%s%s", time.Now().UnixNano(), uuid.NewString(), path.Ext(filename))
}
