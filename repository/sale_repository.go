package repository

import (
	"context"

	"catalog-service/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SaleRepository defines the interface for sale and sale-product data access.
type SaleRepository interface {
	Create(ctx context.Context, sale *models.Sale) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	// Delete removes the sale row only. Callers must remove the sale's join
	// rows first; reversing the order would leave rows referencing a
	// missing sale.
	Delete(ctx context.Context, id uuid.UUID) error
	// RemoveAllSaleProducts deletes every join row for the sale.
	RemoveAllSaleProducts(ctx context.Context, saleID uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Sale, error)
	// FindAll retrieves every sale with its join rows, each carrying the
	// product and its category, latest start first.
	FindAll(ctx context.Context) ([]models.Sale, error)
	// FindAssignedProductIDs returns the subset of candidates already
	// assigned to the sale.
	FindAssignedProductIDs(ctx context.Context, saleID uuid.UUID, candidates []uuid.UUID) ([]uuid.UUID, error)
	AddSaleProducts(ctx context.Context, rows []models.SaleProduct) error
	// RemoveSaleProduct deletes the single matching join row. Removing a row
	// that does not exist is not an error.
	RemoveSaleProduct(ctx context.Context, saleID, productID uuid.UUID) error
	// FindSaleProducts retrieves a sale's join rows with product and
	// category preloaded.
	FindSaleProducts(ctx context.Context, saleID uuid.UUID) ([]models.SaleProduct, error)
}

// GormSaleRepository implements SaleRepository using GORM.
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository.
func NewGormSaleRepository(db *gorm.DB) SaleRepository {
	return &GormSaleRepository{db: db}
}

func (r *GormSaleRepository) Create(ctx context.Context, sale *models.Sale) error {
	return r.db.WithContext(ctx).Create(sale).Error
}

func (r *GormSaleRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&models.Sale{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormSaleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Sale{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormSaleRepository) RemoveAllSaleProducts(ctx context.Context, saleID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("sale_id = ?", saleID).
		Delete(&models.SaleProduct{}).
		Error
}

func (r *GormSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Sale, error) {
	var sale models.Sale
	if err := r.db.WithContext(ctx).First(&sale, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *GormSaleRepository) FindAll(ctx context.Context) ([]models.Sale, error) {
	var sales []models.Sale
	if err := r.db.WithContext(ctx).
		Preload("SaleProducts.Product.Category").
		Order("start_date DESC").
		Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

func (r *GormSaleRepository) FindAssignedProductIDs(ctx context.Context, saleID uuid.UUID, candidates []uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&models.SaleProduct{}).
		Where("sale_id = ? AND product_id IN ?", saleID, candidates).
		Pluck("product_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *GormSaleRepository) AddSaleProducts(ctx context.Context, rows []models.SaleProduct) error {
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *GormSaleRepository) RemoveSaleProduct(ctx context.Context, saleID, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("sale_id = ? AND product_id = ?", saleID, productID).
		Delete(&models.SaleProduct{}).
		Error
}

func (r *GormSaleRepository) FindSaleProducts(ctx context.Context, saleID uuid.UUID) ([]models.SaleProduct, error) {
	var rows []models.SaleProduct
	if err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Product.Category").
		Where("sale_id = ?", saleID).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
