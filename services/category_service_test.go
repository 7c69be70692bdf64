package services_test

import (
	"context"
	"errors"
	"testing"

	"catalog-service/models"
	"catalog-service/repository"
	"catalog-service/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// --- Mock CategoryRepository ---

type mockCategoryRepo struct {
	categories map[uuid.UUID]*models.Category
	created    int
	deleted    []uuid.UUID
	createErr  error
}

func newMockCategoryRepo() *mockCategoryRepo {
	return &mockCategoryRepo{categories: make(map[uuid.UUID]*models.Category)}
}

func (m *mockCategoryRepo) Create(_ context.Context, c *models.Category) error {
	if m.createErr != nil {
		return m.createErr
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	m.created++
	m.categories[c.ID] = c
	return nil
}

func (m *mockCategoryRepo) Update(_ context.Context, id uuid.UUID, _ map[string]interface{}) error {
	if _, ok := m.categories[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (m *mockCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.categories[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.categories, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Category, error) {
	c, ok := m.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (m *mockCategoryRepo) FindAll(_ context.Context) ([]models.Category, error) {
	var result []models.Category
	for _, c := range m.categories {
		result = append(result, *c)
	}
	return result, nil
}

var _ repository.CategoryRepository = (*mockCategoryRepo)(nil)

// --- Helpers ---

func newTestCategoryService(repo repository.CategoryRepository, products repository.ProductRepository) services.CategoryService {
	logger, _ := zap.NewDevelopment()
	return services.NewCategoryService(repo, products, logger)
}

// --- Tests ---

func TestCategoryService_CreateCategory_Success(t *testing.T) {
	repo := newMockCategoryRepo()
	svc := newTestCategoryService(repo, newMockProductRepo())

	result, svcErr := svc.CreateCategory(context.Background(), &models.CreateCategoryRequest{Name: "Footwear"})

	assert.Nil(t, svcErr)
	assert.True(t, result.Success)
	assert.Equal(t, "Category created successfully", result.Message)
	assert.Equal(t, 1, repo.created)
}

func TestCategoryService_CreateCategory_WhitespaceName(t *testing.T) {
	repo := newMockCategoryRepo()
	svc := newTestCategoryService(repo, newMockProductRepo())

	_, svcErr := svc.CreateCategory(context.Background(), &models.CreateCategoryRequest{Name: "   "})

	assert.NotNil(t, svcErr)
	assert.Equal(t, 400, svcErr.StatusCode)
	assert.Equal(t, "Category name is required", svcErr.Message)
	assert.Equal(t, 0, repo.created, "validation failure must not reach the store")
}

func TestCategoryService_CreateCategory_StoreFailure(t *testing.T) {
	repo := newMockCategoryRepo()
	repo.createErr = errors.New("connection reset")
	svc := newTestCategoryService(repo, newMockProductRepo())

	_, svcErr := svc.CreateCategory(context.Background(), &models.CreateCategoryRequest{Name: "Footwear"})

	assert.NotNil(t, svcErr)
	assert.Equal(t, 500, svcErr.StatusCode)
	assert.Equal(t, "Failed to create category: connection reset", svcErr.Message)
}

func TestCategoryService_UpdateCategory_NotFound(t *testing.T) {
	repo := newMockCategoryRepo()
	svc := newTestCategoryService(repo, newMockProductRepo())

	_, svcErr := svc.UpdateCategory(context.Background(), uuid.New(), &models.UpdateCategoryRequest{Name: "Footwear"})

	assert.NotNil(t, svcErr)
	assert.Equal(t, 404, svcErr.StatusCode)
	assert.Equal(t, "Category not found", svcErr.Message)
}

func TestCategoryService_DeleteCategory_DetachesProducts(t *testing.T) {
	repo := newMockCategoryRepo()
	productRepo := newMockProductRepo()
	svc := newTestCategoryService(repo, productRepo)

	category := &models.Category{ID: uuid.New(), Name: "Footwear"}
	repo.categories[category.ID] = category

	productID := uuid.New()
	categoryID := category.ID
	productRepo.products[productID] = &models.Product{
		ID:           productID,
		SKU:          "SKU-1",
		Name:         "Boot",
		RegularPrice: 50,
		CategoryID:   &categoryID,
	}

	result, svcErr := svc.DeleteCategory(context.Background(), category.ID)

	assert.Nil(t, svcErr)
	assert.True(t, result.Success)
	assert.Equal(t, []uuid.UUID{category.ID}, productRepo.cleared)
	assert.Nil(t, productRepo.products[productID].CategoryID, "referencing products keep existing without a category")
	assert.Equal(t, []uuid.UUID{category.ID}, repo.deleted)
}

func TestCategoryService_ListCategories(t *testing.T) {
	repo := newMockCategoryRepo()
	svc := newTestCategoryService(repo, newMockProductRepo())

	for _, name := range []string{"Footwear", "Outerwear", "Accessories"} {
		_, _ = svc.CreateCategory(context.Background(), &models.CreateCategoryRequest{Name: name})
	}

	categories, svcErr := svc.ListCategories(context.Background())
	assert.Nil(t, svcErr)
	assert.Len(t, categories, 3)
}
