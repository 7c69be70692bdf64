package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"catalog-service/controllers"
	"catalog-service/models"
	"catalog-service/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockSaleService struct {
	createFn     func(ctx context.Context, req *models.CreateSaleRequest) (*models.ActionResult, *services.ServiceError)
	updateFn     func(ctx context.Context, id uuid.UUID, req *models.UpdateSaleRequest) (*models.ActionResult, *services.ServiceError)
	deleteFn     func(ctx context.Context, id uuid.UUID) (*models.ActionResult, *services.ServiceError)
	listFn       func(ctx context.Context) ([]models.SaleResponse, *services.ServiceError)
	addFn        func(ctx context.Context, saleID uuid.UUID, productIDs []uuid.UUID, salePrice *float64) (*models.ActionResult, *services.ServiceError)
	removeFn     func(ctx context.Context, saleID, productID uuid.UUID) (*models.ActionResult, *services.ServiceError)
	inSaleFn     func(ctx context.Context, saleID uuid.UUID) ([]models.SaleProduct, *services.ServiceError)
}

func (m *mockSaleService) CreateSale(ctx context.Context, req *models.CreateSaleRequest) (*models.ActionResult, *services.ServiceError) {
	return m.createFn(ctx, req)
}

func (m *mockSaleService) UpdateSale(ctx context.Context, id uuid.UUID, req *models.UpdateSaleRequest) (*models.ActionResult, *services.ServiceError) {
	return m.updateFn(ctx, id, req)
}

func (m *mockSaleService) DeleteSale(ctx context.Context, id uuid.UUID) (*models.ActionResult, *services.ServiceError) {
	return m.deleteFn(ctx, id)
}

func (m *mockSaleService) ListSales(ctx context.Context) ([]models.SaleResponse, *services.ServiceError) {
	return m.listFn(ctx)
}

func (m *mockSaleService) AddProductsToSale(ctx context.Context, saleID uuid.UUID, productIDs []uuid.UUID, salePrice *float64) (*models.ActionResult, *services.ServiceError) {
	return m.addFn(ctx, saleID, productIDs, salePrice)
}

func (m *mockSaleService) RemoveProductFromSale(ctx context.Context, saleID, productID uuid.UUID) (*models.ActionResult, *services.ServiceError) {
	return m.removeFn(ctx, saleID, productID)
}

func (m *mockSaleService) ProductsInSale(ctx context.Context, saleID uuid.UUID) ([]models.SaleProduct, *services.ServiceError) {
	return m.inSaleFn(ctx, saleID)
}

func setupSaleRouter(svc services.SaleService) *gin.Engine {
	controller := controllers.NewSaleController(svc)
	router := gin.New()
	router.GET("/sales", controller.ListSales)
	router.POST("/sales", controller.CreateSale)
	router.PUT("/sales/:id", controller.UpdateSale)
	router.DELETE("/sales/:id", controller.DeleteSale)
	router.GET("/sales/:id/products", controller.ListSaleProducts)
	router.POST("/sales/:id/products", controller.AddSaleProducts)
	router.DELETE("/sales/:id/products/:productId", controller.RemoveSaleProduct)
	return router
}

func TestCreateSale_Success(t *testing.T) {
	svc := &mockSaleService{
		createFn: func(ctx context.Context, req *models.CreateSaleRequest) (*models.ActionResult, *services.ServiceError) {
			assert.Equal(t, "Spring Sale", req.Name)
			return &models.ActionResult{Success: true, Message: "Sale created successfully"}, nil
		},
	}
	router := setupSaleRouter(svc)

	body, _ := json.Marshal(models.CreateSaleRequest{
		Name:      "Spring Sale",
		StartDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC),
	})
	req := httptest.NewRequest(http.MethodPost, "/sales", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var result models.ActionResult
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, "Sale created successfully", result.Message)
}

func TestCreateSale_InvalidBody(t *testing.T) {
	svc := &mockSaleService{
		createFn: func(ctx context.Context, req *models.CreateSaleRequest) (*models.ActionResult, *services.ServiceError) {
			t.Fatal("service should not be called for an invalid body")
			return nil, nil
		},
	}
	router := setupSaleRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/sales", bytes.NewReader([]byte(`{"name":`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid request", resp["error"])
}

func TestCreateSale_ValidationError(t *testing.T) {
	svc := &mockSaleService{
		createFn: func(ctx context.Context, req *models.CreateSaleRequest) (*models.ActionResult, *services.ServiceError) {
			return nil, &services.ServiceError{StatusCode: 400, Message: "End date must be after start date"}
		},
	}
	router := setupSaleRouter(svc)

	body, _ := json.Marshal(models.CreateSaleRequest{
		Name:      "Backwards Sale",
		StartDate: time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	req := httptest.NewRequest(http.MethodPost, "/sales", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "End date must be after start date", resp["error"])
}

func TestUpdateSale_InvalidUUID(t *testing.T) {
	svc := &mockSaleService{
		updateFn: func(ctx context.Context, id uuid.UUID, req *models.UpdateSaleRequest) (*models.ActionResult, *services.ServiceError) {
			t.Fatal("service should not be called for an invalid id")
			return nil, nil
		},
	}
	router := setupSaleRouter(svc)

	body, _ := json.Marshal(models.UpdateSaleRequest{Name: "Renamed"})
	req := httptest.NewRequest(http.MethodPut, "/sales/not-a-uuid", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid UUID format", resp["error"])
}

func TestDeleteSale_NotFound(t *testing.T) {
	svc := &mockSaleService{
		deleteFn: func(ctx context.Context, id uuid.UUID) (*models.ActionResult, *services.ServiceError) {
			return nil, &services.ServiceError{StatusCode: 404, Message: "Sale not found"}
		},
	}
	router := setupSaleRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/sales/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Sale not found", resp["error"])
}

func TestListSales_Success(t *testing.T) {
	svc := &mockSaleService{
		listFn: func(ctx context.Context) ([]models.SaleResponse, *services.ServiceError) {
			return []models.SaleResponse{
				{
					Sale:         models.Sale{ID: uuid.New(), Name: "Spring Sale"},
					Status:       models.SaleStatusActive,
					ProductCount: 3,
					DateRange:    "Mar 1 - Mar 8, 2024",
				},
			}, nil
		},
	}
	router := setupSaleRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/sales", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Sales []models.SaleResponse `json:"sales"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Sales, 1)
	assert.Equal(t, "Spring Sale", resp.Sales[0].Name)
	assert.Equal(t, models.SaleStatusActive, resp.Sales[0].Status)
	assert.Equal(t, 3, resp.Sales[0].ProductCount)
}

func TestAddSaleProducts_Success(t *testing.T) {
	saleID := uuid.New()
	wantIDs := []uuid.UUID{uuid.New(), uuid.New()}

	svc := &mockSaleService{
		addFn: func(ctx context.Context, gotSaleID uuid.UUID, productIDs []uuid.UUID, salePrice *float64) (*models.ActionResult, *services.ServiceError) {
			assert.Equal(t, saleID, gotSaleID)
			assert.Equal(t, wantIDs, productIDs)
			assert.Nil(t, salePrice)
			return &models.ActionResult{Success: true, Message: "2 products added to sale successfully"}, nil
		},
	}
	router := setupSaleRouter(svc)

	body, _ := json.Marshal(models.AddSaleProductsRequest{ProductIDs: wantIDs})
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/sales/%s/products", saleID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var result models.ActionResult
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "2 products added to sale successfully", result.Message)
}

func TestAddSaleProducts_BulkPriceForwarded(t *testing.T) {
	saleID := uuid.New()
	price := 15.0

	svc := &mockSaleService{
		addFn: func(ctx context.Context, _ uuid.UUID, _ []uuid.UUID, salePrice *float64) (*models.ActionResult, *services.ServiceError) {
			if assert.NotNil(t, salePrice) {
				assert.Equal(t, price, *salePrice)
			}
			return &models.ActionResult{Success: true, Message: "1 product added to sale successfully"}, nil
		},
	}
	router := setupSaleRouter(svc)

	body, _ := json.Marshal(models.AddSaleProductsRequest{
		ProductIDs: []uuid.UUID{uuid.New()},
		SalePrice:  &price,
	})
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/sales/%s/products", saleID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestAddSaleProducts_AllDuplicates(t *testing.T) {
	svc := &mockSaleService{
		addFn: func(ctx context.Context, _ uuid.UUID, _ []uuid.UUID, _ *float64) (*models.ActionResult, *services.ServiceError) {
			return nil, &services.ServiceError{StatusCode: 409, Message: "This product is already in the sale"}
		},
	}
	router := setupSaleRouter(svc)

	body, _ := json.Marshal(models.AddSaleProductsRequest{ProductIDs: []uuid.UUID{uuid.New()}})
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/sales/%s/products", uuid.New()), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "This product is already in the sale", resp["error"])
}

func TestAddSaleProducts_EmptyProductIDs(t *testing.T) {
	svc := &mockSaleService{
		addFn: func(ctx context.Context, _ uuid.UUID, _ []uuid.UUID, _ *float64) (*models.ActionResult, *services.ServiceError) {
			t.Fatal("service should not be called when binding fails")
			return nil, nil
		},
	}
	router := setupSaleRouter(svc)

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/sales/%s/products", uuid.New()), bytes.NewReader([]byte(`{"product_ids":[]}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRemoveSaleProduct_Success(t *testing.T) {
	saleID := uuid.New()
	productID := uuid.New()

	svc := &mockSaleService{
		removeFn: func(ctx context.Context, gotSaleID, gotProductID uuid.UUID) (*models.ActionResult, *services.ServiceError) {
			assert.Equal(t, saleID, gotSaleID)
			assert.Equal(t, productID, gotProductID)
			return &models.ActionResult{Success: true, Message: "Product removed from sale successfully"}, nil
		},
	}
	router := setupSaleRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/sales/%s/products/%s", saleID, productID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var result models.ActionResult
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "Product removed from sale successfully", result.Message)
}

func TestListSaleProducts_Success(t *testing.T) {
	saleID := uuid.New()

	svc := &mockSaleService{
		inSaleFn: func(ctx context.Context, gotSaleID uuid.UUID) ([]models.SaleProduct, *services.ServiceError) {
			assert.Equal(t, saleID, gotSaleID)
			return []models.SaleProduct{
				{SaleID: saleID, ProductID: uuid.New(), SalePrice: 19.99},
			}, nil
		},
	}
	router := setupSaleRouter(svc)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/sales/%s/products", saleID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		SaleProducts []models.SaleProduct `json:"sale_products"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.SaleProducts, 1)
	assert.Equal(t, 19.99, resp.SaleProducts[0].SalePrice)
}
