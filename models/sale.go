package models

import (
	"time"

	"github.com/google/uuid"
)

// SaleStatus is the derived lifecycle state of a sale. It is never stored;
// it is recomputed from the date range on every read.
type SaleStatus string

const (
	SaleStatusUpcoming SaleStatus = "upcoming"
	SaleStatusActive   SaleStatus = "active"
	SaleStatusEnded    SaleStatus = "ended"
)

// Sale is a time-boxed promotion window.
type Sale struct {
	ID           uuid.UUID     `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name         string        `gorm:"type:varchar(255);not null" json:"name"`
	StartDate    time.Time     `gorm:"not null" json:"start_date"`
	EndDate      time.Time     `gorm:"not null" json:"end_date"`
	SaleProducts []SaleProduct `gorm:"foreignKey:SaleID" json:"sale_products,omitempty"`
	CreatedAt    time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

// SaleProduct is the join row carrying the price a product sells for within
// one sale. A product appears at most once per sale.
type SaleProduct struct {
	SaleID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"sale_id"`
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey" json:"product_id"`
	SalePrice float64   `gorm:"not null" json:"sale_price"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// CreateSaleRequest is the payload for creating a sale.
type CreateSaleRequest struct {
	Name      string    `json:"name" binding:"required"`
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required"`
}

// UpdateSaleRequest is the payload for updating a sale.
type UpdateSaleRequest struct {
	Name      string    `json:"name" binding:"required"`
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required"`
}

// AddSaleProductsRequest assigns products to a sale. SalePrice, when set,
// applies uniformly to every newly assigned product; when nil each product's
// own regular price is used.
type AddSaleProductsRequest struct {
	ProductIDs []uuid.UUID `json:"product_ids" binding:"required,min=1"`
	SalePrice  *float64    `json:"sale_price"`
}

// SaleResponse augments a sale with its derived fields.
type SaleResponse struct {
	Sale
	Status       SaleStatus `json:"status"`
	ProductCount int        `json:"product_count"`
	DateRange    string     `json:"date_range"`
}

// ActionResult is the success descriptor returned by mutating operations.
type ActionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
