package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is a catalog item. Images holds public storage URLs; the first
// entry is the primary image.
type Product struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SKU          string     `gorm:"type:varchar(64);not null" json:"sku"`
	Name         string     `gorm:"type:varchar(255);not null" json:"name"`
	Description  *string    `gorm:"type:text" json:"description"`
	RegularPrice float64    `gorm:"not null" json:"regular_price"`
	SalePrice    *float64   `json:"sale_price"`
	CategoryID   *uuid.UUID `gorm:"type:uuid" json:"category_id"`
	Category     *Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Images       []string   `gorm:"type:jsonb;serializer:json" json:"images"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// CreateProductRequest is the payload for creating a product.
type CreateProductRequest struct {
	SKU          string     `json:"sku" binding:"required"`
	Name         string     `json:"name" binding:"required"`
	Description  *string    `json:"description"`
	RegularPrice float64    `json:"regular_price" binding:"required"`
	SalePrice    *float64   `json:"sale_price"`
	CategoryID   *uuid.UUID `json:"category_id"`
	Images       []string   `json:"images"`
}

// UpdateProductRequest is the payload for updating a product.
type UpdateProductRequest struct {
	SKU          string     `json:"sku" binding:"required"`
	Name         string     `json:"name" binding:"required"`
	Description  *string    `json:"description"`
	RegularPrice float64    `json:"regular_price" binding:"required"`
	SalePrice    *float64   `json:"sale_price"`
	CategoryID   *uuid.UUID `json:"category_id"`
	Images       []string   `json:"images"`
}
