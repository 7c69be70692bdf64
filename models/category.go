package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products under a display label owned by a buyer.
type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	BuyerName *string   `gorm:"type:varchar(255)" json:"buyer_name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// CreateCategoryRequest is the payload for creating a category.
type CreateCategoryRequest struct {
	Name      string  `json:"name" binding:"required"`
	BuyerName *string `json:"buyer_name"`
}

// UpdateCategoryRequest is the payload for updating a category.
type UpdateCategoryRequest struct {
	Name      string  `json:"name" binding:"required"`
	BuyerName *string `json:"buyer_name"`
}
