// Package domain contains the product catalog model and contracts.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidProduct  = errors.New("invalid product")
	ErrInvalidName     = errors.New("invalid product name")
	ErrInvalidUnit     = errors.New("invalid unit")
	ErrInvalidPrice    = errors.New("invalid price")
)

// Product is a vendor catalog item. Price is the live price used when a new
// subscription is created; existing subscriptions keep their snapshot terms.
type Product struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	VendorID  snowflake.ID `gorm:"not null;index" json:"vendor_id"`
	Name      string       `gorm:"type:text;not null" json:"name"`
	Unit      string       `gorm:"type:text;not null" json:"unit"`
	Price     float64      `gorm:"not null" json:"price"`
	Active    bool         `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null" json:"updated_at"`
}

func (Product) TableName() string { return "products" }

type CreateProductRequest struct {
	VendorID string
	Name     string
	Unit     string
	Price    float64
}

type UpdateProductRequest struct {
	ProductID string
	Name      *string
	Unit      *string
	Price     *float64
	Active    *bool
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, product *Product) error
	Update(ctx context.Context, db *gorm.DB, product *Product) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Product, error)
	ListByVendor(ctx context.Context, db *gorm.DB, vendorID snowflake.ID, activeOnly bool) ([]Product, error)
}

type Service interface {
	Create(ctx context.Context, req CreateProductRequest) (Product, error)
	Update(ctx context.Context, req UpdateProductRequest) (Product, error)
	GetByID(ctx context.Context, id string) (Product, error)
	ListByVendor(ctx context.Context, vendorID string, activeOnly bool) ([]Product, error)
}
