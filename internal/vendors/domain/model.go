// Package domain contains the vendor model and contracts.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

var (
	ErrVendorNotFound = errors.New("vendor not found")
	ErrInvalidVendor  = errors.New("invalid vendor")
	ErrInvalidName    = errors.New("invalid vendor name")
	ErrInvalidPhone   = errors.New("invalid phone")
	ErrSlugTaken      = errors.New("vendor slug already taken")
)

// Vendor is a delivery business (dairy, tiffin, water supplier) that serves
// customers in one or more areas.
type Vendor struct {
	ID        snowflake.ID  `gorm:"primaryKey" json:"id"`
	Name      string        `gorm:"type:text;not null" json:"name"`
	Slug      string        `gorm:"type:text;not null;uniqueIndex" json:"slug"`
	Phone     string        `gorm:"type:text;not null" json:"phone"`
	Email     *string       `gorm:"type:text" json:"email,omitempty"`
	AreaID    *snowflake.ID `gorm:"index" json:"area_id,omitempty"`
	CreatedAt time.Time     `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time     `gorm:"not null" json:"updated_at"`
}

func (Vendor) TableName() string { return "vendors" }

type CreateVendorRequest struct {
	Name   string
	Phone  string
	Email  string
	AreaID string
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, vendor *Vendor) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Vendor, error)
	FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*Vendor, error)
	List(ctx context.Context, db *gorm.DB, areaID *snowflake.ID) ([]Vendor, error)
}

type Service interface {
	Create(ctx context.Context, req CreateVendorRequest) (Vendor, error)
	GetByID(ctx context.Context, id string) (Vendor, error)
	GetBySlug(ctx context.Context, slug string) (Vendor, error)
	List(ctx context.Context, areaID string) ([]Vendor, error)
}
