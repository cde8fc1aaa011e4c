// Package domain contains the customer model and contracts.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrInvalidCustomer  = errors.New("invalid customer")
	ErrInvalidName      = errors.New("invalid customer name")
	ErrInvalidPhone     = errors.New("invalid phone")
)

type Customer struct {
	ID        snowflake.ID  `gorm:"primaryKey" json:"id"`
	Name      string        `gorm:"type:text;not null" json:"name"`
	Phone     string        `gorm:"type:text;not null;index" json:"phone"`
	Address   string        `gorm:"type:text" json:"address"`
	AreaID    *snowflake.ID `gorm:"index" json:"area_id,omitempty"`
	SocietyID *snowflake.ID `gorm:"index" json:"society_id,omitempty"`
	CreatedAt time.Time     `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time     `gorm:"not null" json:"updated_at"`
}

func (Customer) TableName() string { return "customers" }

type CreateCustomerRequest struct {
	Name      string
	Phone     string
	Address   string
	AreaID    string
	SocietyID string
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, customer *Customer) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Customer, error)
	FindByPhone(ctx context.Context, db *gorm.DB, phone string) (*Customer, error)
	ListByVendor(ctx context.Context, db *gorm.DB, vendorID snowflake.ID) ([]Customer, error)
}

type Service interface {
	Create(ctx context.Context, req CreateCustomerRequest) (Customer, error)
	GetByID(ctx context.Context, id string) (Customer, error)
	ListByVendor(ctx context.Context, vendorID string) ([]Customer, error)
}
