package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/deliverlylabs/deliverly/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListFilter struct {
	CustomerID *snowflake.ID
	VendorID   *snowflake.ID
	Status     *OrderStatus
	DateFrom   *time.Time
	DateTo     *time.Time
}

type Repository interface {
	BulkInsert(ctx context.Context, db *gorm.DB, orders []Order) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Order, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter, page pagination.Pagination) ([]*Order, error)

	// ExistingDatesForSubscription returns the set of order dates already
	// materialized for a subscription within [from, to]. Keys are dates
	// normalized to UTC midnight.
	ExistingDatesForSubscription(ctx context.Context, db *gorm.DB, subscriptionID snowflake.ID, from, to time.Time) (map[time.Time]struct{}, error)

	UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status OrderStatus, at time.Time) error
}

type Service interface {
	GetByID(ctx context.Context, id string) (Order, error)
	List(ctx context.Context, req ListOrderRequest) (ListOrderResponse, error)
	UpdateStatus(ctx context.Context, req UpdateOrderStatusRequest) (Order, error)
}
