package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/deliverlylabs/deliverly/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListFilter struct {
	Status     *SubscriptionStatus
	CustomerID *snowflake.ID
	VendorID   *snowflake.ID
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, subscription *Subscription) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Subscription, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter, page pagination.Pagination) ([]*Subscription, error)

	// ListActive returns every subscription in active status, in creation
	// order. The order-generation job is its caller.
	ListActive(ctx context.Context, db *gorm.DB) ([]Subscription, error)

	UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status SubscriptionStatus, at time.Time) error
	UpdatePauseWindow(ctx context.Context, db *gorm.DB, id snowflake.ID, from, until *time.Time, at time.Time) error
}

type Service interface {
	Create(ctx context.Context, req CreateSubscriptionRequest) (Subscription, error)
	GetByID(ctx context.Context, id string) (Subscription, error)
	List(ctx context.Context, req ListSubscriptionRequest) (ListSubscriptionResponse, error)
	Pause(ctx context.Context, id string) error
	Resume(ctx context.Context, id string) error
	Cancel(ctx context.Context, id string) error
	SetPauseWindow(ctx context.Context, req PauseWindowRequest) (Subscription, error)
	ClearPauseWindow(ctx context.Context, id string) (Subscription, error)
}
