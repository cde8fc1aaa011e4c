// Package domain contains the order model: one concrete, dated delivery
// obligation.
package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/deliverlylabs/deliverly/pkg/db/pagination"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidOrder      = errors.New("invalid order")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrInvalidTransition = errors.New("invalid order status transition")
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order rows created by subscription expansion carry their originating
// SubscriptionID; (subscription_id, order_date) is the dedup key that keeps
// re-runs of the generation job idempotent. Manually placed one-off orders
// have a nil SubscriptionID and are never deduped.
type Order struct {
	ID             snowflake.ID  `gorm:"primaryKey" json:"id"`
	SubscriptionID *snowflake.ID `gorm:"index:idx_orders_subscription_date,unique" json:"subscription_id,omitempty"`
	CustomerID     snowflake.ID  `gorm:"not null;index" json:"customer_id"`
	VendorID       snowflake.ID  `gorm:"not null;index" json:"vendor_id"`
	ProductID      snowflake.ID  `gorm:"not null;index" json:"product_id"`
	OrderDate      time.Time     `gorm:"not null;index:idx_orders_subscription_date,unique" json:"order_date"`
	Quantity       float64       `gorm:"not null" json:"quantity"`
	Unit           string        `gorm:"type:text;not null" json:"unit"`
	PricePerUnit   float64       `gorm:"not null" json:"price_per_unit"`
	TotalAmount    float64       `gorm:"not null" json:"total_amount"`
	Status         OrderStatus   `gorm:"type:text;not null;index" json:"status"`
	CreatedAt      time.Time     `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time     `gorm:"not null" json:"updated_at"`
}

func (Order) TableName() string { return "orders" }

type ListOrderRequest struct {
	CustomerID string
	VendorID   string
	Status     string
	DateFrom   *time.Time
	DateTo     *time.Time
	PageToken  string
	PageSize   int
}

type ListOrderResponse struct {
	Orders   []Order
	PageInfo pagination.PageInfo
}

type UpdateOrderStatusRequest struct {
	OrderID string
	Status  string
}
