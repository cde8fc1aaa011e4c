// Package domain contains the subscription model: a recurring-order template
// owned by a customer for one vendor/product pair.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/deliverlylabs/deliverly/pkg/db/pagination"
)

type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusPaused    SubscriptionStatus = "paused"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
)

// Subscription snapshots commercial terms (quantity, unit, price) at creation
// time; later product price changes never rewrite them.
//
// Status and the pause window are two independent controls: status=paused is a
// manual full stop, while [PausedFrom, PausedUntil] suppresses generation for
// a scheduled date range without touching the cadence.
type Subscription struct {
	ID           snowflake.ID       `gorm:"primaryKey" json:"id"`
	CustomerID   snowflake.ID       `gorm:"not null;index" json:"customer_id"`
	VendorID     snowflake.ID       `gorm:"not null;index" json:"vendor_id"`
	ProductID    snowflake.ID       `gorm:"not null;index" json:"product_id"`
	Frequency    Frequency          `gorm:"type:text;not null" json:"frequency"`
	StartDate    time.Time          `gorm:"not null" json:"start_date"`
	EndDate      *time.Time         `json:"end_date,omitempty"`
	PausedFrom   *time.Time         `json:"paused_from,omitempty"`
	PausedUntil  *time.Time         `json:"paused_until,omitempty"`
	Quantity     float64            `gorm:"not null" json:"quantity"`
	Unit         string             `gorm:"type:text;not null" json:"unit"`
	PricePerUnit float64            `gorm:"not null" json:"price_per_unit"`
	Status       SubscriptionStatus `gorm:"type:text;not null;index" json:"status"`
	CreatedAt    time.Time          `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time          `gorm:"not null" json:"updated_at"`
}

func (Subscription) TableName() string { return "subscriptions" }

// ValidFrequency reports whether f is one of the recognized cadences.
func ValidFrequency(f Frequency) bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	default:
		return false
	}
}

type CreateSubscriptionRequest struct {
	CustomerID string
	VendorID   string
	ProductID  string
	Frequency  string
	StartDate  time.Time
	EndDate    *time.Time
	Quantity   float64
}

type ListSubscriptionRequest struct {
	Status     string
	CustomerID string
	VendorID   string
	PageToken  string
	PageSize   int
}

type ListSubscriptionResponse struct {
	Subscriptions []Subscription
	PageInfo      pagination.PageInfo
}

type PauseWindowRequest struct {
	SubscriptionID string
	PausedFrom     time.Time
	PausedUntil    time.Time
}
