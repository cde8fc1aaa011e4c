// Package domain contains the vendor-customer connection flow: short-lived
// invite codes a vendor shares (as a link or QR) and the persistent
// connection created when a customer redeems one.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

var (
	ErrInviteNotFound   = errors.New("invite code not found or expired")
	ErrInvalidInvite    = errors.New("invalid invite")
	ErrAlreadyConnected = errors.New("customer already connected to vendor")
)

// Invite is the ephemeral code; it lives in Redis with a TTL and is removed
// on redemption.
type Invite struct {
	Code      string    `json:"code"`
	VendorID  string    `json:"vendor_id"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Connection is the durable vendor-customer link created on redemption.
type Connection struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	VendorID   snowflake.ID `gorm:"not null;index:idx_vendor_customer,unique" json:"vendor_id"`
	CustomerID snowflake.ID `gorm:"not null;index:idx_vendor_customer,unique" json:"customer_id"`
	CreatedAt  time.Time    `gorm:"not null" json:"created_at"`
}

func (Connection) TableName() string { return "vendor_connections" }

type ConnectionRepository interface {
	Insert(ctx context.Context, db *gorm.DB, connection *Connection) error
	Find(ctx context.Context, db *gorm.DB, vendorID, customerID snowflake.ID) (*Connection, error)
}

type Service interface {
	// Issue creates a single-use invite code for the vendor. The returned
	// URL doubles as the QR payload.
	Issue(ctx context.Context, vendorID string) (Invite, error)

	// Redeem consumes the code and connects the customer to the issuing
	// vendor. Codes are one-shot; a second redemption fails.
	Redeem(ctx context.Context, code, customerID string) (Connection, error)
}
