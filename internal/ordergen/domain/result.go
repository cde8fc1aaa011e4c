// Package domain defines the order-generation job contract.
package domain

import (
	"context"
	"time"

	subscriptiondomain "github.com/deliverlylabs/deliverly/internal/subscription/domain"
)

// Result is the job summary returned to the trigger caller. A subscription-
// level failure never flips Success; only a failure to load the active
// subscription list does, and in that case the service returns an error
// instead of a Result.
type Result struct {
	Success                bool     `json:"success"`
	OrdersCreated          int      `json:"ordersCreated"`
	SubscriptionsProcessed int      `json:"subscriptionsProcessed"`
	Errors                 []string `json:"errors,omitempty"`
}

type Service interface {
	// Generate expands every active subscription into dated orders and
	// materializes the ones not yet present. Safe to re-run at any time.
	Generate(ctx context.Context) (Result, error)

	// Expand is the pure schedule expansion for one subscription against a
	// pinned reference date. Exposed for callers that need a dry run.
	Expand(subscription subscriptiondomain.Subscription, referenceDate time.Time) ([]time.Time, error)
}
