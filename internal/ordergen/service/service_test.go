package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/deliverlylabs/deliverly/internal/clock"
	orderdomain "github.com/deliverlylabs/deliverly/internal/order/domain"
	orderrepo "github.com/deliverlylabs/deliverly/internal/order/repository"
	subscriptiondomain "github.com/deliverlylabs/deliverly/internal/subscription/domain"
	subscriptionrepo "github.com/deliverlylabs/deliverly/internal/subscription/repository"
)

func newTestService(t *testing.T, now time.Time) (*Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&subscriptiondomain.Subscription{}, &orderdomain.Order{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := &Service{
		db:               db,
		log:              zap.NewNop(),
		genID:            node,
		clock:            clock.Fixed(now),
		subscriptionRepo: subscriptionrepo.Provide(),
		orderRepo:        orderrepo.Provide(),
		horizonDays:      DefaultHorizonDays,
	}
	return svc, db, node
}

func seedSubscription(t *testing.T, db *gorm.DB, node *snowflake.Node, mutate func(*subscriptiondomain.Subscription)) subscriptiondomain.Subscription {
	t.Helper()

	now := time.Now().UTC()
	sub := subscriptiondomain.Subscription{
		ID:           node.Generate(),
		CustomerID:   node.Generate(),
		VendorID:     node.Generate(),
		ProductID:    node.Generate(),
		Frequency:    subscriptiondomain.FrequencyDaily,
		StartDate:    date(2024, time.March, 1),
		Quantity:     2,
		Unit:         "liter",
		PricePerUnit: 27.5,
		Status:       subscriptiondomain.SubscriptionStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if mutate != nil {
		mutate(&sub)
	}
	require.NoError(t, db.Create(&sub).Error)
	return sub
}

func TestGenerateMaterializesDailySubscription(t *testing.T) {
	svc, db, node := newTestService(t, date(2024, time.March, 1))
	end := date(2024, time.March, 5)
	sub := seedSubscription(t, db, node, func(s *subscriptiondomain.Subscription) {
		s.EndDate = &end
	})

	result, err := svc.Generate(context.Background())
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Equal(t, 1, result.SubscriptionsProcessed)
	require.Equal(t, 5, result.OrdersCreated)
	require.Empty(t, result.Errors)

	var orders []orderdomain.Order
	require.NoError(t, db.Where("subscription_id = ?", sub.ID).Order("order_date").Find(&orders).Error)
	require.Len(t, orders, 5)
	for _, order := range orders {
		require.Equal(t, sub.CustomerID, order.CustomerID)
		require.Equal(t, sub.VendorID, order.VendorID)
		require.Equal(t, sub.ProductID, order.ProductID)
		require.Equal(t, orderdomain.OrderStatusPending, order.Status)
		require.Equal(t, 2.0, order.Quantity)
		require.Equal(t, 27.5, order.PricePerUnit)
		require.Equal(t, 55.0, order.TotalAmount)
	}
}

func TestGenerateIsIdempotent(t *testing.T) {
	svc, db, node := newTestService(t, date(2024, time.March, 1))
	end := date(2024, time.March, 10)
	seedSubscription(t, db, node, func(s *subscriptiondomain.Subscription) {
		s.EndDate = &end
	})

	first, err := svc.Generate(context.Background())
	require.NoError(t, err)
	require.Equal(t, 10, first.OrdersCreated)

	second, err := svc.Generate(context.Background())
	require.NoError(t, err)
	require.True(t, second.Success)
	require.Equal(t, 0, second.OrdersCreated)
	require.Equal(t, 1, second.SubscriptionsProcessed)

	var count int64
	require.NoError(t, db.Model(&orderdomain.Order{}).Count(&count).Error)
	require.Equal(t, int64(10), count)
}

func TestGenerateBackfillsOnlyMissingDates(t *testing.T) {
	svc, db, node := newTestService(t, date(2024, time.March, 1))
	end := date(2024, time.March, 4)
	seedSubscription(t, db, node, func(s *subscriptiondomain.Subscription) {
		s.EndDate = &end
	})

	first, err := svc.Generate(context.Background())
	require.NoError(t, err)
	require.Equal(t, 4, first.OrdersCreated)

	// The window moves forward; only the new dates get materialized.
	svc.clock = clock.Fixed(date(2024, time.March, 3))
	end2 := date(2024, time.March, 6)
	require.NoError(t, db.Model(&subscriptiondomain.Subscription{}).
		Where("1 = 1").Update("end_date", end2).Error)

	second, err := svc.Generate(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, second.OrdersCreated)
}

func TestGenerateIsolatesBadSubscriptions(t *testing.T) {
	svc, db, node := newTestService(t, date(2024, time.March, 1))
	end := date(2024, time.March, 3)
	bad := seedSubscription(t, db, node, func(s *subscriptiondomain.Subscription) {
		s.Frequency = subscriptiondomain.Frequency("fortnightly")
		s.EndDate = &end
	})
	good := seedSubscription(t, db, node, func(s *subscriptiondomain.Subscription) {
		s.EndDate = &end
	})

	result, err := svc.Generate(context.Background())
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Equal(t, 2, result.SubscriptionsProcessed)
	require.Equal(t, 3, result.OrdersCreated)
	require.Len(t, result.Errors, 1)
	require.Contains(t, result.Errors[0], bad.ID.String())

	var count int64
	require.NoError(t, db.Model(&orderdomain.Order{}).
		Where("subscription_id = ?", good.ID).Count(&count).Error)
	require.Equal(t, int64(3), count)
}

func TestGenerateSkipsPausedAndCancelled(t *testing.T) {
	svc, db, node := newTestService(t, date(2024, time.March, 1))
	end := date(2024, time.March, 3)
	seedSubscription(t, db, node, func(s *subscriptiondomain.Subscription) {
		s.Status = subscriptiondomain.SubscriptionStatusPaused
		s.EndDate = &end
	})
	seedSubscription(t, db, node, func(s *subscriptiondomain.Subscription) {
		s.Status = subscriptiondomain.SubscriptionStatusCancelled
		s.EndDate = &end
	})

	result, err := svc.Generate(context.Background())
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Equal(t, 0, result.SubscriptionsProcessed)
	require.Equal(t, 0, result.OrdersCreated)
}

func TestGenerateSuppressesPauseWindowDates(t *testing.T) {
	svc, db, node := newTestService(t, date(2024, time.March, 1))
	end := date(2024, time.March, 7)
	pausedFrom := date(2024, time.March, 3)
	pausedUntil := date(2024, time.March, 5)
	sub := seedSubscription(t, db, node, func(s *subscriptiondomain.Subscription) {
		s.EndDate = &end
		s.PausedFrom = &pausedFrom
		s.PausedUntil = &pausedUntil
	})

	result, err := svc.Generate(context.Background())
	require.NoError(t, err)
	require.Equal(t, 4, result.OrdersCreated)

	var count int64
	require.NoError(t, db.Model(&orderdomain.Order{}).
		Where("subscription_id = ? AND order_date BETWEEN ? AND ?", sub.ID, pausedFrom, pausedUntil).
		Count(&count).Error)
	require.Equal(t, int64(0), count)
}
