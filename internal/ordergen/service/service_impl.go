package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/deliverlylabs/deliverly/internal/clock"
	"github.com/deliverlylabs/deliverly/internal/config"
	orderdomain "github.com/deliverlylabs/deliverly/internal/order/domain"
	ordergendomain "github.com/deliverlylabs/deliverly/internal/ordergen/domain"
	subscriptiondomain "github.com/deliverlylabs/deliverly/internal/subscription/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ordersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "deliverly_ordergen_orders_created_total",
		Help: "Orders materialized by the generation job.",
	})
	subscriptionsProcessedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "deliverly_ordergen_subscriptions_processed_total",
		Help: "Active subscriptions seen by the generation job.",
	})
	subscriptionErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "deliverly_ordergen_subscription_errors_total",
		Help: "Subscriptions skipped with an isolated error.",
	})
)

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock

	subscriptionRepo subscriptiondomain.Repository
	orderRepo        orderdomain.Repository

	horizonDays int
}

type ServiceParam struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	GenID  *snowflake.Node
	Clock  clock.Clock
	Config config.Config

	SubscriptionRepo subscriptiondomain.Repository
	OrderRepo        orderdomain.Repository
}

func NewService(p ServiceParam) ordergendomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("ordergen.service"),
		genID: p.GenID,
		clock: p.Clock,

		subscriptionRepo: p.SubscriptionRepo,
		orderRepo:        p.OrderRepo,

		horizonDays: p.Config.Scheduler.HorizonDays,
	}
}

func (s *Service) Expand(subscription subscriptiondomain.Subscription, referenceDate time.Time) ([]time.Time, error) {
	return expandSchedule(subscription, referenceDate, s.horizonDays)
}

// Generate runs the three-stage job: load active subscriptions, expand each
// schedule, materialize missing orders. Subscriptions are processed
// sequentially and in isolation; one bad subscription never aborts the run.
// Only a storage failure on the initial load is fatal.
func (s *Service) Generate(ctx context.Context) (ordergendomain.Result, error) {
	subscriptions, err := s.subscriptionRepo.ListActive(ctx, s.db)
	if err != nil {
		s.log.Error("loading active subscriptions failed", zap.Error(err))
		return ordergendomain.Result{Success: false}, err
	}

	referenceDate := s.clock.Now(ctx)
	result := ordergendomain.Result{
		Success:                true,
		SubscriptionsProcessed: len(subscriptions),
	}

	for _, subscription := range subscriptions {
		created, err := s.materialize(ctx, subscription, referenceDate)
		if err != nil {
			subscriptionErrorsTotal.Inc()
			result.Errors = append(result.Errors,
				fmt.Sprintf("Subscription %s: %v", subscription.ID, err))
			s.log.Warn("subscription skipped",
				zap.String("subscription_id", subscription.ID.String()),
				zap.Error(err),
			)
			continue
		}
		result.OrdersCreated += created
	}

	subscriptionsProcessedTotal.Add(float64(result.SubscriptionsProcessed))
	ordersCreatedTotal.Add(float64(result.OrdersCreated))

	s.log.Info("order generation finished",
		zap.Int("subscriptions_processed", result.SubscriptionsProcessed),
		zap.Int("orders_created", result.OrdersCreated),
		zap.Int("errors", len(result.Errors)),
	)
	return result, nil
}

// materialize ensures an order row exists for every expanded date of one
// subscription. Dates already present are skipped, so re-running the job is
// additive only; the insert happens as one batch per subscription.
func (s *Service) materialize(ctx context.Context, subscription subscriptiondomain.Subscription, referenceDate time.Time) (int, error) {
	dates, err := expandSchedule(subscription, referenceDate, s.horizonDays)
	if err != nil {
		return 0, err
	}
	if len(dates) == 0 {
		return 0, nil
	}

	existing, err := s.orderRepo.ExistingDatesForSubscription(
		ctx, s.db, subscription.ID, dates[0], dates[len(dates)-1],
	)
	if err != nil {
		return 0, err
	}

	now := s.clock.Now(ctx)
	subscriptionID := subscription.ID
	orders := make([]orderdomain.Order, 0, len(dates))
	for _, date := range dates {
		if _, ok := existing[date]; ok {
			continue
		}
		orders = append(orders, orderdomain.Order{
			ID:             s.genID.Generate(),
			SubscriptionID: &subscriptionID,
			CustomerID:     subscription.CustomerID,
			VendorID:       subscription.VendorID,
			ProductID:      subscription.ProductID,
			OrderDate:      date,
			Quantity:       subscription.Quantity,
			Unit:           subscription.Unit,
			PricePerUnit:   subscription.PricePerUnit,
			TotalAmount:    subscription.Quantity * subscription.PricePerUnit,
			Status:         orderdomain.OrderStatusPending,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
	}
	if len(orders) == 0 {
		return 0, nil
	}

	if err := s.orderRepo.BulkInsert(ctx, s.db, orders); err != nil {
		return 0, err
	}
	return len(orders), nil
}
