// Package scheduler runs the recurring background jobs.
package scheduler

import (
	"context"
	"time"

	"github.com/deliverlylabs/deliverly/internal/config"
	ordergendomain "github.com/deliverlylabs/deliverly/internal/ordergen/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Scheduler struct {
	log      *zap.Logger
	interval time.Duration
	ordergen ordergendomain.Service
}

type SchedulerParam struct {
	fx.In

	Log      *zap.Logger
	Config   config.Config
	Ordergen ordergendomain.Service
}

func New(p SchedulerParam) *Scheduler {
	return &Scheduler{
		log:      p.Log.Named("scheduler"),
		interval: p.Config.Scheduler.GenerateOrdersInterval,
		ordergen: p.Ordergen,
	}
}

// RunForever ticks the order-generation job until ctx is cancelled. The job
// is idempotent, so a tick that overlaps a manual trigger only costs a few
// no-op queries.
func (s *Scheduler) RunForever(ctx context.Context) {
	interval := s.interval
	if interval <= 0 {
		interval = time.Hour
	}

	s.runGenerateOrders(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopped")
			return
		case <-ticker.C:
			s.runGenerateOrders(ctx)
		}
	}
}

func (s *Scheduler) runGenerateOrders(ctx context.Context) {
	start := time.Now()
	result, err := s.ordergen.Generate(ctx)
	latency := time.Since(start)
	if err != nil {
		s.log.Error("generate_orders failed",
			zap.Error(err),
			zap.Duration("latency", latency),
		)
		return
	}
	s.log.Info("generate_orders completed",
		zap.Int("orders_created", result.OrdersCreated),
		zap.Int("subscriptions_processed", result.SubscriptionsProcessed),
		zap.Int("errors", len(result.Errors)),
		zap.Duration("latency", latency),
	)
}
