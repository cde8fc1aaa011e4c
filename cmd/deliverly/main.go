package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/deliverlylabs/deliverly/internal/area"
	"github.com/deliverlylabs/deliverly/internal/clock"
	"github.com/deliverlylabs/deliverly/internal/config"
	"github.com/deliverlylabs/deliverly/internal/customer"
	"github.com/deliverlylabs/deliverly/internal/invite"
	"github.com/deliverlylabs/deliverly/internal/migration"
	"github.com/deliverlylabs/deliverly/internal/observability"
	"github.com/deliverlylabs/deliverly/internal/order"
	"github.com/deliverlylabs/deliverly/internal/ordergen"
	ordergendomain "github.com/deliverlylabs/deliverly/internal/ordergen/domain"
	"github.com/deliverlylabs/deliverly/internal/product"
	"github.com/deliverlylabs/deliverly/internal/redis"
	"github.com/deliverlylabs/deliverly/internal/scheduler"
	"github.com/deliverlylabs/deliverly/internal/server"
	"github.com/deliverlylabs/deliverly/internal/sms"
	"github.com/deliverlylabs/deliverly/internal/subscription"
	"github.com/deliverlylabs/deliverly/internal/vendors"
	"github.com/deliverlylabs/deliverly/pkg/db"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "deliverly",
		Short:   "Deliverly CLI",
		Version: readVersionFromEnv(),
	}
	root.AddCommand(newMigrateCmd(), newServeCmd(), newSchedulerCmd(), newGenerateOrdersCmd(), newAllCmd())
	return root
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate()
		},
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			runServe()
			return nil
		},
	}
}

func newSchedulerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scheduler",
		Short: "Run background scheduler workers",
		RunE: func(cmd *cobra.Command, args []string) error {
			runScheduler()
			return nil
		},
	}
}

func newGenerateOrdersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate-orders",
		Short: "Run the order-generation job once and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerateOrders()
		},
	}
}

func newAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Run migrations, then start the API server and scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runMigrate(); err != nil {
				return err
			}
			runMonolith()
			return nil
		},
	}
}

func domainModules() fx.Option {
	return fx.Options(
		area.Module,
		vendors.Module,
		customer.Module,
		product.Module,
		subscription.Module,
		order.Module,
		ordergen.Module,
		invite.Module,
		sms.Module,
	)
}

func runMigrate() error {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		migration.Module,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("migrate failed: %w", err)
	}
	_ = app.Stop(context.Background())
	return nil
}

func runServe() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		clock.Module,
		redis.Module,
		domainModules(),
		server.Module,
	)
	app.Run()
}

func runScheduler() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		clock.Module,
		redis.Module,
		domainModules(),
		scheduler.Module,
		fx.Invoke(startScheduler),
	)
	app.Run()
}

func runGenerateOrders() error {
	var result ordergendomain.Result
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		clock.Module,
		redis.Module,
		domainModules(),
		fx.Invoke(func(svc ordergendomain.Service) error {
			var err error
			result, err = svc.Generate(context.Background())
			return err
		}),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("generate orders failed: %w", err)
	}
	_ = app.Stop(context.Background())

	fmt.Printf("orders created: %d, subscriptions processed: %d, errors: %d\n",
		result.OrdersCreated, result.SubscriptionsProcessed, len(result.Errors))
	return nil
}

func runMonolith() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		clock.Module,
		redis.Module,
		domainModules(),
		server.Module,
		scheduler.Module,
		fx.Invoke(startScheduler),
	)
	app.Run()
}

func registerSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}

func readVersionFromEnv() string {
	if v := strings.TrimSpace(os.Getenv("APP_VERSION")); v != "" {
		return v
	}
	return "dev"
}

func startScheduler(lc fx.Lifecycle, s *scheduler.Scheduler) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go s.RunForever(context.Background())
			return nil
		},
	})
}
