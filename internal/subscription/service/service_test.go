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
	customerdomain "github.com/deliverlylabs/deliverly/internal/customer/domain"
	customerrepo "github.com/deliverlylabs/deliverly/internal/customer/repository"
	productdomain "github.com/deliverlylabs/deliverly/internal/product/domain"
	productrepo "github.com/deliverlylabs/deliverly/internal/product/repository"
	subscriptiondomain "github.com/deliverlylabs/deliverly/internal/subscription/domain"
	"github.com/deliverlylabs/deliverly/internal/subscription/repository"
	vendordomain "github.com/deliverlylabs/deliverly/internal/vendors/domain"
	vendorrepo "github.com/deliverlylabs/deliverly/internal/vendors/repository"
)

type fixture struct {
	svc      *Service
	db       *gorm.DB
	node     *snowflake.Node
	customer customerdomain.Customer
	vendor   vendordomain.Vendor
	product  productdomain.Product
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&customerdomain.Customer{},
		&vendordomain.Vendor{},
		&productdomain.Product{},
		&subscriptiondomain.Subscription{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	now := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)

	f := &fixture{
		db:   db,
		node: node,
		svc: &Service{
			db:           db,
			log:          zap.NewNop(),
			genID:        node,
			clock:        clock.Fixed(now),
			repo:         repository.Provide(),
			customerRepo: customerrepo.Provide(),
			vendorRepo:   vendorrepo.Provide(),
			productRepo:  productrepo.Provide(),
		},
	}

	f.customer = customerdomain.Customer{
		ID: node.Generate(), Name: "Asha", Phone: "9800000001",
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, db.Create(&f.customer).Error)

	f.vendor = vendordomain.Vendor{
		ID: node.Generate(), Name: "Gokul Dairy", Slug: "gokul-dairy", Phone: "9800000002",
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, db.Create(&f.vendor).Error)

	f.product = productdomain.Product{
		ID: node.Generate(), VendorID: f.vendor.ID, Name: "Cow Milk", Unit: "liter",
		Price: 27.5, Active: true, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, db.Create(&f.product).Error)

	return f
}

func (f *fixture) createRequest() subscriptiondomain.CreateSubscriptionRequest {
	return subscriptiondomain.CreateSubscriptionRequest{
		CustomerID: f.customer.ID.String(),
		VendorID:   f.vendor.ID.String(),
		ProductID:  f.product.ID.String(),
		Frequency:  "daily",
		StartDate:  time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC),
		Quantity:   2,
	}
}

func TestCreateSnapshotsProductTerms(t *testing.T) {
	f := newFixture(t)

	sub, err := f.svc.Create(context.Background(), f.createRequest())
	require.NoError(t, err)
	require.Equal(t, subscriptiondomain.SubscriptionStatusActive, sub.Status)
	require.Equal(t, "liter", sub.Unit)
	require.Equal(t, 27.5, sub.PricePerUnit)

	// Catalog price changes never rewrite the snapshot.
	require.NoError(t, f.db.Model(&productdomain.Product{}).
		Where("id = ?", f.product.ID).Update("price", 99.0).Error)

	reloaded, err := f.svc.GetByID(context.Background(), sub.ID.String())
	require.NoError(t, err)
	require.Equal(t, 27.5, reloaded.PricePerUnit)
}

func TestCreateValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := f.createRequest()
	req.Frequency = "hourly"
	_, err := f.svc.Create(ctx, req)
	require.ErrorIs(t, err, subscriptiondomain.ErrInvalidFrequency)

	req = f.createRequest()
	req.Quantity = 0
	_, err = f.svc.Create(ctx, req)
	require.ErrorIs(t, err, subscriptiondomain.ErrInvalidQuantity)

	req = f.createRequest()
	end := req.StartDate.AddDate(0, 0, -1)
	req.EndDate = &end
	_, err = f.svc.Create(ctx, req)
	require.ErrorIs(t, err, subscriptiondomain.ErrInvalidDateRange)

	req = f.createRequest()
	req.CustomerID = f.node.Generate().String()
	_, err = f.svc.Create(ctx, req)
	require.ErrorIs(t, err, customerdomain.ErrCustomerNotFound)
}

func TestCreateRejectsInactiveProduct(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.db.Model(&productdomain.Product{}).
		Where("id = ?", f.product.ID).Update("active", false).Error)

	_, err := f.svc.Create(context.Background(), f.createRequest())
	require.ErrorIs(t, err, subscriptiondomain.ErrProductInactive)
}

func TestCreateRejectsProductOfAnotherVendor(t *testing.T) {
	f := newFixture(t)

	other := vendordomain.Vendor{
		ID: f.node.Generate(), Name: "Other", Slug: "other", Phone: "9800000003",
		CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC(),
	}
	require.NoError(t, f.db.Create(&other).Error)

	req := f.createRequest()
	req.VendorID = other.ID.String()
	_, err := f.svc.Create(context.Background(), req)
	require.ErrorIs(t, err, subscriptiondomain.ErrInvalidProduct)
}

func TestStatusTransitions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sub, err := f.svc.Create(ctx, f.createRequest())
	require.NoError(t, err)
	id := sub.ID.String()

	// active -> active is not a transition.
	require.ErrorIs(t, f.svc.Resume(ctx, id), subscriptiondomain.ErrInvalidTransition)

	require.NoError(t, f.svc.Pause(ctx, id))
	require.ErrorIs(t, f.svc.Pause(ctx, id), subscriptiondomain.ErrInvalidTransition)

	require.NoError(t, f.svc.Resume(ctx, id))
	require.NoError(t, f.svc.Cancel(ctx, id))

	// cancelled is terminal.
	require.ErrorIs(t, f.svc.Resume(ctx, id), subscriptiondomain.ErrInvalidTransition)
	require.ErrorIs(t, f.svc.Pause(ctx, id), subscriptiondomain.ErrInvalidTransition)
}

func TestUpdatesStampClockTime(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	now := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)

	sub, err := f.svc.Create(ctx, f.createRequest())
	require.NoError(t, err)

	require.NoError(t, f.svc.Pause(ctx, sub.ID.String()))
	paused, err := f.svc.GetByID(ctx, sub.ID.String())
	require.NoError(t, err)
	require.True(t, paused.UpdatedAt.Equal(now))

	windowed, err := f.svc.SetPauseWindow(ctx, subscriptiondomain.PauseWindowRequest{
		SubscriptionID: sub.ID.String(),
		PausedFrom:     time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
		PausedUntil:    time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	stored, err := f.svc.GetByID(ctx, windowed.ID.String())
	require.NoError(t, err)
	require.True(t, stored.UpdatedAt.Equal(now))
}

func TestPauseWindowLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sub, err := f.svc.Create(ctx, f.createRequest())
	require.NoError(t, err)

	updated, err := f.svc.SetPauseWindow(ctx, subscriptiondomain.PauseWindowRequest{
		SubscriptionID: sub.ID.String(),
		PausedFrom:     time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
		PausedUntil:    time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.PausedFrom)
	require.NotNil(t, updated.PausedUntil)
	// Status stays active; the window is independent of the status machine.
	require.Equal(t, subscriptiondomain.SubscriptionStatusActive, updated.Status)

	cleared, err := f.svc.ClearPauseWindow(ctx, sub.ID.String())
	require.NoError(t, err)
	require.Nil(t, cleared.PausedFrom)
	require.Nil(t, cleared.PausedUntil)
}

func TestPauseWindowValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sub, err := f.svc.Create(ctx, f.createRequest())
	require.NoError(t, err)

	_, err = f.svc.SetPauseWindow(ctx, subscriptiondomain.PauseWindowRequest{
		SubscriptionID: sub.ID.String(),
		PausedFrom:     time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
		PausedUntil:    time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
	})
	require.ErrorIs(t, err, subscriptiondomain.ErrInvalidPauseWindow)

	require.NoError(t, f.svc.Cancel(ctx, sub.ID.String()))
	_, err = f.svc.SetPauseWindow(ctx, subscriptiondomain.PauseWindowRequest{
		SubscriptionID: sub.ID.String(),
		PausedFrom:     time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
		PausedUntil:    time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
	})
	require.ErrorIs(t, err, subscriptiondomain.ErrInvalidTransition)
}

func TestListFiltersAndPaginates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := f.svc.Create(ctx, f.createRequest())
		require.NoError(t, err)
	}

	resp, err := f.svc.List(ctx, subscriptiondomain.ListSubscriptionRequest{
		Status:   "active",
		PageSize: 2,
	})
	require.NoError(t, err)
	require.Len(t, resp.Subscriptions, 2)
	require.True(t, resp.PageInfo.HasMore)
	require.NotEmpty(t, resp.PageInfo.NextPageToken)

	_, err = f.svc.List(ctx, subscriptiondomain.ListSubscriptionRequest{Status: "bogus"})
	require.ErrorIs(t, err, subscriptiondomain.ErrInvalidStatus)
}
