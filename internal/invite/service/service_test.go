package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/deliverlylabs/deliverly/internal/clock"
	"github.com/deliverlylabs/deliverly/internal/config"
	customerdomain "github.com/deliverlylabs/deliverly/internal/customer/domain"
	customerrepo "github.com/deliverlylabs/deliverly/internal/customer/repository"
	"github.com/deliverlylabs/deliverly/internal/invite/domain"
	"github.com/deliverlylabs/deliverly/internal/invite/repository"
	vendordomain "github.com/deliverlylabs/deliverly/internal/vendors/domain"
	vendorrepo "github.com/deliverlylabs/deliverly/internal/vendors/repository"
)

type fixture struct {
	svc      *Service
	db       *gorm.DB
	redis    *miniredis.Miniredis
	node     *snowflake.Node
	vendor   vendordomain.Vendor
	customer customerdomain.Customer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&vendordomain.Vendor{},
		&customerdomain.Customer{},
		&domain.Connection{},
	))

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	now := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)

	f := &fixture{
		db:    db,
		redis: mr,
		node:  node,
		svc: &Service{
			db:    db,
			log:   zap.NewNop(),
			genID: node,
			clock: clock.Fixed(now),
			redis: client,
			cfg: config.InviteConfig{
				TTL:     time.Hour,
				BaseURL: "https://app.example.com",
			},
			connections:  repository.ProvideConnection(),
			vendorRepo:   vendorrepo.Provide(),
			customerRepo: customerrepo.Provide(),
		},
	}

	f.vendor = vendordomain.Vendor{
		ID: node.Generate(), Name: "Gokul Dairy", Slug: "gokul-dairy", Phone: "9800000001",
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, db.Create(&f.vendor).Error)

	f.customer = customerdomain.Customer{
		ID: node.Generate(), Name: "Asha", Phone: "9800000002",
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, db.Create(&f.customer).Error)

	return f
}

func TestIssueStoresCodeWithTTL(t *testing.T) {
	f := newFixture(t)

	invite, err := f.svc.Issue(context.Background(), f.vendor.ID.String())
	require.NoError(t, err)
	require.NotEmpty(t, invite.Code)
	require.Equal(t, f.vendor.ID.String(), invite.VendorID)
	require.Contains(t, invite.URL, "/connect/"+invite.Code)

	stored, err := f.redis.Get(codeKeyPrefix + invite.Code)
	require.NoError(t, err)
	require.Equal(t, f.vendor.ID.String(), stored)
	require.Equal(t, time.Hour, f.redis.TTL(codeKeyPrefix+invite.Code))
}

func TestIssueUnknownVendor(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Issue(context.Background(), f.node.Generate().String())
	require.ErrorIs(t, err, vendordomain.ErrVendorNotFound)
}

func TestRedeemConnectsCustomer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	invite, err := f.svc.Issue(ctx, f.vendor.ID.String())
	require.NoError(t, err)

	connection, err := f.svc.Redeem(ctx, invite.Code, f.customer.ID.String())
	require.NoError(t, err)
	require.Equal(t, f.vendor.ID, connection.VendorID)
	require.Equal(t, f.customer.ID, connection.CustomerID)

	// The code is one-shot.
	_, err = f.svc.Redeem(ctx, invite.Code, f.customer.ID.String())
	require.ErrorIs(t, err, domain.ErrInviteNotFound)
}

func TestRedeemExpiredCode(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	invite, err := f.svc.Issue(ctx, f.vendor.ID.String())
	require.NoError(t, err)

	f.redis.FastForward(2 * time.Hour)

	_, err = f.svc.Redeem(ctx, invite.Code, f.customer.ID.String())
	require.ErrorIs(t, err, domain.ErrInviteNotFound)
}

func TestRedeemTwiceForSameVendor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.Issue(ctx, f.vendor.ID.String())
	require.NoError(t, err)
	_, err = f.svc.Redeem(ctx, first.Code, f.customer.ID.String())
	require.NoError(t, err)

	second, err := f.svc.Issue(ctx, f.vendor.ID.String())
	require.NoError(t, err)
	_, err = f.svc.Redeem(ctx, second.Code, f.customer.ID.String())
	require.ErrorIs(t, err, domain.ErrAlreadyConnected)
}
