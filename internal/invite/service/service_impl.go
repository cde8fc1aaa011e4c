package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/deliverlylabs/deliverly/internal/clock"
	"github.com/deliverlylabs/deliverly/internal/config"
	customerdomain "github.com/deliverlylabs/deliverly/internal/customer/domain"
	"github.com/deliverlylabs/deliverly/internal/invite/domain"
	vendordomain "github.com/deliverlylabs/deliverly/internal/vendors/domain"
)

const codeKeyPrefix = "invite:code:"

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	genID        *snowflake.Node
	clock        clock.Clock
	redis        *redis.Client
	cfg          config.InviteConfig
	connections  domain.ConnectionRepository
	vendorRepo   vendordomain.Repository
	customerRepo customerdomain.Repository
}

type ServiceParam struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	GenID        *snowflake.Node
	Clock        clock.Clock
	Redis        *redis.Client
	Config       config.Config
	Connections  domain.ConnectionRepository
	VendorRepo   vendordomain.Repository
	CustomerRepo customerdomain.Repository
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("invite.service"),
		genID:        p.GenID,
		clock:        p.Clock,
		redis:        p.Redis,
		cfg:          p.Config.Invite,
		connections:  p.Connections,
		vendorRepo:   p.VendorRepo,
		customerRepo: p.CustomerRepo,
	}
}

func (s *Service) Issue(ctx context.Context, vendorID string) (domain.Invite, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(vendorID))
	if err != nil {
		return domain.Invite{}, domain.ErrInvalidInvite
	}
	vendor, err := s.vendorRepo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Invite{}, err
	}
	if vendor == nil {
		return domain.Invite{}, vendordomain.ErrVendorNotFound
	}

	// The code is the compact hex of a random uuid; short enough for a QR
	// scan yet unguessable.
	code := strings.ReplaceAll(uuid.NewString(), "-", "")
	if err := s.redis.Set(ctx, codeKeyPrefix+code, vendor.ID.String(), s.cfg.TTL).Err(); err != nil {
		return domain.Invite{}, fmt.Errorf("store invite code: %w", err)
	}

	invite := domain.Invite{
		Code:      code,
		VendorID:  vendor.ID.String(),
		URL:       fmt.Sprintf("%s/connect/%s", strings.TrimRight(s.cfg.BaseURL, "/"), code),
		ExpiresAt: s.clock.Now(ctx).Add(s.cfg.TTL),
	}
	s.log.Info("invite issued", zap.String("vendor_id", invite.VendorID))
	return invite, nil
}

func (s *Service) Redeem(ctx context.Context, code, customerID string) (domain.Connection, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return domain.Connection{}, domain.ErrInvalidInvite
	}
	customerParsed, err := snowflake.ParseString(strings.TrimSpace(customerID))
	if err != nil {
		return domain.Connection{}, domain.ErrInvalidInvite
	}
	customer, err := s.customerRepo.FindByID(ctx, s.db, customerParsed)
	if err != nil {
		return domain.Connection{}, err
	}
	if customer == nil {
		return domain.Connection{}, customerdomain.ErrCustomerNotFound
	}

	// GetDel makes the code one-shot: concurrent redemptions race on the
	// delete and only one wins.
	vendorValue, err := s.redis.GetDel(ctx, codeKeyPrefix+code).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Connection{}, domain.ErrInviteNotFound
		}
		return domain.Connection{}, fmt.Errorf("redeem invite code: %w", err)
	}
	vendorID, err := snowflake.ParseString(vendorValue)
	if err != nil {
		return domain.Connection{}, domain.ErrInvalidInvite
	}

	existing, err := s.connections.Find(ctx, s.db, vendorID, customerParsed)
	if err != nil {
		return domain.Connection{}, err
	}
	if existing != nil {
		return domain.Connection{}, domain.ErrAlreadyConnected
	}

	connection := domain.Connection{
		ID:         s.genID.Generate(),
		VendorID:   vendorID,
		CustomerID: customerParsed,
		CreatedAt:  s.clock.Now(ctx),
	}
	if err := s.connections.Insert(ctx, s.db, &connection); err != nil {
		return domain.Connection{}, err
	}

	s.log.Info("invite redeemed",
		zap.String("vendor_id", vendorID.String()),
		zap.String("customer_id", customerParsed.String()),
	)
	return connection, nil
}
