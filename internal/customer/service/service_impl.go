package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/deliverlylabs/deliverly/internal/clock"
	customerdomain "github.com/deliverlylabs/deliverly/internal/customer/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  customerdomain.Repository
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  customerdomain.Repository
}

func NewService(p ServiceParam) customerdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("customer.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req customerdomain.CreateCustomerRequest) (customerdomain.Customer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return customerdomain.Customer{}, customerdomain.ErrInvalidName
	}
	phone := strings.TrimSpace(req.Phone)
	if phone == "" {
		return customerdomain.Customer{}, customerdomain.ErrInvalidPhone
	}

	now := s.clock.Now(ctx)
	customer := customerdomain.Customer{
		ID:        s.genID.Generate(),
		Name:      name,
		Phone:     phone,
		Address:   strings.TrimSpace(req.Address),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if areaID := strings.TrimSpace(req.AreaID); areaID != "" {
		parsed, err := snowflake.ParseString(areaID)
		if err != nil {
			return customerdomain.Customer{}, customerdomain.ErrInvalidCustomer
		}
		customer.AreaID = &parsed
	}
	if societyID := strings.TrimSpace(req.SocietyID); societyID != "" {
		parsed, err := snowflake.ParseString(societyID)
		if err != nil {
			return customerdomain.Customer{}, customerdomain.ErrInvalidCustomer
		}
		customer.SocietyID = &parsed
	}

	if err := s.repo.Insert(ctx, s.db, &customer); err != nil {
		return customerdomain.Customer{}, err
	}

	s.log.Info("customer created", zap.String("customer_id", customer.ID.String()))
	return customer, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (customerdomain.Customer, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return customerdomain.Customer{}, customerdomain.ErrInvalidCustomer
	}

	customer, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return customerdomain.Customer{}, err
	}
	if customer == nil {
		return customerdomain.Customer{}, customerdomain.ErrCustomerNotFound
	}
	return *customer, nil
}

func (s *Service) ListByVendor(ctx context.Context, vendorID string) ([]customerdomain.Customer, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(vendorID))
	if err != nil {
		return nil, customerdomain.ErrInvalidCustomer
	}
	return s.repo.ListByVendor(ctx, s.db, parsed)
}
