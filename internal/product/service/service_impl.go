package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/deliverlylabs/deliverly/internal/clock"
	productdomain "github.com/deliverlylabs/deliverly/internal/product/domain"
	vendordomain "github.com/deliverlylabs/deliverly/internal/vendors/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  productdomain.Repository

	vendorRepo vendordomain.Repository
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  productdomain.Repository

	VendorRepo vendordomain.Repository
}

func NewService(p ServiceParam) productdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("product.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,

		vendorRepo: p.VendorRepo,
	}
}

func (s *Service) Create(ctx context.Context, req productdomain.CreateProductRequest) (productdomain.Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return productdomain.Product{}, productdomain.ErrInvalidName
	}
	unit := strings.TrimSpace(req.Unit)
	if unit == "" {
		return productdomain.Product{}, productdomain.ErrInvalidUnit
	}
	if req.Price <= 0 {
		return productdomain.Product{}, productdomain.ErrInvalidPrice
	}

	vendorID, err := snowflake.ParseString(strings.TrimSpace(req.VendorID))
	if err != nil {
		return productdomain.Product{}, productdomain.ErrInvalidProduct
	}
	vendor, err := s.vendorRepo.FindByID(ctx, s.db, vendorID)
	if err != nil {
		return productdomain.Product{}, err
	}
	if vendor == nil {
		return productdomain.Product{}, vendordomain.ErrVendorNotFound
	}

	now := s.clock.Now(ctx)
	product := productdomain.Product{
		ID:        s.genID.Generate(),
		VendorID:  vendor.ID,
		Name:      name,
		Unit:      unit,
		Price:     req.Price,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, s.db, &product); err != nil {
		return productdomain.Product{}, err
	}

	s.log.Info("product created",
		zap.String("product_id", product.ID.String()),
		zap.String("vendor_id", product.VendorID.String()),
	)
	return product, nil
}

// Update changes the live catalog entry. Subscription snapshots are not
// touched; new pricing only applies to subscriptions created afterwards.
func (s *Service) Update(ctx context.Context, req productdomain.UpdateProductRequest) (productdomain.Product, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(req.ProductID))
	if err != nil {
		return productdomain.Product{}, productdomain.ErrInvalidProduct
	}

	product, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return productdomain.Product{}, err
	}
	if product == nil {
		return productdomain.Product{}, productdomain.ErrProductNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return productdomain.Product{}, productdomain.ErrInvalidName
		}
		product.Name = name
	}
	if req.Unit != nil {
		unit := strings.TrimSpace(*req.Unit)
		if unit == "" {
			return productdomain.Product{}, productdomain.ErrInvalidUnit
		}
		product.Unit = unit
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return productdomain.Product{}, productdomain.ErrInvalidPrice
		}
		product.Price = *req.Price
	}
	if req.Active != nil {
		product.Active = *req.Active
	}
	product.UpdatedAt = s.clock.Now(ctx)

	if err := s.repo.Update(ctx, s.db, product); err != nil {
		return productdomain.Product{}, err
	}
	return *product, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (productdomain.Product, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return productdomain.Product{}, productdomain.ErrInvalidProduct
	}

	product, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return productdomain.Product{}, err
	}
	if product == nil {
		return productdomain.Product{}, productdomain.ErrProductNotFound
	}
	return *product, nil
}

func (s *Service) ListByVendor(ctx context.Context, vendorID string, activeOnly bool) ([]productdomain.Product, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(vendorID))
	if err != nil {
		return nil, productdomain.ErrInvalidProduct
	}
	return s.repo.ListByVendor(ctx, s.db, parsed, activeOnly)
}
