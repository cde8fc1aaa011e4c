package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/deliverlylabs/deliverly/internal/clock"
	vendordomain "github.com/deliverlylabs/deliverly/internal/vendors/domain"
	"github.com/gosimple/slug"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  vendordomain.Repository
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  vendordomain.Repository
}

func NewService(p ServiceParam) vendordomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("vendor.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req vendordomain.CreateVendorRequest) (vendordomain.Vendor, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return vendordomain.Vendor{}, vendordomain.ErrInvalidName
	}
	phone := strings.TrimSpace(req.Phone)
	if phone == "" {
		return vendordomain.Vendor{}, vendordomain.ErrInvalidPhone
	}

	vendorSlug := slug.Make(name)
	existing, err := s.repo.FindBySlug(ctx, s.db, vendorSlug)
	if err != nil {
		return vendordomain.Vendor{}, err
	}
	if existing != nil {
		return vendordomain.Vendor{}, vendordomain.ErrSlugTaken
	}

	now := s.clock.Now(ctx)
	vendor := vendordomain.Vendor{
		ID:        s.genID.Generate(),
		Name:      name,
		Slug:      vendorSlug,
		Phone:     phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if email := strings.TrimSpace(req.Email); email != "" {
		vendor.Email = &email
	}
	if areaID := strings.TrimSpace(req.AreaID); areaID != "" {
		parsed, err := snowflake.ParseString(areaID)
		if err != nil {
			return vendordomain.Vendor{}, vendordomain.ErrInvalidVendor
		}
		vendor.AreaID = &parsed
	}

	if err := s.repo.Insert(ctx, s.db, &vendor); err != nil {
		return vendordomain.Vendor{}, err
	}

	s.log.Info("vendor created",
		zap.String("vendor_id", vendor.ID.String()),
		zap.String("slug", vendor.Slug),
	)
	return vendor, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (vendordomain.Vendor, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return vendordomain.Vendor{}, vendordomain.ErrInvalidVendor
	}

	vendor, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return vendordomain.Vendor{}, err
	}
	if vendor == nil {
		return vendordomain.Vendor{}, vendordomain.ErrVendorNotFound
	}
	return *vendor, nil
}

func (s *Service) GetBySlug(ctx context.Context, vendorSlug string) (vendordomain.Vendor, error) {
	vendorSlug = strings.TrimSpace(vendorSlug)
	if vendorSlug == "" {
		return vendordomain.Vendor{}, vendordomain.ErrInvalidVendor
	}

	vendor, err := s.repo.FindBySlug(ctx, s.db, vendorSlug)
	if err != nil {
		return vendordomain.Vendor{}, err
	}
	if vendor == nil {
		return vendordomain.Vendor{}, vendordomain.ErrVendorNotFound
	}
	return *vendor, nil
}

func (s *Service) List(ctx context.Context, areaID string) ([]vendordomain.Vendor, error) {
	var filter *snowflake.ID
	if areaID = strings.TrimSpace(areaID); areaID != "" {
		parsed, err := snowflake.ParseString(areaID)
		if err != nil {
			return nil, vendordomain.ErrInvalidVendor
		}
		filter = &parsed
	}
	return s.repo.List(ctx, s.db, filter)
}
