package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	areadomain "github.com/deliverlylabs/deliverly/internal/area/domain"
	"github.com/deliverlylabs/deliverly/internal/clock"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  areadomain.Repository
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  areadomain.Repository
}

func NewService(p ServiceParam) areadomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("area.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) CreateArea(ctx context.Context, name, city string) (areadomain.Area, error) {
	name = strings.TrimSpace(name)
	city = strings.TrimSpace(city)
	if name == "" || city == "" {
		return areadomain.Area{}, areadomain.ErrInvalidName
	}

	area := areadomain.Area{
		ID:        s.genID.Generate(),
		Name:      name,
		City:      city,
		CreatedAt: s.clock.Now(ctx),
	}
	if err := s.repo.InsertArea(ctx, s.db, &area); err != nil {
		return areadomain.Area{}, err
	}
	return area, nil
}

func (s *Service) CreateSociety(ctx context.Context, areaID, name string) (areadomain.Society, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return areadomain.Society{}, areadomain.ErrInvalidName
	}

	parsed, err := snowflake.ParseString(strings.TrimSpace(areaID))
	if err != nil {
		return areadomain.Society{}, areadomain.ErrAreaNotFound
	}

	area, err := s.repo.FindAreaByID(ctx, s.db, parsed)
	if err != nil {
		return areadomain.Society{}, err
	}
	if area == nil {
		return areadomain.Society{}, areadomain.ErrAreaNotFound
	}

	society := areadomain.Society{
		ID:        s.genID.Generate(),
		AreaID:    area.ID,
		Name:      name,
		CreatedAt: s.clock.Now(ctx),
	}
	if err := s.repo.InsertSociety(ctx, s.db, &society); err != nil {
		return areadomain.Society{}, err
	}
	return society, nil
}

func (s *Service) ListAreas(ctx context.Context, city string) ([]areadomain.Area, error) {
	return s.repo.ListAreas(ctx, s.db, strings.TrimSpace(city))
}

func (s *Service) ListSocieties(ctx context.Context, areaID string) ([]areadomain.Society, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(areaID))
	if err != nil {
		return nil, areadomain.ErrAreaNotFound
	}
	return s.repo.ListSocieties(ctx, s.db, parsed)
}
