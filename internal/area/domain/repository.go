package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	InsertArea(ctx context.Context, db *gorm.DB, area *Area) error
	InsertSociety(ctx context.Context, db *gorm.DB, society *Society) error
	FindAreaByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Area, error)
	ListAreas(ctx context.Context, db *gorm.DB, city string) ([]Area, error)
	ListSocieties(ctx context.Context, db *gorm.DB, areaID snowflake.ID) ([]Society, error)
}

type Service interface {
	CreateArea(ctx context.Context, name, city string) (Area, error)
	CreateSociety(ctx context.Context, areaID, name string) (Society, error)
	ListAreas(ctx context.Context, city string) ([]Area, error)
	ListSocieties(ctx context.Context, areaID string) ([]Society, error)
}
