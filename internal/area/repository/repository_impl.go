package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	areadomain "github.com/deliverlylabs/deliverly/internal/area/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() areadomain.Repository {
	return &repo{}
}

func (r *repo) InsertArea(ctx context.Context, db *gorm.DB, area *areadomain.Area) error {
	return db.WithContext(ctx).Create(area).Error
}

func (r *repo) InsertSociety(ctx context.Context, db *gorm.DB, society *areadomain.Society) error {
	return db.WithContext(ctx).Create(society).Error
}

func (r *repo) FindAreaByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*areadomain.Area, error) {
	var area areadomain.Area
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, city, created_at FROM areas WHERE id = ?`, id,
	).Scan(&area).Error
	if err != nil {
		return nil, err
	}
	if area.ID == 0 {
		return nil, nil
	}
	return &area, nil
}

func (r *repo) ListAreas(ctx context.Context, db *gorm.DB, city string) ([]areadomain.Area, error) {
	var areas []areadomain.Area
	query := db.WithContext(ctx).Model(&areadomain.Area{})
	if city != "" {
		query = query.Where("city = ?", city)
	}
	if err := query.Order("name ASC").Find(&areas).Error; err != nil {
		return nil, err
	}
	return areas, nil
}

func (r *repo) ListSocieties(ctx context.Context, db *gorm.DB, areaID snowflake.ID) ([]areadomain.Society, error) {
	var societies []areadomain.Society
	err := db.WithContext(ctx).
		Where("area_id = ?", areaID).
		Order("name ASC").
		Find(&societies).Error
	if err != nil {
		return nil, err
	}
	return societies, nil
}
