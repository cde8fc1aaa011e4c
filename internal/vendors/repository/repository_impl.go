package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	vendordomain "github.com/deliverlylabs/deliverly/internal/vendors/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() vendordomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, vendor *vendordomain.Vendor) error {
	return db.WithContext(ctx).Create(vendor).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*vendordomain.Vendor, error) {
	var vendor vendordomain.Vendor
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, slug, phone, email, area_id, created_at, updated_at
		 FROM vendors WHERE id = ?`, id,
	).Scan(&vendor).Error
	if err != nil {
		return nil, err
	}
	if vendor.ID == 0 {
		return nil, nil
	}
	return &vendor, nil
}

func (r *repo) FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*vendordomain.Vendor, error) {
	var vendor vendordomain.Vendor
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, slug, phone, email, area_id, created_at, updated_at
		 FROM vendors WHERE slug = ? LIMIT 1`, slug,
	).Scan(&vendor).Error
	if err != nil {
		return nil, err
	}
	if vendor.ID == 0 {
		return nil, nil
	}
	return &vendor, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, areaID *snowflake.ID) ([]vendordomain.Vendor, error) {
	var vendors []vendordomain.Vendor
	query := db.WithContext(ctx).Model(&vendordomain.Vendor{})
	if areaID != nil {
		query = query.Where("area_id = ?", *areaID)
	}
	if err := query.Order("created_at ASC").Find(&vendors).Error; err != nil {
		return nil, err
	}
	return vendors, nil
}
