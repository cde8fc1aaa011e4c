package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	productdomain "github.com/deliverlylabs/deliverly/internal/product/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() productdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, product *productdomain.Product) error {
	return db.WithContext(ctx).Create(product).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, product *productdomain.Product) error {
	return db.WithContext(ctx).Exec(
		`UPDATE products SET name = ?, unit = ?, price = ?, active = ?, updated_at = ?
		 WHERE id = ?`,
		product.Name,
		product.Unit,
		product.Price,
		product.Active,
		product.UpdatedAt,
		product.ID,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*productdomain.Product, error) {
	var product productdomain.Product
	err := db.WithContext(ctx).Raw(
		`SELECT id, vendor_id, name, unit, price, active, created_at, updated_at
		 FROM products WHERE id = ?`, id,
	).Scan(&product).Error
	if err != nil {
		return nil, err
	}
	if product.ID == 0 {
		return nil, nil
	}
	return &product, nil
}

func (r *repo) ListByVendor(ctx context.Context, db *gorm.DB, vendorID snowflake.ID, activeOnly bool) ([]productdomain.Product, error) {
	var products []productdomain.Product
	query := db.WithContext(ctx).Where("vendor_id = ?", vendorID)
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	if err := query.Order("created_at ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}
