package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/deliverlylabs/deliverly/internal/invite/domain"
)

type connectionRepo struct{}

func ProvideConnection() domain.ConnectionRepository {
	return &connectionRepo{}
}

func (r *connectionRepo) Insert(ctx context.Context, db *gorm.DB, connection *domain.Connection) error {
	return db.WithContext(ctx).Create(connection).Error
}

func (r *connectionRepo) Find(ctx context.Context, db *gorm.DB, vendorID, customerID snowflake.ID) (*domain.Connection, error) {
	var connection domain.Connection
	err := db.WithContext(ctx).
		Where("vendor_id = ? AND customer_id = ?", vendorID, customerID).
		First(&connection).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &connection, nil
}
