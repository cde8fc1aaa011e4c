package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	customerdomain "github.com/deliverlylabs/deliverly/internal/customer/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() customerdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, customer *customerdomain.Customer) error {
	return db.WithContext(ctx).Create(customer).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*customerdomain.Customer, error) {
	var customer customerdomain.Customer
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, phone, address, area_id, society_id, created_at, updated_at
		 FROM customers WHERE id = ?`, id,
	).Scan(&customer).Error
	if err != nil {
		return nil, err
	}
	if customer.ID == 0 {
		return nil, nil
	}
	return &customer, nil
}

func (r *repo) FindByPhone(ctx context.Context, db *gorm.DB, phone string) (*customerdomain.Customer, error) {
	var customer customerdomain.Customer
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, phone, address, area_id, society_id, created_at, updated_at
		 FROM customers WHERE phone = ? LIMIT 1`, phone,
	).Scan(&customer).Error
	if err != nil {
		return nil, err
	}
	if customer.ID == 0 {
		return nil, nil
	}
	return &customer, nil
}

// ListByVendor returns customers connected to the vendor through a redeemed
// invite.
func (r *repo) ListByVendor(ctx context.Context, db *gorm.DB, vendorID snowflake.ID) ([]customerdomain.Customer, error) {
	var customers []customerdomain.Customer
	err := db.WithContext(ctx).Raw(
		`SELECT c.id, c.name, c.phone, c.address, c.area_id, c.society_id, c.created_at, c.updated_at
		 FROM customers c
		 JOIN vendor_connections vc ON vc.customer_id = c.id
		 WHERE vc.vendor_id = ?
		 ORDER BY c.created_at ASC`, vendorID,
	).Scan(&customers).Error
	if err != nil {
		return nil, err
	}
	return customers, nil
}
