package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	orderdomain "github.com/deliverlylabs/deliverly/internal/order/domain"
	"github.com/deliverlylabs/deliverly/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() orderdomain.Repository {
	return &repo{}
}

// BulkInsert writes all rows in a single statement. The generation job calls
// this once per subscription, which bounds round-trips to the number of
// active subscriptions.
func (r *repo) BulkInsert(ctx context.Context, db *gorm.DB, orders []orderdomain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&orders).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*orderdomain.Order, error) {
	var order orderdomain.Order
	err := db.WithContext(ctx).Raw(
		`SELECT id, subscription_id, customer_id, vendor_id, product_id, order_date,
		 quantity, unit, price_per_unit, total_amount, status, created_at, updated_at
		 FROM orders WHERE id = ?`, id,
	).Scan(&order).Error
	if err != nil {
		return nil, err
	}
	if order.ID == 0 {
		return nil, nil
	}
	return &order, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter orderdomain.ListFilter, page pagination.Pagination) ([]*orderdomain.Order, error) {
	var items []*orderdomain.Order

	query := db.WithContext(ctx).Model(&orderdomain.Order{})
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.VendorID != nil {
		query = query.Where("vendor_id = ?", *filter.VendorID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.DateFrom != nil {
		query = query.Where("order_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("order_date <= ?", *filter.DateTo)
	}

	query = query.Scopes(pagination.Apply(page))
	if page.PageToken != "" || page.PageSize > 0 {
		query = query.Order("created_at desc, id desc")
	} else {
		query = query.Order("order_date ASC")
	}

	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ExistingDatesForSubscription(ctx context.Context, db *gorm.DB, subscriptionID snowflake.ID, from, to time.Time) (map[time.Time]struct{}, error) {
	var dates []time.Time
	err := db.WithContext(ctx).
		Model(&orderdomain.Order{}).
		Where("subscription_id = ? AND order_date >= ? AND order_date <= ?", subscriptionID, from, to).
		Pluck("order_date", &dates).Error
	if err != nil {
		return nil, err
	}

	existing := make(map[time.Time]struct{}, len(dates))
	for _, d := range dates {
		d = d.UTC()
		key := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		existing[key] = struct{}{}
	}
	return existing, nil
}

func (r *repo) UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status orderdomain.OrderStatus, at time.Time) error {
	return db.WithContext(ctx).Exec(
		`UPDATE orders SET status = ?, updated_at = ? WHERE id = ?`,
		status,
		at,
		id,
	).Error
}
