package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/deliverlylabs/deliverly/internal/clock"
	orderdomain "github.com/deliverlylabs/deliverly/internal/order/domain"
	"github.com/deliverlylabs/deliverly/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
	repo  orderdomain.Repository
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
	Repo  orderdomain.Repository
}

func NewService(p ServiceParam) orderdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("order.service"),
		clock: p.Clock,
		repo:  p.Repo,
	}
}

// fulfillment transitions only; pending is the sole starting state and the
// two terminal states never move again.
var validTransitions = map[orderdomain.OrderStatus][]orderdomain.OrderStatus{
	orderdomain.OrderStatusPending: {
		orderdomain.OrderStatusDelivered,
		orderdomain.OrderStatusCancelled,
	},
	orderdomain.OrderStatusDelivered: {},
	orderdomain.OrderStatusCancelled: {},
}

func (s *Service) GetByID(ctx context.Context, id string) (orderdomain.Order, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return orderdomain.Order{}, orderdomain.ErrInvalidOrder
	}

	order, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return orderdomain.Order{}, err
	}
	if order == nil {
		return orderdomain.Order{}, orderdomain.ErrOrderNotFound
	}
	return *order, nil
}

func (s *Service) List(ctx context.Context, req orderdomain.ListOrderRequest) (orderdomain.ListOrderResponse, error) {
	filter := orderdomain.ListFilter{
		DateFrom: req.DateFrom,
		DateTo:   req.DateTo,
	}

	if req.CustomerID != "" {
		customerID, err := snowflake.ParseString(strings.TrimSpace(req.CustomerID))
		if err != nil {
			return orderdomain.ListOrderResponse{}, orderdomain.ErrInvalidOrder
		}
		filter.CustomerID = &customerID
	}
	if req.VendorID != "" {
		vendorID, err := snowflake.ParseString(strings.TrimSpace(req.VendorID))
		if err != nil {
			return orderdomain.ListOrderResponse{}, orderdomain.ErrInvalidOrder
		}
		filter.VendorID = &vendorID
	}
	if status := strings.TrimSpace(req.Status); status != "" {
		parsed := orderdomain.OrderStatus(status)
		switch parsed {
		case orderdomain.OrderStatusPending, orderdomain.OrderStatusDelivered, orderdomain.OrderStatusCancelled:
			filter.Status = &parsed
		default:
			return orderdomain.ListOrderResponse{}, orderdomain.ErrInvalidStatus
		}
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, filter, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return orderdomain.ListOrderResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(item *orderdomain.Order) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        item.ID.String(),
			CreatedAt: item.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	orders := make([]orderdomain.Order, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		orders = append(orders, *item)
	}

	resp := orderdomain.ListOrderResponse{Orders: orders}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}
	return resp, nil
}

func (s *Service) UpdateStatus(ctx context.Context, req orderdomain.UpdateOrderStatusRequest) (orderdomain.Order, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(req.OrderID))
	if err != nil {
		return orderdomain.Order{}, orderdomain.ErrInvalidOrder
	}

	target := orderdomain.OrderStatus(strings.TrimSpace(req.Status))
	switch target {
	case orderdomain.OrderStatusDelivered, orderdomain.OrderStatusCancelled:
	default:
		return orderdomain.Order{}, orderdomain.ErrInvalidStatus
	}

	order, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return orderdomain.Order{}, err
	}
	if order == nil {
		return orderdomain.Order{}, orderdomain.ErrOrderNotFound
	}

	allowed := false
	for _, status := range validTransitions[order.Status] {
		if status == target {
			allowed = true
			break
		}
	}
	if !allowed {
		return orderdomain.Order{}, orderdomain.ErrInvalidTransition
	}

	now := s.clock.Now(ctx)
	if err := s.repo.UpdateStatus(ctx, s.db, order.ID, target, now); err != nil {
		return orderdomain.Order{}, err
	}

	order.Status = target
	order.UpdatedAt = now
	return *order, nil
}
