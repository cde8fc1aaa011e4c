package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/deliverlylabs/deliverly/internal/clock"
	customerdomain "github.com/deliverlylabs/deliverly/internal/customer/domain"
	productdomain "github.com/deliverlylabs/deliverly/internal/product/domain"
	subscriptiondomain "github.com/deliverlylabs/deliverly/internal/subscription/domain"
	vendordomain "github.com/deliverlylabs/deliverly/internal/vendors/domain"
	"github.com/deliverlylabs/deliverly/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  subscriptiondomain.Repository

	customerRepo customerdomain.Repository
	vendorRepo   vendordomain.Repository
	productRepo  productdomain.Repository
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  subscriptiondomain.Repository

	CustomerRepo customerdomain.Repository
	VendorRepo   vendordomain.Repository
	ProductRepo  productdomain.Repository
}

func NewService(p ServiceParam) subscriptiondomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("subscription.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,

		customerRepo: p.CustomerRepo,
		vendorRepo:   p.VendorRepo,
		productRepo:  p.ProductRepo,
	}
}

// validTransitions is the full status machine. Cancelled is terminal.
var validTransitions = map[subscriptiondomain.SubscriptionStatus][]subscriptiondomain.SubscriptionStatus{
	subscriptiondomain.SubscriptionStatusActive: {
		subscriptiondomain.SubscriptionStatusPaused,
		subscriptiondomain.SubscriptionStatusCancelled,
	},
	subscriptiondomain.SubscriptionStatusPaused: {
		subscriptiondomain.SubscriptionStatusActive,
		subscriptiondomain.SubscriptionStatusCancelled,
	},
	subscriptiondomain.SubscriptionStatusCancelled: {},
}

func canTransition(from, to subscriptiondomain.SubscriptionStatus) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func (s *Service) Create(ctx context.Context, req subscriptiondomain.CreateSubscriptionRequest) (subscriptiondomain.Subscription, error) {
	frequency := subscriptiondomain.Frequency(strings.ToLower(strings.TrimSpace(req.Frequency)))
	if !subscriptiondomain.ValidFrequency(frequency) {
		return subscriptiondomain.Subscription{}, subscriptiondomain.ErrInvalidFrequency
	}
	if req.Quantity <= 0 {
		return subscriptiondomain.Subscription{}, subscriptiondomain.ErrInvalidQuantity
	}
	if req.StartDate.IsZero() {
		return subscriptiondomain.Subscription{}, subscriptiondomain.ErrInvalidStartDate
	}
	if req.EndDate != nil && req.EndDate.Before(req.StartDate) {
		return subscriptiondomain.Subscription{}, subscriptiondomain.ErrInvalidDateRange
	}

	customerID, err := s.parseID(req.CustomerID, subscriptiondomain.ErrInvalidCustomer)
	if err != nil {
		return subscriptiondomain.Subscription{}, err
	}
	vendorID, err := s.parseID(req.VendorID, subscriptiondomain.ErrInvalidVendor)
	if err != nil {
		return subscriptiondomain.Subscription{}, err
	}
	productID, err := s.parseID(req.ProductID, subscriptiondomain.ErrInvalidProduct)
	if err != nil {
		return subscriptiondomain.Subscription{}, err
	}

	customer, err := s.customerRepo.FindByID(ctx, s.db, customerID)
	if err != nil {
		return subscriptiondomain.Subscription{}, err
	}
	if customer == nil {
		return subscriptiondomain.Subscription{}, customerdomain.ErrCustomerNotFound
	}

	vendor, err := s.vendorRepo.FindByID(ctx, s.db, vendorID)
	if err != nil {
		return subscriptiondomain.Subscription{}, err
	}
	if vendor == nil {
		return subscriptiondomain.Subscription{}, vendordomain.ErrVendorNotFound
	}

	product, err := s.productRepo.FindByID(ctx, s.db, productID)
	if err != nil {
		return subscriptiondomain.Subscription{}, err
	}
	if product == nil {
		return subscriptiondomain.Subscription{}, productdomain.ErrProductNotFound
	}
	if !product.Active {
		return subscriptiondomain.Subscription{}, subscriptiondomain.ErrProductInactive
	}
	if product.VendorID != vendor.ID {
		return subscriptiondomain.Subscription{}, subscriptiondomain.ErrInvalidProduct
	}

	now := s.clock.Now(ctx)
	subscription := subscriptiondomain.Subscription{
		ID:         s.genID.Generate(),
		CustomerID: customer.ID,
		VendorID:   vendor.ID,
		ProductID:  product.ID,
		Frequency:  frequency,
		StartDate:  truncateToDate(req.StartDate),
		Quantity:   req.Quantity,
		// Commercial terms are snapshotted here; later catalog price
		// changes must not affect this subscription.
		Unit:         product.Unit,
		PricePerUnit: product.Price,
		Status:       subscriptiondomain.SubscriptionStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if req.EndDate != nil {
		end := truncateToDate(*req.EndDate)
		subscription.EndDate = &end
	}

	if err := s.repo.Insert(ctx, s.db, &subscription); err != nil {
		return subscriptiondomain.Subscription{}, err
	}

	s.log.Info("subscription created",
		zap.String("subscription_id", subscription.ID.String()),
		zap.String("customer_id", subscription.CustomerID.String()),
		zap.String("frequency", string(subscription.Frequency)),
	)
	return subscription, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (subscriptiondomain.Subscription, error) {
	parsed, err := s.parseID(id, subscriptiondomain.ErrInvalidSubscription)
	if err != nil {
		return subscriptiondomain.Subscription{}, err
	}

	subscription, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return subscriptiondomain.Subscription{}, err
	}
	if subscription == nil {
		return subscriptiondomain.Subscription{}, subscriptiondomain.ErrSubscriptionNotFound
	}
	return *subscription, nil
}

func (s *Service) List(ctx context.Context, req subscriptiondomain.ListSubscriptionRequest) (subscriptiondomain.ListSubscriptionResponse, error) {
	filter := subscriptiondomain.ListFilter{}

	if status := strings.TrimSpace(req.Status); status != "" {
		parsed := subscriptiondomain.SubscriptionStatus(status)
		switch parsed {
		case subscriptiondomain.SubscriptionStatusActive,
			subscriptiondomain.SubscriptionStatusPaused,
			subscriptiondomain.SubscriptionStatusCancelled:
			filter.Status = &parsed
		default:
			return subscriptiondomain.ListSubscriptionResponse{}, subscriptiondomain.ErrInvalidStatus
		}
	}
	if req.CustomerID != "" {
		customerID, err := s.parseID(req.CustomerID, subscriptiondomain.ErrInvalidCustomer)
		if err != nil {
			return subscriptiondomain.ListSubscriptionResponse{}, err
		}
		filter.CustomerID = &customerID
	}
	if req.VendorID != "" {
		vendorID, err := s.parseID(req.VendorID, subscriptiondomain.ErrInvalidVendor)
		if err != nil {
			return subscriptiondomain.ListSubscriptionResponse{}, err
		}
		filter.VendorID = &vendorID
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
		return subscriptiondomain.ListSubscriptionResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(item *subscriptiondomain.Subscription) string {
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

	subscriptions := make([]subscriptiondomain.Subscription, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		subscriptions = append(subscriptions, *item)
	}

	resp := subscriptiondomain.ListSubscriptionResponse{Subscriptions: subscriptions}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}
	return resp, nil
}

func (s *Service) Pause(ctx context.Context, id string) error {
	return s.transition(ctx, id, subscriptiondomain.SubscriptionStatusPaused)
}

func (s *Service) Resume(ctx context.Context, id string) error {
	return s.transition(ctx, id, subscriptiondomain.SubscriptionStatusActive)
}

func (s *Service) Cancel(ctx context.Context, id string) error {
	return s.transition(ctx, id, subscriptiondomain.SubscriptionStatusCancelled)
}

func (s *Service) transition(ctx context.Context, id string, target subscriptiondomain.SubscriptionStatus) error {
	parsed, err := s.parseID(id, subscriptiondomain.ErrInvalidSubscription)
	if err != nil {
		return err
	}

	subscription, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return err
	}
	if subscription == nil {
		return subscriptiondomain.ErrSubscriptionNotFound
	}

	if !canTransition(subscription.Status, target) {
		return subscriptiondomain.ErrInvalidTransition
	}

	if err := s.repo.UpdateStatus(ctx, s.db, subscription.ID, target, s.clock.Now(ctx)); err != nil {
		return err
	}

	s.log.Info("subscription status changed",
		zap.String("subscription_id", subscription.ID.String()),
		zap.String("from", string(subscription.Status)),
		zap.String("to", string(target)),
	)
	return nil
}

// SetPauseWindow sets the scheduled-gap dates. It is valid on active
// subscriptions; the status machine is not involved.
func (s *Service) SetPauseWindow(ctx context.Context, req subscriptiondomain.PauseWindowRequest) (subscriptiondomain.Subscription, error) {
	parsed, err := s.parseID(req.SubscriptionID, subscriptiondomain.ErrInvalidSubscription)
	if err != nil {
		return subscriptiondomain.Subscription{}, err
	}
	if req.PausedFrom.IsZero() || req.PausedUntil.IsZero() || req.PausedUntil.Before(req.PausedFrom) {
		return subscriptiondomain.Subscription{}, subscriptiondomain.ErrInvalidPauseWindow
	}

	subscription, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return subscriptiondomain.Subscription{}, err
	}
	if subscription == nil {
		return subscriptiondomain.Subscription{}, subscriptiondomain.ErrSubscriptionNotFound
	}
	if subscription.Status == subscriptiondomain.SubscriptionStatusCancelled {
		return subscriptiondomain.Subscription{}, subscriptiondomain.ErrInvalidTransition
	}

	from := truncateToDate(req.PausedFrom)
	until := truncateToDate(req.PausedUntil)
	if err := s.repo.UpdatePauseWindow(ctx, s.db, subscription.ID, &from, &until, s.clock.Now(ctx)); err != nil {
		return subscriptiondomain.Subscription{}, err
	}

	subscription.PausedFrom = &from
	subscription.PausedUntil = &until
	return *subscription, nil
}

func (s *Service) ClearPauseWindow(ctx context.Context, id string) (subscriptiondomain.Subscription, error) {
	parsed, err := s.parseID(id, subscriptiondomain.ErrInvalidSubscription)
	if err != nil {
		return subscriptiondomain.Subscription{}, err
	}

	subscription, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return subscriptiondomain.Subscription{}, err
	}
	if subscription == nil {
		return subscriptiondomain.Subscription{}, subscriptiondomain.ErrSubscriptionNotFound
	}

	if err := s.repo.UpdatePauseWindow(ctx, s.db, subscription.ID, nil, nil, s.clock.Now(ctx)); err != nil {
		return subscriptiondomain.Subscription{}, err
	}

	subscription.PausedFrom = nil
	subscription.PausedUntil = nil
	return *subscription, nil
}

func (s *Service) parseID(raw string, invalid error) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil {
		return 0, invalid
	}
	return id, nil
}

func truncateToDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
