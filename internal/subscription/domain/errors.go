package domain

import "errors"

var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrInvalidSubscription  = errors.New("invalid subscription")
	ErrInvalidCustomer      = errors.New("invalid customer")
	ErrInvalidVendor        = errors.New("invalid vendor")
	ErrInvalidProduct       = errors.New("invalid product")
	ErrInvalidFrequency     = errors.New("invalid frequency")
	ErrInvalidQuantity      = errors.New("invalid quantity")
	ErrInvalidStartDate     = errors.New("invalid start date")
	ErrInvalidDateRange     = errors.New("end date before start date")
	ErrInvalidPauseWindow   = errors.New("invalid pause window")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrProductInactive      = errors.New("product is not active")
)
