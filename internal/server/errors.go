package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	areadomain "github.com/deliverlylabs/deliverly/internal/area/domain"
	customerdomain "github.com/deliverlylabs/deliverly/internal/customer/domain"
	invitedomain "github.com/deliverlylabs/deliverly/internal/invite/domain"
	orderdomain "github.com/deliverlylabs/deliverly/internal/order/domain"
	productdomain "github.com/deliverlylabs/deliverly/internal/product/domain"
	smsdomain "github.com/deliverlylabs/deliverly/internal/sms/domain"
	subscriptiondomain "github.com/deliverlylabs/deliverly/internal/subscription/domain"
	vendordomain "github.com/deliverlylabs/deliverly/internal/vendors/domain"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError is the transport-level error envelope.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e *APIError) Error() string { return e.Message }

func invalidRequestError() *APIError {
	return &APIError{Status: http.StatusBadRequest, Code: "invalid_request", Message: "invalid request"}
}

func newValidationError(field, code, message string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Code: code, Message: message, Field: field}
}

// AbortWithError translates domain errors into HTTP responses. Unrecognized
// errors become opaque 500s so internals never leak to callers.
func AbortWithError(c *gin.Context, err error) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		c.AbortWithStatusJSON(apiErr.Status, gin.H{"error": apiErr})
		return
	}

	var providerErr *smsdomain.ProviderError
	if errors.As(err, &providerErr) {
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": &APIError{
			Code:    "gateway_error",
			Message: providerErr.Error(),
		}})
		return
	}

	status := http.StatusInternalServerError
	code := "internal_error"
	message := "internal error"

	switch {
	case errors.Is(err, ErrUnauthorized):
		status, code, message = http.StatusUnauthorized, "unauthorized", "unauthorized"
	case isNotFoundError(err):
		status, code, message = http.StatusNotFound, "not_found", err.Error()
	case isValidationError(err):
		status, code, message = http.StatusBadRequest, "validation_error", err.Error()
	case isConflictError(err):
		status, code, message = http.StatusConflict, "conflict", err.Error()
	}

	c.AbortWithStatusJSON(status, gin.H{"error": &APIError{Code: code, Message: message}})
}

func isNotFoundError(err error) bool {
	for _, target := range []error{
		areadomain.ErrAreaNotFound,
		areadomain.ErrSocietyNotFound,
		vendordomain.ErrVendorNotFound,
		customerdomain.ErrCustomerNotFound,
		productdomain.ErrProductNotFound,
		subscriptiondomain.ErrSubscriptionNotFound,
		orderdomain.ErrOrderNotFound,
		invitedomain.ErrInviteNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func isValidationError(err error) bool {
	for _, target := range []error{
		areadomain.ErrInvalidName,
		vendordomain.ErrInvalidVendor,
		vendordomain.ErrInvalidName,
		vendordomain.ErrInvalidPhone,
		customerdomain.ErrInvalidCustomer,
		customerdomain.ErrInvalidName,
		customerdomain.ErrInvalidPhone,
		productdomain.ErrInvalidProduct,
		productdomain.ErrInvalidName,
		productdomain.ErrInvalidUnit,
		productdomain.ErrInvalidPrice,
		subscriptiondomain.ErrInvalidSubscription,
		subscriptiondomain.ErrInvalidCustomer,
		subscriptiondomain.ErrInvalidVendor,
		subscriptiondomain.ErrInvalidProduct,
		subscriptiondomain.ErrInvalidFrequency,
		subscriptiondomain.ErrInvalidQuantity,
		subscriptiondomain.ErrInvalidStartDate,
		subscriptiondomain.ErrInvalidDateRange,
		subscriptiondomain.ErrInvalidPauseWindow,
		subscriptiondomain.ErrInvalidStatus,
		subscriptiondomain.ErrProductInactive,
		orderdomain.ErrInvalidOrder,
		orderdomain.ErrInvalidStatus,
		invitedomain.ErrInvalidInvite,
		smsdomain.ErrInvalidRecipient,
		smsdomain.ErrInvalidBody,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func isConflictError(err error) bool {
	for _, target := range []error{
		vendordomain.ErrSlugTaken,
		subscriptiondomain.ErrInvalidTransition,
		orderdomain.ErrInvalidTransition,
		invitedomain.ErrAlreadyConnected,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
