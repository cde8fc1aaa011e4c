package server

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	subscriptiondomain "github.com/deliverlylabs/deliverly/internal/subscription/domain"
	"github.com/deliverlylabs/deliverly/pkg/db/pagination"
)

const dateLayout = "2006-01-02"

type createSubscriptionRequest struct {
	CustomerID string  `json:"customer_id"`
	VendorID   string  `json:"vendor_id"`
	ProductID  string  `json:"product_id"`
	Frequency  string  `json:"frequency"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date,omitempty"`
	Quantity   float64 `json:"quantity"`
}

type pauseWindowRequest struct {
	PausedFrom  string `json:"paused_from"`
	PausedUntil string `json:"paused_until"`
}

// @Summary      Create Subscription
// @Description  Create a recurring-order subscription; commercial terms are snapshotted from the product
// @Tags         subscriptions
// @Accept       json
// @Produce      json
// @Param        request body createSubscriptionRequest true "Create Subscription Request"
// @Success      200  {object}  DataResponse
// @Router       /subscriptions [post]
func (s *Server) CreateSubscription(c *gin.Context) {
	var req createSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		AbortWithError(c, newValidationError("start_date", "invalid_date", "start_date must be YYYY-MM-DD"))
		return
	}
	var endDate *time.Time
	if strings.TrimSpace(req.EndDate) != "" {
		parsed, err := parseDate(req.EndDate)
		if err != nil {
			AbortWithError(c, newValidationError("end_date", "invalid_date", "end_date must be YYYY-MM-DD"))
			return
		}
		endDate = &parsed
	}

	resp, err := s.subscriptionSvc.Create(c.Request.Context(), subscriptiondomain.CreateSubscriptionRequest{
		CustomerID: req.CustomerID,
		VendorID:   req.VendorID,
		ProductID:  req.ProductID,
		Frequency:  req.Frequency,
		StartDate:  startDate,
		EndDate:    endDate,
		Quantity:   req.Quantity,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      List Subscriptions
// @Description  List subscriptions with cursor pagination
// @Tags         subscriptions
// @Produce      json
// @Param        status       query  string  false  "Status"
// @Param        customer_id  query  string  false  "Customer ID"
// @Param        vendor_id    query  string  false  "Vendor ID"
// @Param        page_token   query  string  false  "Page Token"
// @Param        page_size    query  int     false  "Page Size"
// @Success      200  {object}  ListResponse
// @Router       /subscriptions [get]
func (s *Server) ListSubscriptions(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Status     string `form:"status"`
		CustomerID string `form:"customer_id"`
		VendorID   string `form:"vendor_id"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.subscriptionSvc.List(c.Request.Context(), subscriptiondomain.ListSubscriptionRequest{
		Status:     strings.TrimSpace(query.Status),
		CustomerID: strings.TrimSpace(query.CustomerID),
		VendorID:   strings.TrimSpace(query.VendorID),
		PageToken:  query.PageToken,
		PageSize:   query.PageSize,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondList(c, resp.Subscriptions, &resp.PageInfo)
}

// @Summary      Get Subscription
// @Description  Get subscription by ID
// @Tags         subscriptions
// @Produce      json
// @Param        id  path  string  true  "Subscription ID"
// @Success      200  {object}  DataResponse
// @Router       /subscriptions/{id} [get]
func (s *Server) GetSubscriptionByID(c *gin.Context) {
	resp, err := s.subscriptionSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      Pause Subscription
// @Description  Stop order generation until the subscription is resumed
// @Tags         subscriptions
// @Produce      json
// @Param        id  path  string  true  "Subscription ID"
// @Success      200  {object}  DataResponse
// @Router       /subscriptions/{id}/pause [post]
func (s *Server) PauseSubscription(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.subscriptionSvc.Pause(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, gin.H{"id": id, "status": subscriptiondomain.SubscriptionStatusPaused})
}

// @Summary      Resume Subscription
// @Description  Resume a paused subscription
// @Tags         subscriptions
// @Produce      json
// @Param        id  path  string  true  "Subscription ID"
// @Success      200  {object}  DataResponse
// @Router       /subscriptions/{id}/resume [post]
func (s *Server) ResumeSubscription(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.subscriptionSvc.Resume(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, gin.H{"id": id, "status": subscriptiondomain.SubscriptionStatusActive})
}

// @Summary      Cancel Subscription
// @Description  Cancel a subscription permanently
// @Tags         subscriptions
// @Produce      json
// @Param        id  path  string  true  "Subscription ID"
// @Success      200  {object}  DataResponse
// @Router       /subscriptions/{id}/cancel [post]
func (s *Server) CancelSubscription(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.subscriptionSvc.Cancel(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, gin.H{"id": id, "status": subscriptiondomain.SubscriptionStatusCancelled})
}

// @Summary      Set Pause Window
// @Description  Suppress order generation for a date range without changing status
// @Tags         subscriptions
// @Accept       json
// @Produce      json
// @Param        id       path  string              true  "Subscription ID"
// @Param        request  body  pauseWindowRequest  true  "Pause Window Request"
// @Success      200  {object}  DataResponse
// @Router       /subscriptions/{id}/pause-window [put]
func (s *Server) SetPauseWindow(c *gin.Context) {
	var req pauseWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	from, err := parseDate(req.PausedFrom)
	if err != nil {
		AbortWithError(c, newValidationError("paused_from", "invalid_date", "paused_from must be YYYY-MM-DD"))
		return
	}
	until, err := parseDate(req.PausedUntil)
	if err != nil {
		AbortWithError(c, newValidationError("paused_until", "invalid_date", "paused_until must be YYYY-MM-DD"))
		return
	}

	resp, err := s.subscriptionSvc.SetPauseWindow(c.Request.Context(), subscriptiondomain.PauseWindowRequest{
		SubscriptionID: strings.TrimSpace(c.Param("id")),
		PausedFrom:     from,
		PausedUntil:    until,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      Clear Pause Window
// @Description  Remove the pause window from a subscription
// @Tags         subscriptions
// @Produce      json
// @Param        id  path  string  true  "Subscription ID"
// @Success      200  {object}  DataResponse
// @Router       /subscriptions/{id}/pause-window [delete]
func (s *Server) ClearPauseWindow(c *gin.Context) {
	resp, err := s.subscriptionSvc.ClearPauseWindow(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

func parseDate(value string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, strings.TrimSpace(value), time.UTC)
}
