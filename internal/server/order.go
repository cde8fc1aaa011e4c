package server

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	orderdomain "github.com/deliverlylabs/deliverly/internal/order/domain"
	"github.com/deliverlylabs/deliverly/pkg/db/pagination"
)

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

// @Summary      List Orders
// @Description  List orders with cursor pagination
// @Tags         orders
// @Produce      json
// @Param        customer_id  query  string  false  "Customer ID"
// @Param        vendor_id    query  string  false  "Vendor ID"
// @Param        status       query  string  false  "Status"
// @Param        date_from    query  string  false  "Date From (YYYY-MM-DD)"
// @Param        date_to      query  string  false  "Date To (YYYY-MM-DD)"
// @Param        page_token   query  string  false  "Page Token"
// @Param        page_size    query  int     false  "Page Size"
// @Success      200  {object}  ListResponse
// @Router       /orders [get]
func (s *Server) ListOrders(c *gin.Context) {
	var query struct {
		pagination.Pagination
		CustomerID string `form:"customer_id"`
		VendorID   string `form:"vendor_id"`
		Status     string `form:"status"`
		DateFrom   string `form:"date_from"`
		DateTo     string `form:"date_to"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var dateFrom, dateTo *time.Time
	if strings.TrimSpace(query.DateFrom) != "" {
		parsed, err := parseDate(query.DateFrom)
		if err != nil {
			AbortWithError(c, newValidationError("date_from", "invalid_date", "date_from must be YYYY-MM-DD"))
			return
		}
		dateFrom = &parsed
	}
	if strings.TrimSpace(query.DateTo) != "" {
		parsed, err := parseDate(query.DateTo)
		if err != nil {
			AbortWithError(c, newValidationError("date_to", "invalid_date", "date_to must be YYYY-MM-DD"))
			return
		}
		dateTo = &parsed
	}

	resp, err := s.orderSvc.List(c.Request.Context(), orderdomain.ListOrderRequest{
		CustomerID: strings.TrimSpace(query.CustomerID),
		VendorID:   strings.TrimSpace(query.VendorID),
		Status:     strings.TrimSpace(query.Status),
		DateFrom:   dateFrom,
		DateTo:     dateTo,
		PageToken:  query.PageToken,
		PageSize:   query.PageSize,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondList(c, resp.Orders, &resp.PageInfo)
}

// @Summary      Get Order
// @Description  Get order by ID
// @Tags         orders
// @Produce      json
// @Param        id  path  string  true  "Order ID"
// @Success      200  {object}  DataResponse
// @Router       /orders/{id} [get]
func (s *Server) GetOrderByID(c *gin.Context) {
	resp, err := s.orderSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      Update Order Status
// @Description  Mark an order delivered or cancelled
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id       path  string                    true  "Order ID"
// @Param        request  body  updateOrderStatusRequest  true  "Update Order Status Request"
// @Success      200  {object}  DataResponse
// @Router       /orders/{id}/status [patch]
func (s *Server) UpdateOrderStatus(c *gin.Context) {
	var req updateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.orderSvc.UpdateStatus(c.Request.Context(), orderdomain.UpdateOrderStatusRequest{
		OrderID: strings.TrimSpace(c.Param("id")),
		Status:  req.Status,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}
