package server

import (
	"strings"

	"github.com/gin-gonic/gin"

	vendordomain "github.com/deliverlylabs/deliverly/internal/vendors/domain"
)

type createVendorRequest struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Email  string `json:"email,omitempty"`
	AreaID string `json:"area_id,omitempty"`
}

// @Summary      Create Vendor
// @Description  Register a delivery vendor
// @Tags         vendors
// @Accept       json
// @Produce      json
// @Param        request body createVendorRequest true "Create Vendor Request"
// @Success      200  {object}  DataResponse
// @Router       /vendors [post]
func (s *Server) CreateVendor(c *gin.Context) {
	var req createVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.vendorSvc.Create(c.Request.Context(), vendordomain.CreateVendorRequest{
		Name:   req.Name,
		Phone:  req.Phone,
		Email:  req.Email,
		AreaID: req.AreaID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      List Vendors
// @Description  List vendors, optionally filtered by area
// @Tags         vendors
// @Produce      json
// @Param        area_id  query  string  false  "Area ID"
// @Success      200  {object}  ListResponse
// @Router       /vendors [get]
func (s *Server) ListVendors(c *gin.Context) {
	resp, err := s.vendorSvc.List(c.Request.Context(), strings.TrimSpace(c.Query("area_id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondList(c, resp, nil)
}

// @Summary      Get Vendor
// @Description  Get vendor by ID
// @Tags         vendors
// @Produce      json
// @Param        id  path  string  true  "Vendor ID"
// @Success      200  {object}  DataResponse
// @Router       /vendors/{id} [get]
func (s *Server) GetVendorByID(c *gin.Context) {
	resp, err := s.vendorSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      Get Vendor By Slug
// @Description  Get vendor by public slug
// @Tags         vendors
// @Produce      json
// @Param        slug  path  string  true  "Vendor Slug"
// @Success      200  {object}  DataResponse
// @Router       /vendors/slug/{slug} [get]
func (s *Server) GetVendorBySlug(c *gin.Context) {
	resp, err := s.vendorSvc.GetBySlug(c.Request.Context(), strings.TrimSpace(c.Param("slug")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      List Vendor Customers
// @Description  List customers connected to a vendor
// @Tags         vendors
// @Produce      json
// @Param        id  path  string  true  "Vendor ID"
// @Success      200  {object}  ListResponse
// @Router       /vendors/{id}/customers [get]
func (s *Server) ListVendorCustomers(c *gin.Context) {
	resp, err := s.customerSvc.ListByVendor(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondList(c, resp, nil)
}

// @Summary      List Vendor Products
// @Description  List a vendor's catalog
// @Tags         vendors
// @Produce      json
// @Param        id           path   string  true   "Vendor ID"
// @Param        active_only  query  bool    false  "Active Only"
// @Success      200  {object}  ListResponse
// @Router       /vendors/{id}/products [get]
func (s *Server) ListVendorProducts(c *gin.Context) {
	activeOnly := strings.EqualFold(strings.TrimSpace(c.Query("active_only")), "true")
	resp, err := s.productSvc.ListByVendor(c.Request.Context(), strings.TrimSpace(c.Param("id")), activeOnly)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondList(c, resp, nil)
}
