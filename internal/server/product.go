package server

import (
	"strings"

	"github.com/gin-gonic/gin"

	productdomain "github.com/deliverlylabs/deliverly/internal/product/domain"
)

type createProductRequest struct {
	VendorID string  `json:"vendor_id"`
	Name     string  `json:"name"`
	Unit     string  `json:"unit"`
	Price    float64 `json:"price"`
}

type updateProductRequest struct {
	Name   *string  `json:"name,omitempty"`
	Unit   *string  `json:"unit,omitempty"`
	Price  *float64 `json:"price,omitempty"`
	Active *bool    `json:"active,omitempty"`
}

// @Summary      Create Product
// @Description  Add a product to a vendor catalog
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        request body createProductRequest true "Create Product Request"
// @Success      200  {object}  DataResponse
// @Router       /products [post]
func (s *Server) CreateProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.productSvc.Create(c.Request.Context(), productdomain.CreateProductRequest{
		VendorID: req.VendorID,
		Name:     req.Name,
		Unit:     req.Unit,
		Price:    req.Price,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      Get Product
// @Description  Get product by ID
// @Tags         products
// @Produce      json
// @Param        id  path  string  true  "Product ID"
// @Success      200  {object}  DataResponse
// @Router       /products/{id} [get]
func (s *Server) GetProductByID(c *gin.Context) {
	resp, err := s.productSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      Update Product
// @Description  Update product details; existing subscription terms keep their snapshot
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id       path  string                true  "Product ID"
// @Param        request  body  updateProductRequest  true  "Update Product Request"
// @Success      200  {object}  DataResponse
// @Router       /products/{id} [patch]
func (s *Server) UpdateProduct(c *gin.Context) {
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.productSvc.Update(c.Request.Context(), productdomain.UpdateProductRequest{
		ProductID: strings.TrimSpace(c.Param("id")),
		Name:      req.Name,
		Unit:      req.Unit,
		Price:     req.Price,
		Active:    req.Active,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}
