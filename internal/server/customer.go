package server

import (
	"strings"

	"github.com/gin-gonic/gin"

	customerdomain "github.com/deliverlylabs/deliverly/internal/customer/domain"
)

type createCustomerRequest struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Address   string `json:"address,omitempty"`
	AreaID    string `json:"area_id,omitempty"`
	SocietyID string `json:"society_id,omitempty"`
}

// @Summary      Create Customer
// @Description  Register a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        request body createCustomerRequest true "Create Customer Request"
// @Success      200  {object}  DataResponse
// @Router       /customers [post]
func (s *Server) CreateCustomer(c *gin.Context) {
	var req createCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.customerSvc.Create(c.Request.Context(), customerdomain.CreateCustomerRequest{
		Name:      req.Name,
		Phone:     req.Phone,
		Address:   req.Address,
		AreaID:    req.AreaID,
		SocietyID: req.SocietyID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      Get Customer
// @Description  Get customer by ID
// @Tags         customers
// @Produce      json
// @Param        id  path  string  true  "Customer ID"
// @Success      200  {object}  DataResponse
// @Router       /customers/{id} [get]
func (s *Server) GetCustomerByID(c *gin.Context) {
	resp, err := s.customerSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}
