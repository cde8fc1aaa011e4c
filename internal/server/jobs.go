package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary      Generate Orders
// @Description  Expand every active subscription into dated orders; idempotent across re-runs
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ordergendomain.Result
// @Router       /jobs/generate-orders [post]
func (s *Server) GenerateOrders(c *gin.Context) {
	result, err := s.ordergenSvc.Generate(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, result)
}
