package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	smsdomain "github.com/deliverlylabs/deliverly/internal/sms/domain"
)

type sendSMSRequest struct {
	To   string `json:"to"`
	Body string `json:"body"`
}

// @Summary      Send SMS
// @Description  Relay an SMS through the configured gateway
// @Tags         sms
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {object}  DataResponse
// @Router       /sms/send [post]
func (s *Server) SendSMS(c *gin.Context) {
	var req sendSMSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.smsSvc.Send(c.Request.Context(), smsdomain.Message{To: req.To, Body: req.Body}); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"sent": true}})
}
