package server

import (
	"strings"

	"github.com/gin-gonic/gin"
)

type redeemInviteRequest struct {
	Code       string `json:"code"`
	CustomerID string `json:"customer_id"`
}

// @Summary      Issue Invite
// @Description  Issue a short-lived invite code for a vendor; the URL doubles as the QR payload
// @Tags         invites
// @Produce      json
// @Param        id  path  string  true  "Vendor ID"
// @Success      200  {object}  DataResponse
// @Router       /vendors/{id}/invites [post]
func (s *Server) IssueInvite(c *gin.Context) {
	resp, err := s.inviteSvc.Issue(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      Redeem Invite
// @Description  Redeem an invite code and connect the customer to the issuing vendor
// @Tags         invites
// @Accept       json
// @Produce      json
// @Param        request body redeemInviteRequest true "Redeem Invite Request"
// @Success      200  {object}  DataResponse
// @Router       /invites/redeem [post]
func (s *Server) RedeemInvite(c *gin.Context) {
	var req redeemInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.inviteSvc.Redeem(c.Request.Context(), req.Code, req.CustomerID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}
