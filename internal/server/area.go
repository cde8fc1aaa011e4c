package server

import (
	"strings"

	"github.com/gin-gonic/gin"
)

type createAreaRequest struct {
	Name string `json:"name"`
	City string `json:"city"`
}

type createSocietyRequest struct {
	Name string `json:"name"`
}

// @Summary      Create Area
// @Description  Create a serviceable delivery area
// @Tags         areas
// @Accept       json
// @Produce      json
// @Param        request body createAreaRequest true "Create Area Request"
// @Success      200  {object}  DataResponse
// @Router       /areas [post]
func (s *Server) CreateArea(c *gin.Context) {
	var req createAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.areaSvc.CreateArea(c.Request.Context(), req.Name, req.City)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      List Areas
// @Description  List delivery areas, optionally filtered by city
// @Tags         areas
// @Produce      json
// @Param        city  query  string  false  "City"
// @Success      200  {object}  ListResponse
// @Router       /areas [get]
func (s *Server) ListAreas(c *gin.Context) {
	resp, err := s.areaSvc.ListAreas(c.Request.Context(), strings.TrimSpace(c.Query("city")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondList(c, resp, nil)
}

// @Summary      Create Society
// @Description  Create a housing society in an area
// @Tags         areas
// @Accept       json
// @Produce      json
// @Param        id       path  string                true  "Area ID"
// @Param        request  body  createSocietyRequest  true  "Create Society Request"
// @Success      200  {object}  DataResponse
// @Router       /areas/{id}/societies [post]
func (s *Server) CreateSociety(c *gin.Context) {
	var req createSocietyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.areaSvc.CreateSociety(c.Request.Context(), strings.TrimSpace(c.Param("id")), req.Name)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      List Societies
// @Description  List societies in an area
// @Tags         areas
// @Produce      json
// @Param        id  path  string  true  "Area ID"
// @Success      200  {object}  ListResponse
// @Router       /areas/{id}/societies [get]
func (s *Server) ListSocieties(c *gin.Context) {
	resp, err := s.areaSvc.ListSocieties(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondList(c, resp, nil)
}
