package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"incidentlens.io/lens/internal/api/generated"
	"incidentlens.io/lens/internal/service"
)

// GetPersonAnalysis handles GET /person-analysis.
func (s *Server) GetPersonAnalysis(c *gin.Context, params generated.GetPersonAnalysisParams) {
	page, pageSize := defaultPagination(params.Page, params.PageSize)
	result, err := s.analysis.GetPersonAnalysis(service.AnalysisQuery{
		Page:     page,
		PageSize: pageSize,
		Search:   stringOrEmpty(params.Search),
		Role:     stringOrEmpty(params.Role),
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetPersonAnalysisRoles handles GET /person-analysis/roles.
func (s *Server) GetPersonAnalysisRoles(c *gin.Context) {
	c.JSON(http.StatusOK, s.analysis.GetPersonAnalysisRoles())
}

// GetPersonAnalysisDetail handles GET /person-analysis/{phone}.
func (s *Server) GetPersonAnalysisDetail(c *gin.Context, phone string) {
	detail, err := s.analysis.GetPersonAnalysisDetail(phone)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, detail)
}
