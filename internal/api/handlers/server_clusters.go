package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"incidentlens.io/lens/internal/api/generated"
	"incidentlens.io/lens/internal/service"
)

// GetClusterDetail handles GET /clusters/{event_uid}.
func (s *Server) GetClusterDetail(c *gin.Context, eventUID string) {
	view, err := s.clusters.GetClusterDetail(eventUID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetClusterList handles GET /cluster-list. Unset bounds are not applied.
func (s *Server) GetClusterList(c *gin.Context, params generated.GetClusterListParams) {
	page, pageSize := defaultPagination(params.Page, params.PageSize)
	result, err := s.clusters.GetClusterList(service.ClusterQuery{
		Page:          page,
		PageSize:      pageSize,
		Search:        stringOrEmpty(params.Search),
		MinEventCount: params.MinEventCount,
		MaxEventCount: params.MaxEventCount,
		MinDuration:   params.MinDuration,
		MaxDuration:   params.MaxDuration,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetClusterFilterOptions handles GET /cluster-filter-options.
func (s *Server) GetClusterFilterOptions(c *gin.Context) {
	c.JSON(http.StatusOK, s.clusters.GetClusterFilterOptions())
}
