package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"incidentlens.io/lens/internal/api/generated"
	"incidentlens.io/lens/internal/service"
)

// GetEvents handles GET /events.
func (s *Server) GetEvents(c *gin.Context, params generated.GetEventsParams) {
	page, pageSize := defaultPagination(params.Page, params.PageSize)
	result, err := s.events.GetEvents(service.EventQuery{
		Page:          page,
		PageSize:      pageSize,
		Search:        stringOrEmpty(params.Search),
		Town:          stringOrEmpty(params.Town),
		Level:         stringOrEmpty(params.Level),
		Category:      stringOrEmpty(params.Category),
		RelatedEvents: stringOrEmpty(params.RelatedEvents),
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetEventDetail handles GET /events/{event_id}.
func (s *Server) GetEventDetail(c *gin.Context, eventID string) {
	view, err := s.events.GetEventDetail(eventID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetFilterOptions handles GET /filter-options.
func (s *Server) GetFilterOptions(c *gin.Context) {
	c.JSON(http.StatusOK, s.events.GetFilterOptions())
}
