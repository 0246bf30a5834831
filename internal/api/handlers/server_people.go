package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"incidentlens.io/lens/internal/service"
)

// SearchPeople handles POST /people/search.
func (s *Server) SearchPeople(c *gin.Context) {
	var q service.PersonSearchQuery
	if err := c.ShouldBindJSON(&q); err != nil {
		_ = c.Error(bindError(err))
		return
	}
	page, err := s.people.SearchPeople(q)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetPersonDetail handles GET /people/{person_id}.
func (s *Server) GetPersonDetail(c *gin.Context, personID string) {
	person, err := s.people.GetPersonDetail(personID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, person)
}
