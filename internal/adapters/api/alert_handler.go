package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"weathertracker.app/pkg/errors"
)

// listAlerts handles GET /api/alerts?active=true&limit=20
func (s *HTTPServerAdapter) listAlerts(c *gin.Context) {
	activeOnly := false
	if raw := c.Query("active"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			s.handleError(c, errors.NewValidationError("active must be true or false"))
			return
		}
		activeOnly = v
	}
	limit, err := queryLimit(c)
	if err != nil {
		s.handleError(c, err)
		return
	}

	views, err := s.alertUseCase.ListForUser(c.Request.Context(), currentUserID(c), activeOnly, limit)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (s *HTTPServerAdapter) listDefaultLocationAlerts(c *gin.Context) {
	limit, err := queryLimit(c)
	if err != nil {
		s.handleError(c, err)
		return
	}
	views, err := s.alertUseCase.ListDefaultLocationForUser(c.Request.Context(), currentUserID(c), limit)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (s *HTTPServerAdapter) getAlert(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		s.handleError(c, err)
		return
	}
	view, err := s.alertUseCase.Get(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *HTTPServerAdapter) markAlertRead(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		s.handleError(c, err)
		return
	}
	if err := s.alertUseCase.MarkAsRead(c.Request.Context(), currentUserID(c), id); err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Alert marked as read"})
}

func (s *HTTPServerAdapter) dismissAlert(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		s.handleError(c, err)
		return
	}
	if err := s.alertUseCase.Dismiss(c.Request.Context(), currentUserID(c), id); err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Alert dismissed"})
}
