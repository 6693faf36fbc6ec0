package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"weathertracker.app/internal/core/location"
	"weathertracker.app/pkg/errors"
)

type CreateLocationRequest struct {
	Name      string  `json:"name" binding:"required"`
	City      string  `json:"city" binding:"required"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude" binding:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" binding:"gte=-180,lte=180"`
}

type SubscribeRequest struct {
	Default bool `json:"default"`
}

func (s *HTTPServerAdapter) listLocations(c *gin.Context) {
	locations, err := s.locationUseCase.List(c.Request.Context())
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, locations)
}

func (s *HTTPServerAdapter) createLocation(c *gin.Context) {
	var req CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, errors.NewValidationError("Invalid request format"))
		return
	}

	loc, err := s.locationUseCase.Create(c.Request.Context(), location.CreateLocationParams{
		Name:      req.Name,
		City:      req.City,
		Country:   req.Country,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		CreatedBy: currentUserID(c),
	})
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, loc)
}

func (s *HTTPServerAdapter) getLocation(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		s.handleError(c, err)
		return
	}
	loc, err := s.locationUseCase.Get(c.Request.Context(), id)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, loc)
}

func (s *HTTPServerAdapter) deleteLocation(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		s.handleError(c, err)
		return
	}
	if err := s.locationUseCase.Delete(c.Request.Context(), currentUserID(c), id); err != nil {
		s.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// subscribe handles POST /api/locations/:id/subscribe; the body is optional
func (s *HTTPServerAdapter) subscribe(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		s.handleError(c, err)
		return
	}
	var req SubscribeRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			s.handleError(c, errors.NewValidationError("Invalid request format"))
			return
		}
	}

	sub, err := s.locationUseCase.Subscribe(c.Request.Context(), currentUserID(c), id, req.Default)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

func (s *HTTPServerAdapter) unsubscribe(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		s.handleError(c, err)
		return
	}
	if err := s.locationUseCase.Unsubscribe(c.Request.Context(), currentUserID(c), id); err != nil {
		s.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *HTTPServerAdapter) setDefaultLocation(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		s.handleError(c, err)
		return
	}
	if err := s.locationUseCase.SetDefault(c.Request.Context(), currentUserID(c), id); err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Default location updated"})
}

func (s *HTTPServerAdapter) listSubscriptions(c *gin.Context) {
	subs, err := s.locationUseCase.ListSubscriptions(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, subs)
}
