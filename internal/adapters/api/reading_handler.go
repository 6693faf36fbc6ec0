package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"weathertracker.app/internal/core/weather"
	"weathertracker.app/pkg/errors"
)

// RecordReadingRequest is a manually submitted observation
type RecordReadingRequest struct {
	Temperature     *float64   `json:"temperature" binding:"required"`
	TemperatureUnit string     `json:"temperature_unit" binding:"required,temperature_unit"`
	Description     string     `json:"description"`
	WindSpeed       float64    `json:"wind_speed" binding:"gte=0"`
	WindSpeedUnit   string     `json:"wind_speed_unit" binding:"required,speed_unit"`
	Humidity        float64    `json:"humidity" binding:"gte=0,lte=100"`
	UVIndex         *float64   `json:"uv_index" binding:"omitempty,gte=0"`
	CapturedAt      *time.Time `json:"captured_at"`
}

func (s *HTTPServerAdapter) recordReading(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		s.handleError(c, err)
		return
	}
	var req RecordReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, errors.NewValidationError("Invalid request format"))
		return
	}

	reading := &weather.Reading{
		LocationID:      id,
		Temperature:     *req.Temperature,
		TemperatureUnit: weather.TemperatureUnit(req.TemperatureUnit),
		Description:     req.Description,
		WindSpeed:       req.WindSpeed,
		WindSpeedUnit:   weather.WindSpeedUnit(req.WindSpeedUnit),
		Humidity:        req.Humidity,
		UVIndex:         req.UVIndex,
	}
	if req.CapturedAt != nil {
		reading.CapturedAt = *req.CapturedAt
	}

	stored, err := s.weatherUseCase.RecordReading(c.Request.Context(), reading)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, stored)
}

func (s *HTTPServerAdapter) listReadings(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		s.handleError(c, err)
		return
	}
	limit, err := queryLimit(c)
	if err != nil {
		s.handleError(c, err)
		return
	}

	readings, err := s.weatherUseCase.ListReadings(c.Request.Context(), id, limit)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, readings)
}

func (s *HTTPServerAdapter) latestReading(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		s.handleError(c, err)
		return
	}
	reading, err := s.weatherUseCase.LatestReading(c.Request.Context(), id)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, reading)
}

func (s *HTTPServerAdapter) refreshLocation(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		s.handleError(c, err)
		return
	}
	reading, err := s.weatherUseCase.RefreshLocation(c.Request.Context(), id)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reading)
}

// queryLimit reads ?limit=; zero means the use case default
func queryLimit(c *gin.Context) (int, error) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, errors.NewValidationError("limit must be a non-negative integer")
	}
	return limit, nil
}
