package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weathertracker.app/pkg/errors"
)

func TestHTTPServerAdapter_HandleError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	server := &HTTPServerAdapter{}

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"Validation", errors.NewValidationError("validation failed"), http.StatusBadRequest, "validation failed"},
		{"NotFound", errors.NewNotFoundError("alert not found"), http.StatusNotFound, "alert not found"},
		{"AlreadyExists", errors.NewAlreadyExistsError("already subscribed"), http.StatusConflict, "already subscribed"},
		{"Unauthorized", errors.NewUnauthorizedError("invalid token"), http.StatusUnauthorized, "invalid token"},
		{"Forbidden", errors.NewForbiddenError("only the creator can delete a location"), http.StatusForbidden, "only the creator can delete a location"},
		{"ExternalAPI", errors.NewExternalAPIError("provider down", nil), http.StatusServiceUnavailable, "External service unavailable"},
		{"Email", errors.NewEmailError("smtp down", nil), http.StatusServiceUnavailable, "Unable to send email"},
		{"Database", errors.NewDatabaseError("connection failed", nil), http.StatusInternalServerError, "Internal server error"},
		{"Configuration", errors.NewConfigurationError("bad config", nil), http.StatusInternalServerError, "Internal server error"},
		{"Wrapped", fmt.Errorf("find location 3: %w", errors.NewNotFoundError("location not found")), http.StatusNotFound, "location not found"},
		{"Plain", fmt.Errorf("boom"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/test", func(c *gin.Context) { server.handleError(c, tt.err) })

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantBody, resp.Error)
		})
	}
}

func TestPathID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/items/:id", func(c *gin.Context) {
		id, err := pathID(c, "id")
		if err != nil {
			c.String(http.StatusBadRequest, err.Error())
			return
		}
		c.String(http.StatusOK, fmt.Sprint(id))
	})

	for path, want := range map[string]int{"/items/7": http.StatusOK, "/items/0": http.StatusBadRequest, "/items/abc": http.StatusBadRequest, "/items/-1": http.StatusBadRequest} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, want, w.Code, path)
	}
}
