package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"weathertracker.app/internal/core/user"
	"weathertracker.app/pkg/errors"
)

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Name          *string `json:"name"`
	PreferredUnit *string `json:"preferred_unit" binding:"omitempty,temperature_unit"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// register handles POST /api/auth/register
func (s *HTTPServerAdapter) register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Debug("Register binding error", "error", err)
		s.handleError(c, errors.NewValidationError("Invalid request format"))
		return
	}

	result, err := s.userUseCase.Register(c.Request.Context(), user.RegisterParams{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// login handles POST /api/auth/login
func (s *HTTPServerAdapter) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, errors.NewValidationError("Invalid request format"))
		return
	}

	result, err := s.userUseCase.Login(c.Request.Context(), user.LoginParams{Email: req.Email, Password: req.Password})
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *HTTPServerAdapter) getProfile(c *gin.Context) {
	profile, err := s.userUseCase.GetProfile(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (s *HTTPServerAdapter) updateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, errors.NewValidationError("Invalid request format"))
		return
	}

	profile, err := s.userUseCase.UpdateProfile(c.Request.Context(), currentUserID(c), user.UpdateProfileParams{
		Name:          req.Name,
		PreferredUnit: req.PreferredUnit,
	})
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (s *HTTPServerAdapter) changePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, errors.NewValidationError("Invalid request format"))
		return
	}

	err := s.userUseCase.ChangePassword(c.Request.Context(), currentUserID(c), user.ChangePasswordParams{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Password changed"})
}

func (s *HTTPServerAdapter) deleteAccount(c *gin.Context) {
	if err := s.userUseCase.Delete(c.Request.Context(), currentUserID(c)); err != nil {
		s.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
