package user

import (
	"fmt"
	"strings"
	"time"

	"weathertracker.app/internal/ports"
	"weathertracker.app/pkg/validation"
)

// User is a registered account. The password hash never leaves this package's use case.
type User struct {
	ID            uint      `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	PreferredUnit string    `json:"preferred_unit"`
	CreatedAt     time.Time `json:"created_at"`
}

type RegisterParams struct {
	Email    string
	Password string
	Name     string
}

// IsValid validates registration parameters
func (p *RegisterParams) IsValid() error {
	if !validation.IsValidEmail(p.Email) {
		return fmt.Errorf("invalid email format")
	}
	if !validation.IsValidPassword(p.Password) {
		return fmt.Errorf("password must be at least 8 characters")
	}
	if !validation.IsNotEmpty(p.Name) {
		return fmt.Errorf("name cannot be empty")
	}
	return nil
}

type LoginParams struct {
	Email    string
	Password string
}

type UpdateProfileParams struct {
	Name          *string
	PreferredUnit *string
}

// IsValid validates profile updates
func (p *UpdateProfileParams) IsValid() error {
	if p.Name != nil && !validation.IsNotEmpty(*p.Name) {
		return fmt.Errorf("name cannot be empty")
	}
	if p.PreferredUnit != nil && *p.PreferredUnit != "celsius" && *p.PreferredUnit != "fahrenheit" {
		return fmt.Errorf("preferred unit must be one of: celsius, fahrenheit")
	}
	return nil
}

type ChangePasswordParams struct {
	CurrentPassword string
	NewPassword     string
}

// AuthResult is returned on successful registration or login
type AuthResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      *User     `json:"user"`
}

func fromData(data *ports.UserData) *User {
	return &User{
		ID:            data.ID,
		Email:         data.Email,
		Name:          data.Name,
		PreferredUnit: data.PreferredUnit,
		CreatedAt:     data.CreatedAt,
	}
}

func normalizeName(name string) string {
	return strings.TrimSpace(name)
}
