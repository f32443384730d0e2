package dto

import (
	"regexp"
	"time"

	"github.com/templecycle/templecycle-api/internal/domain/entity"
)

var (
	emailPattern = regexp.MustCompile(`^[\w.+-]+@[\w-]+(\.[\w-]+)+$`)
	phonePattern = regexp.MustCompile(`^[6-9]\d{9}$`) // Indian mobile
)

// RegisterRequest payload for POST /api/auth/register.
type RegisterRequest struct {
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	Password     string         `json:"password"`
	Role         string         `json:"role"`
	Phone        string         `json:"phone"`
	Organization string         `json:"organization"`
	Address      entity.Address `json:"address"`
}

// Validate checks the payload before any mutation; returns field-level
// messages, empty when valid.
func (r *RegisterRequest) Validate() []string {
	var errs []string
	if len(r.Name) < 2 || len(r.Name) > 100 {
		errs = append(errs, "name must be between 2 and 100 characters")
	}
	if !emailPattern.MatchString(r.Email) {
		errs = append(errs, "a valid email is required")
	}
	if len(r.Password) < 6 {
		errs = append(errs, "password must be at least 6 characters long")
	}
	if r.Role == "" {
		r.Role = entity.RoleBuyer
	}
	if !entity.ValidRole(r.Role) {
		errs = append(errs, "role must be one of admin, shg, buyer, csr")
	}
	if r.Role != entity.RoleCSR && !phonePattern.MatchString(r.Phone) {
		errs = append(errs, "a valid Indian mobile number is required")
	}
	if (r.Role == entity.RoleBuyer || r.Role == entity.RoleSHG) && r.Organization == "" {
		errs = append(errs, "organization is required for buyer and shg accounts")
	}
	if r.Address.State == "" {
		r.Address.State = "Tamil Nadu"
	}
	return errs
}

// LoginRequest payload for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the payload.
func (r *LoginRequest) Validate() []string {
	var errs []string
	if !emailPattern.MatchString(r.Email) {
		errs = append(errs, "a valid email is required")
	}
	if r.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

// UpdateProfileRequest whitelisted profile fields; nil means unchanged.
type UpdateProfileRequest struct {
	Name         *string         `json:"name"`
	Phone        *string         `json:"phone"`
	Organization *string         `json:"organization"`
	Address      *entity.Address `json:"address"`
}

// ChangePasswordRequest payload for PUT /api/auth/password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// Validate checks the payload.
func (r *ChangePasswordRequest) Validate() []string {
	var errs []string
	if r.CurrentPassword == "" {
		errs = append(errs, "current password is required")
	}
	if len(r.NewPassword) < 6 {
		errs = append(errs, "new password must be at least 6 characters long")
	}
	return errs
}

// UserResponse a user without credentials.
type UserResponse struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	Role         string         `json:"role"`
	Phone        string         `json:"phone,omitempty"`
	Organization string         `json:"organization,omitempty"`
	Address      entity.Address `json:"address"`
	IsActive     bool           `json:"isActive"`
	LastLogin    *time.Time     `json:"lastLogin,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// AuthResponse token plus profile, returned by register and login.
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}
