package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Account roles
const (
	RoleNurse = "Nurse"
	RoleAdmin = "Admin"
)

// Account represents a nurse or admin clinic account.
type Account struct {
	TenantID        string    `json:"-" db:"tenant_id"`
	ID              uuid.UUID `json:"id" db:"id"`
	FirstName       string    `json:"first_name" db:"first_name"`
	MiddleName      *string   `json:"middle_name" db:"middle_name"`
	LastName        string    `json:"last_name" db:"last_name"`
	DOB             Date      `json:"dob" db:"dob"`
	Address         string    `json:"address" db:"address"`
	Email           string    `json:"email" db:"email"`
	PasswordHash    string    `json:"-" db:"password_hash"`
	Role            string    `json:"role" db:"role"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	ProfileImageURL *string   `json:"profile_image_url" db:"profile_image_url"`
}

// DisplayName joins the non-empty name parts.
func (a *Account) DisplayName() string {
	parts := make([]string, 0, 3)
	parts = append(parts, a.FirstName)
	if a.MiddleName != nil && *a.MiddleName != "" {
		parts = append(parts, *a.MiddleName)
	}
	parts = append(parts, a.LastName)
	return strings.Join(parts, " ")
}

// CreateAccountRequest represents admin account creation parameters.
type CreateAccountRequest struct {
	FirstName  string  `json:"first_name" binding:"required"`
	MiddleName *string `json:"middle_name"`
	LastName   string  `json:"last_name" binding:"required"`
	DOB        string  `json:"dob" binding:"required"`
	Address    string  `json:"address" binding:"required"`
	Email      string  `json:"email" binding:"required"`
	Password   string  `json:"password" binding:"required"`
	Role       string  `json:"role" binding:"required"`
}

// UpdateAccountRequest represents an admin edit of an existing account.
// Password is optional; when present the account password is reset.
type UpdateAccountRequest struct {
	FirstName  string  `json:"first_name" binding:"required"`
	MiddleName *string `json:"middle_name"`
	LastName   string  `json:"last_name" binding:"required"`
	DOB        string  `json:"dob" binding:"required"`
	Address    string  `json:"address" binding:"required"`
	Email      string  `json:"email" binding:"required"`
	Password   string  `json:"password"`
}

// UpdateProfileRequest represents a self-service profile update.
type UpdateProfileRequest struct {
	DisplayName     string  `json:"display_name" binding:"required"`
	Email           string  `json:"email" binding:"required"`
	Role            string  `json:"role"`
	ProfileImageURL *string `json:"profile_image_url"`
}

// RevealPasswordResponse carries a freshly reset temporary password. The
// previous password hash is destroyed; this is a reset-and-reveal.
type RevealPasswordResponse struct {
	ID                uuid.UUID `json:"id"`
	Email             string    `json:"email"`
	TemporaryPassword string    `json:"temporaryPassword"`
}

// UpdateAccountResponse is the admin-edit result. Token and user are set only
// when an admin edited their own account, since the token embeds role/email.
type UpdateAccountResponse struct {
	Account *Account  `json:"account"`
	User    *AuthUser `json:"user,omitempty"`
	Token   string    `json:"token,omitempty"`
}
