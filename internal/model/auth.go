package model

import (
	"time"

	"github.com/google/uuid"
)

// LoginRequest represents login credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthUser is the account view returned alongside a token.
type AuthUser struct {
	ID              uuid.UUID `json:"id"`
	Email           string    `json:"email"`
	TenantID        string    `json:"tenantId"`
	Role            string    `json:"role"`
	DisplayName     string    `json:"display_name"`
	FirstName       string    `json:"first_name"`
	MiddleName      *string   `json:"middle_name"`
	LastName        string    `json:"last_name"`
	DOB             Date      `json:"dob"`
	Address         string    `json:"address"`
	ProfileImageURL *string   `json:"profile_image_url"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewAuthUser builds the token-facing view of an account.
func NewAuthUser(a *Account) *AuthUser {
	return &AuthUser{
		ID:              a.ID,
		Email:           a.Email,
		TenantID:        a.TenantID,
		Role:            a.Role,
		DisplayName:     a.DisplayName(),
		FirstName:       a.FirstName,
		MiddleName:      a.MiddleName,
		LastName:        a.LastName,
		DOB:             a.DOB,
		Address:         a.Address,
		ProfileImageURL: a.ProfileImageURL,
		CreatedAt:       a.CreatedAt,
	}
}

// LoginResponse carries a bearer token and the authenticated user.
type LoginResponse struct {
	Token string    `json:"token"`
	User  *AuthUser `json:"user"`
}

// Identity is the caller identity derived from a verified bearer token.
type Identity struct {
	TenantID string
	UserID   uuid.UUID
	Role     string
	Email    string
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
