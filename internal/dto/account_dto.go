package dto

import (
	"time"

	"accounthub/internal/entity"
)

type RegisterRequest struct {
	FirstName       string `json:"first_name" validate:"required"`
	LastName        string `json:"last_name" validate:"required"`
	Gender          string `json:"gender" validate:"required"`
	Email           string `json:"email" validate:"required"`
	PhoneNumber     string `json:"phone_number" validate:"required"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type OauthLoginRequest struct {
	OauthID       string `json:"oauth_id" validate:"required"`
	OauthProvider string `json:"oauth_provider" validate:"required"`
	FirstName     string `json:"first_name" validate:"required"`
	LastName      string `json:"last_name" validate:"required"`
}

type LoginResponse struct {
	AccessToken string          `json:"access_token"`
	ExpiresIn   int64           `json:"expires_in"`
	TokenType   string          `json:"token_type"`
	Account     AccountResponse `json:"account"`
}

type RequestTokenRequest struct {
	Email  string `json:"email" validate:"required"`
	Medium string `json:"medium" validate:"required"`
}

type VerifyAccountRequest struct {
	Token string `json:"token" validate:"required"`
}

type PasswordForgotRequest struct {
	Email  string `json:"email" validate:"required"`
	Medium string `json:"medium" validate:"omitempty"`
}

type PasswordResetRequest struct {
	Token           string `json:"token" validate:"required"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

type AccountResponse struct {
	ID            string         `json:"id"`
	FirstName     string         `json:"first_name"`
	LastName      string         `json:"last_name"`
	Gender        *string        `json:"gender,omitempty"`
	Email         *string        `json:"email,omitempty"`
	PhoneNumber   *string        `json:"phone_number,omitempty"`
	OauthProvider *string        `json:"oauth_provider,omitempty"`
	Roles         []RoleResponse `json:"roles"`
	Enabled       bool           `json:"enabled"`
	VerifiedAt    *time.Time     `json:"verified_at,omitempty"`
	LastLoginAt   *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func AccountResponseFromEntity(account *entity.Account) AccountResponse {
	response := AccountResponse{
		ID:          account.ID.String(),
		FirstName:   account.FirstName,
		LastName:    account.LastName,
		Email:       account.Email,
		PhoneNumber: account.PhoneNumber,
		Roles:       RoleResponsesFromEntities(account.Roles),
		Enabled:     account.Enabled,
		VerifiedAt:  account.VerifiedAt,
		LastLoginAt: account.LastLoginAt,
		CreatedAt:   account.CreatedAt,
		UpdatedAt:   account.UpdatedAt,
	}
	if account.Gender != nil {
		gender := string(*account.Gender)
		response.Gender = &gender
	}
	if account.OauthProvider != nil {
		provider := string(*account.OauthProvider)
		response.OauthProvider = &provider
	}
	return response
}
