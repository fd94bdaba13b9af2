package auth

import (
	"github.com/MajQs/WineLog/internal/users"
)

// RegisterCommand is the payload for creating an account.
type RegisterCommand struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginCommand is the payload for obtaining a token pair.
type LoginCommand struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshCommand rotates an expired access token using its refresh token.
type RefreshCommand struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// ForgotPasswordCommand requests a password reset token.
type ForgotPasswordCommand struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordCommand consumes a reset token and sets a new password.
type ResetPasswordCommand struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

// DeleteAccountCommand re-checks the password before removing the account.
type DeleteAccountCommand struct {
	Password string `json:"password" validate:"required"`
}

// TokenPair carries the minted credentials.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	User *users.UserDTO `json:"user"`
	TokenPair
}

// MessageResponse confirms an auth action with no payload.
type MessageResponse struct {
	Message string `json:"message"`
}
