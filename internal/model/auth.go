package model

import "github.com/google/uuid"

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" normalize:"trim,lower"`
	Password string `json:"password" validate:"required,min=6"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email" normalize:"trim,lower"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=6"`
}

// Principal is the authenticated caller carried by a session token.
type Principal struct {
	ID      uuid.UUID
	IsAdmin bool
}

// UserSession is the login/register response for users: {token, ...public fields}.
type UserSession struct {
	Token string `json:"token"`
	*User
}

type CaregiverSession struct {
	Token string `json:"token"`
	*Caregiver
}

type TokenResponse struct {
	Token string `json:"token"`
}
