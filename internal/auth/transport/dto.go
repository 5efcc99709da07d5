// Package transport defines request/response DTOs for the auth module.
package transport

import "github.com/google/uuid"

// RegisterRequest creates a business together with its owner account.
type RegisterRequest struct {
	BusinessName string `json:"businessName" binding:"required,min=2,max=200"`
	Name         string `json:"name" binding:"required,min=2,max=200"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8,max=72"`
}

// LoginRequest authenticates an existing user.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the authenticated user returned with a token.
type UserResponse struct {
	ID         uuid.UUID `json:"id"`
	BusinessID uuid.UUID `json:"businessId"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
}

// AuthResponse carries the access token after register/login.
type AuthResponse struct {
	AccessToken string       `json:"accessToken"`
	ExpiresIn   int64        `json:"expiresIn"`
	User        UserResponse `json:"user"`
}
