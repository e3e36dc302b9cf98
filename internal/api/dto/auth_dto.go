package dto

import "github.com/shopkit/shop-service/internal/domain"

// RegisterResponse is returned by POST /api/auth/register.
type RegisterResponse struct {
	Data    domain.User `json:"data"`
	Message string      `json:"message"`
}

// LoginResponse is returned by POST /api/auth/login.
type LoginResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Token   string `json:"token"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Message string `json:"message"`
}
