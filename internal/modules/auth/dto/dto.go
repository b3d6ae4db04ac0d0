package dto

import "momnt-server/internal/model"

type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	User  *model.Host `json:"user"`
	Token string      `json:"token"`
}

type MeResponse struct {
	User *model.Host `json:"user"`
}
