package auth

import "github.com/Berkayssy/leave-management-system/internal/user"

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type SignupRequest struct {
	Name                 string `json:"name" binding:"required"`
	Email                string `json:"email" binding:"required,email"`
	Password             string `json:"password" binding:"required,min=6"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required,eqfield=Password"`
}

// SignupEnvelope matches the wire shape {"user": {...}}.
type SignupEnvelope struct {
	User SignupRequest `json:"user" binding:"required"`
}

type LoginResponse struct {
	Token string            `json:"token"`
	User  user.UserResponse `json:"user"`
}

type SignupResponse struct {
	User  user.UserResponse `json:"user"`
	Token string            `json:"token"`
}
