package api

// Request DTOs

// Password bounds mirror the account rules: 4 to 8 characters, checked
// before any store access.
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=4,max=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=4,max=8"`
}

// Response DTOs

type TokenResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}
