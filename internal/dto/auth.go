package dto

// LoginRequest defines the credentials for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the signed token and basic user identity.
type LoginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userID"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}
