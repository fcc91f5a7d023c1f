package dto

// EmailRequest starts (or restarts) registration for an email address.
type EmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// TokenRequest exchanges a confirmation code for a bearer token.
type TokenRequest struct {
	Email            string `json:"email" binding:"required,email"`
	ConfirmationCode string `json:"confirmation_code" binding:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}
