package dto

import "reviewhub/internal/http-api/models"

// UserResponse mirrors the account profile shape.
type UserResponse struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Username  *string `json:"username"`
	Bio       string  `json:"bio"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
}

func UserFromModel(user *models.User) *UserResponse {
	return &UserResponse{
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Username:  user.Username,
		Bio:       user.Bio,
		Email:     user.Email,
		Role:      user.Role,
	}
}

// UpdateSelfDTO is the self-service profile patch. Role and email are
// deliberately absent: they are not self-editable.
type UpdateSelfDTO struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Username  *string `json:"username"`
	Bio       *string `json:"bio"`
}

// AdminUpdateUserDTO is the admin-side patch; it may additionally change the
// role.
type AdminUpdateUserDTO struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Username  *string `json:"username"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role" binding:"omitempty,oneof=user moderator admin"`
}

// AdminCreateUserDTO creates an account directly, bypassing the email flow.
type AdminCreateUserDTO struct {
	Email     string  `json:"email" binding:"required,email"`
	Username  *string `json:"username"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Bio       string  `json:"bio"`
	Role      string  `json:"role" binding:"omitempty,oneof=user moderator admin"`
}
