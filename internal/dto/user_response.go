package dto

import "github.com/devmitra/auth_backend/internal/core/domain"

// UserResponse is the client-facing view of a user. Password hash and stored
// token values are never serialized.
type UserResponse struct {
	UserID int64  `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Mobile string `json:"mobile"`
}

// MeResponse wraps the user for the protected profile route.
type MeResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

// ToUserResponse converts a domain.User to its response DTO.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID: user.UserID,
		Name:   user.Name,
		Email:  user.Email,
		Mobile: user.Mobile,
	}
}
