package dto

import (
	"time"

	"github.com/google/uuid"

	"adoptme_backend/internals/features/users/model"
)

type RegisterRequest struct {
	UserName        string `json:"user_name" validate:"required,min=3,max=50"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" validate:"required"`
	FirstName       string `json:"first_name" validate:"omitempty,max=100"`
	LastName        string `json:"last_name" validate:"omitempty,max=100"`
	PhoneNumber     string `json:"phone_number" validate:"omitempty,max=20"`
	Location        string `json:"location" validate:"omitempty,max=200"`
	IsShelter       bool   `json:"is_shelter"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	FirstName   *string `json:"first_name" validate:"omitempty,max=100"`
	LastName    *string `json:"last_name" validate:"omitempty,max=100"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=20"`
	Location    *string `json:"location" validate:"omitempty,max=200"`
	Bio         *string `json:"bio" validate:"omitempty,max=500"`
}

type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	UserName    string    `json:"user_name"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	PhoneNumber string    `json:"phone_number"`
	Location    string    `json:"location"`
	Bio         string    `json:"bio"`
	Role        string    `json:"role"`
	IsShelter   bool      `json:"is_shelter"`
	CreatedAt   time.Time `json:"created_at"`
}

// PublicUserResponse is the reduced shape embedded in donation payloads.
type PublicUserResponse struct {
	ID          uuid.UUID `json:"id"`
	UserName    string    `json:"user_name"`
	DisplayName string    `json:"display_name"`
	Location    string    `json:"location"`
}

func ToUserResponse(u *model.UserModel) UserResponse {
	return UserResponse{
		ID:          u.ID,
		UserName:    u.UserName,
		Email:       u.Email,
		DisplayName: u.DisplayName(),
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		PhoneNumber: u.PhoneNumber,
		Location:    u.Location,
		Bio:         u.Bio,
		Role:        u.Role,
		IsShelter:   u.IsShelter,
		CreatedAt:   u.CreatedAt,
	}
}

func ToPublicUserResponse(u *model.UserModel) PublicUserResponse {
	return PublicUserResponse{
		ID:          u.ID,
		UserName:    u.UserName,
		DisplayName: u.DisplayName(),
		Location:    u.Location,
	}
}
